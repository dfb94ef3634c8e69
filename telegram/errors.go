package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mbolis/crew-survey/log"
	"github.com/mbolis/crew-survey/survey"
	"github.com/pkg/errors"
)

// Will log an error, and send the respondent a generic failure notice.
// The session is left as is, so repeating the last action retries it.
func (b *Bot) logFailure(entry *log.Entry, chatID int64, code string, err error) {
	if errors.Is(err, survey.ErrBackendUnavailable) {
		code += ".backend"
	}
	entry.Errorf("%s: %s", code, err)

	_, err = b.api.Send(tgbotapi.NewMessage(chatID, survey.NoticeFailure))
	logTransport(entry, "telegram.send_failure", err)
}

// Will log a failed Bot API call. Re-rendering a prompt that did not change is
// rejected by Telegram, and only worth a debug line.
func logTransport(entry *log.Entry, code string, err error) {
	switch {
	case err == nil:
	case isNotModified(err):
		entry.Debugf("%s: not modified", code)
	default:
		entry.Warnf("%s: %s", code, err)
	}
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
