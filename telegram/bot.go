// Package telegram connects the survey engine to the Telegram Bot API.
package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofrs/uuid"
	"github.com/mbolis/crew-survey/log"
	"github.com/mbolis/crew-survey/model"
	"github.com/mbolis/crew-survey/survey"
	"github.com/pkg/errors"
)

const pollTimeout = 60

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Poller interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Handler interface {
	Handle(ctx context.Context, in survey.Interaction) (survey.Reply, error)
}

type Bot struct {
	api     Sender
	handler Handler
	queues  *dispatcher
}

// Connect checks token against the Bot API.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram.connect")
	}
	return api, nil
}

func New(api Sender, handler Handler) *Bot {
	return &Bot{
		api:     api,
		handler: handler,
		queues:  newDispatcher(),
	}
}

// Run long-polls for updates until ctx is done, then waits for the updates
// already being handled.
func (b *Bot) Run(ctx context.Context, poller Poller) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := poller.GetUpdatesChan(cfg)
	defer b.queues.wait()

	// interactions run to completion even while shutting down
	work := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			poller.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.Dispatch(work, upd)
		}
	}
}

// Dispatch queues upd behind the updates of the same chat.
func (b *Bot) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	chatID, ok := chatOf(upd)
	if !ok {
		return
	}
	b.queues.submit(chatID, func() { b.HandleUpdate(ctx, upd) })
}

func chatOf(upd tgbotapi.Update) (int64, bool) {
	switch {
	case upd.Message != nil && upd.Message.Chat != nil:
		return upd.Message.Chat.ID, true
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil && upd.CallbackQuery.Message.Chat != nil:
		return upd.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		b.onMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		b.onCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	entry := traced(chatID)

	reply, err := b.handler.Handle(ctx, survey.Interaction{
		Kind:           survey.TextMessage,
		ConversationID: model.ConversationID(chatID),
		SenderID:       senderID(msg.From, chatID),
		Text:           msg.Text,
	})
	if err != nil {
		b.logFailure(entry, chatID, "survey.handle", err)
		return
	}

	b.sendReply(entry, chatID, reply)
}

func (b *Bot) onCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	defer b.ack(cq.ID)
	if cq.Message == nil {
		return
	}

	chatID := cq.Message.Chat.ID
	entry := traced(chatID).WithField("payload", cq.Data)

	reply, err := b.handler.Handle(ctx, survey.Interaction{
		Kind:           survey.ButtonPress,
		ConversationID: model.ConversationID(chatID),
		SenderID:       senderID(cq.From, chatID),
		Payload:        cq.Data,
	})
	if err != nil {
		b.logFailure(entry, chatID, "survey.handle", err)
		return
	}

	// the pressed message may be stale: show the current prompt below it
	if reply.Ignored {
		b.sendReply(entry, chatID, reply)
		return
	}

	views := replyViews(reply)
	if len(views) == 0 {
		return
	}
	b.edit(entry, chatID, cq.Message.MessageID, views[0])
	for _, view := range views[1:] {
		b.send(entry, chatID, view)
	}
}

func (b *Bot) sendReply(entry *log.Entry, chatID int64, reply survey.Reply) {
	for _, view := range replyViews(reply) {
		b.send(entry, chatID, view)
	}
}

func (b *Bot) send(entry *log.Entry, chatID int64, view survey.PromptView) {
	msg := tgbotapi.NewMessage(chatID, view.Text)
	if len(view.Buttons) > 0 {
		msg.ReplyMarkup = keyboard(view.Buttons)
	}
	_, err := b.api.Send(msg)
	logTransport(entry, "telegram.send", err)
}

func (b *Bot) edit(entry *log.Entry, chatID int64, messageID int, view survey.PromptView) {
	var edit tgbotapi.EditMessageTextConfig
	if len(view.Buttons) > 0 {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, view.Text, keyboard(view.Buttons))
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, view.Text)
	}
	_, err := b.api.Request(edit)
	logTransport(entry, "telegram.edit", err)
}

func (b *Bot) ack(callbackID string) {
	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, ""))
	logTransport(log.WithFields(log.Fields{"callback": callbackID}), "telegram.ack", err)
}

func replyViews(reply survey.Reply) []survey.PromptView {
	var views []survey.PromptView
	if reply.Notice != "" {
		views = append(views, survey.PromptView{Text: reply.Notice})
	}
	if reply.Prompt != nil {
		views = append(views, *reply.Prompt)
	}
	return views
}

func keyboard(buttons []survey.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Payload)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func senderID(from *tgbotapi.User, chatID int64) string {
	if from == nil {
		return strconv.FormatInt(chatID, 10)
	}
	return strconv.FormatInt(from.ID, 10)
}

func traced(chatID int64) *log.Entry {
	fields := log.Fields{"conversation": chatID}
	if id, err := uuid.NewV4(); err == nil {
		fields["interaction"] = id.String()
	}
	return log.WithFields(fields)
}
