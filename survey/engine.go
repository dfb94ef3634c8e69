package survey

import (
	"context"
	"strings"

	"github.com/looplab/fsm"
	"github.com/mbolis/crew-survey/catalog"
	"github.com/mbolis/crew-survey/log"
	"github.com/mbolis/crew-survey/model"
	"github.com/mbolis/crew-survey/session"
	"github.com/pkg/errors"
)

type InteractionKind int

const (
	TextMessage InteractionKind = iota
	ButtonPress
)

// Interaction is one inbound event of a conversation.
type Interaction struct {
	Kind           InteractionKind
	ConversationID model.ConversationID
	SenderID       string
	Text           string
	Payload        string
}

// Reply tells the transport what to show. Notice, when set, comes before Prompt.
type Reply struct {
	Notice  string
	Prompt  *PromptView
	Ignored bool
}

const (
	NoticeDuplicate = "❗️You have already taken the survey."
	NoticeSubmitted = "✅ Thank you! Your answers have been recorded."
	NoticeFailure   = "⚠️ Something went wrong while saving your answers. Please try again."
)

const StartCommand = "/start"

// Engine drives every conversation through the questionnaire.
type Engine struct {
	sessions  session.Store
	guard     *Guard
	assembler *Assembler
}

func NewEngine(sessions session.Store, guard *Guard, assembler *Assembler) *Engine {
	return &Engine{
		sessions:  sessions,
		guard:     guard,
		assembler: assembler,
	}
}

// Handle processes one interaction to completion. Interactions on the same
// conversation are serialized.
//
// Input that does not fit the current stage is ignored and the current prompt
// is rendered again. A backend failure is returned with the session untouched,
// so that repeating the last action retries it.
func (e *Engine) Handle(ctx context.Context, in Interaction) (Reply, error) {
	unlock := e.sessions.Lock(in.ConversationID)
	defer unlock()

	if in.Kind == TextMessage && isStart(in.Text) {
		e.sessions.Clear(in.ConversationID)
		return e.prompt(in.ConversationID), nil
	}

	sess := e.sessions.Get(in.ConversationID)
	machine := newMachine(sess.Stage)

	reply, err := e.step(ctx, machine, sess, in)
	if errors.Is(err, errInvalidSelection) {
		log.WithFields(log.Fields{
			"conversation": in.ConversationID,
			"stage":        sess.Stage,
			"payload":      in.Payload,
		}).Debug("survey.handle: input ignored")

		reply = e.prompt(in.ConversationID)
		reply.Ignored = true
		return reply, nil
	}
	return reply, err
}

func isStart(text string) bool {
	cmd := strings.Fields(text)
	if len(cmd) == 0 {
		return false
	}
	// commands in groups come as /start@botname
	name, _, _ := strings.Cut(cmd[0], "@")
	return name == StartCommand
}

func (e *Engine) step(ctx context.Context, machine *fsm.FSM, sess model.Session, in Interaction) (Reply, error) {
	q := questionFor(sess.Stage)

	switch q.Kind {
	case catalog.FreeText:
		text, err := readText(in)
		if err != nil {
			return Reply{}, err
		}
		return e.onText(ctx, machine, sess, text)

	case catalog.SingleChoice:
		opt, err := readChoice(q, in)
		if err != nil {
			return Reply{}, err
		}
		return e.onChoice(ctx, machine, sess, opt)

	default:
		id, err := readToggle(q, in)
		if err != nil {
			return Reply{}, err
		}
		if id == catalog.Done {
			return e.onDone(ctx, machine, sess, in)
		}
		return e.onToggle(sess, q, id), nil
	}
}

func (e *Engine) onText(ctx context.Context, machine *fsm.FSM, sess model.Session, text string) (Reply, error) {
	switch sess.Stage {
	case model.AwaitingName:
		e.sessions.Update(sess.ID, func(a *model.Answers) { a.FullName = text })

	case model.AwaitingEmployeeID:
		employeeID := strings.TrimSpace(text)
		submitted, err := e.guard.HasSubmitted(ctx, employeeID)
		if err != nil {
			return Reply{}, err
		}
		if submitted {
			e.sessions.Clear(sess.ID)
			log.WithFields(log.Fields{
				"conversation": sess.ID,
				"employee_id":  employeeID,
			}).Info("survey.duplicate: already submitted")
			return Reply{Notice: NoticeDuplicate}, nil
		}
		e.sessions.Update(sess.ID, func(a *model.Answers) { a.EmployeeID = employeeID })

	case model.AwaitingQ4:
		e.sessions.Update(sess.ID, func(a *model.Answers) {
			a.Q4 = text
			a.Q5 = []string{}
		})
	}

	return e.advance(ctx, machine, sess)
}

func (e *Engine) onChoice(ctx context.Context, machine *fsm.FSM, sess model.Session, opt catalog.Option) (Reply, error) {
	e.sessions.Update(sess.ID, func(a *model.Answers) {
		switch sess.Stage {
		case model.AwaitingBase:
			a.Base = opt.Label
		case model.AwaitingQ1:
			a.Q1 = opt.Label
			a.Q2 = []string{}
		case model.AwaitingQ3:
			a.Q3 = opt.Label
		}
	})

	return e.advance(ctx, machine, sess)
}

func (e *Engine) onToggle(sess model.Session, q catalog.Question, id string) Reply {
	e.sessions.Update(sess.ID, func(a *model.Answers) {
		field := selectionField(a, sess.Stage)
		*field = toggle(*field, id, q.MaxSelected)
	})

	return e.prompt(sess.ID)
}

func (e *Engine) onDone(ctx context.Context, machine *fsm.FSM, sess model.Session, in Interaction) (Reply, error) {
	if sess.Stage != model.AwaitingQ5 {
		return e.advance(ctx, machine, sess)
	}

	record := e.assembler.Assemble(sess, in.SenderID)
	err := e.assembler.Commit(ctx, record)
	if err != nil {
		return Reply{}, err
	}

	if _, err := answer(ctx, machine); err != nil {
		return Reply{}, err
	}
	e.sessions.Clear(sess.ID)

	log.WithFields(log.Fields{
		"conversation": sess.ID,
		"employee_id":  record.EmployeeID,
	}).Info("survey.commit: submission recorded")
	return Reply{Notice: NoticeSubmitted}, nil
}

func (e *Engine) advance(ctx context.Context, machine *fsm.FSM, sess model.Session) (Reply, error) {
	next, err := answer(ctx, machine)
	if err != nil {
		return Reply{}, err
	}
	e.sessions.SetStage(sess.ID, next)
	return e.prompt(sess.ID), nil
}

func (e *Engine) prompt(id model.ConversationID) Reply {
	view := RenderPrompt(e.sessions.Get(id))
	return Reply{Prompt: &view}
}

func readText(in Interaction) (string, error) {
	if in.Kind != TextMessage || strings.TrimSpace(in.Text) == "" {
		return "", errInvalidSelection
	}
	return in.Text, nil
}

func readPayload(q catalog.Question, in Interaction) (string, error) {
	if in.Kind != ButtonPress {
		return "", errInvalidSelection
	}
	key, id, ok := strings.Cut(in.Payload, "_")
	if !ok || key != q.Key {
		return "", errInvalidSelection
	}
	return id, nil
}

func readChoice(q catalog.Question, in Interaction) (catalog.Option, error) {
	id, err := readPayload(q, in)
	if err != nil {
		return catalog.Option{}, err
	}
	opt, ok := q.Option(id)
	if !ok {
		return catalog.Option{}, errInvalidSelection
	}
	return opt, nil
}

func readToggle(q catalog.Question, in Interaction) (string, error) {
	id, err := readPayload(q, in)
	if err != nil {
		return "", err
	}
	if id == catalog.Done {
		return id, nil
	}
	if _, ok := q.Option(id); !ok {
		return "", errInvalidSelection
	}
	return id, nil
}
