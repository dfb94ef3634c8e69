package survey

import (
	"github.com/mbolis/crew-survey/catalog"
	"github.com/mbolis/crew-survey/model"
)

const (
	markerChecked   = "✅ "
	markerUnchecked = "☐ "
)

type Button struct {
	Label   string
	Payload string
}

// PromptView is what a respondent sees for a stage: a text and, for choice
// questions, one button per row.
type PromptView struct {
	Text    string
	Buttons []Button
}

var stageQuestions = map[model.Stage]string{
	model.AwaitingName:       catalog.KeyName,
	model.AwaitingEmployeeID: catalog.KeyEmployeeID,
	model.AwaitingBase:       catalog.KeyBase,
	model.AwaitingQ1:         catalog.KeyQ1,
	model.AwaitingQ2:         catalog.KeyQ2,
	model.AwaitingQ3:         catalog.KeyQ3,
	model.AwaitingQ4:         catalog.KeyQ4,
	model.AwaitingQ5:         catalog.KeyQ5,
}

func questionFor(stage model.Stage) catalog.Question {
	key, ok := stageQuestions[stage]
	if !ok {
		panic("survey: no question for stage " + string(stage))
	}
	return catalog.Lookup(key)
}

// Payload encodes a button press on option id of question key.
func Payload(key, id string) string {
	return key + "_" + id
}

// RenderPrompt builds the prompt of the session's current stage.
func RenderPrompt(sess model.Session) PromptView {
	q := questionFor(sess.Stage)
	view := PromptView{Text: q.Prompt}

	switch q.Kind {
	case catalog.SingleChoice:
		for _, o := range q.Options {
			view.Buttons = append(view.Buttons, Button{o.Label, Payload(q.Key, o.ID)})
		}

	case catalog.MultiChoice:
		selected := selection(sess.Answers, sess.Stage)
		for _, o := range q.Options {
			marker := markerUnchecked
			if contains(selected, o.ID) {
				marker = markerChecked
			}
			view.Buttons = append(view.Buttons, Button{marker + o.Label, Payload(q.Key, o.ID)})
		}
		view.Buttons = append(view.Buttons, Button{q.DoneLabel, Payload(q.Key, catalog.Done)})
	}

	return view
}

func selection(a model.Answers, stage model.Stage) []string {
	switch stage {
	case model.AwaitingQ2:
		return a.Q2
	case model.AwaitingQ5:
		return a.Q5
	}
	return nil
}

func selectionField(a *model.Answers, stage model.Stage) *[]string {
	switch stage {
	case model.AwaitingQ2:
		return &a.Q2
	case model.AwaitingQ5:
		return &a.Q5
	}
	panic("survey: no selection for stage " + string(stage))
}

func contains(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}

// toggle removes id if selected, otherwise adds it unless max is reached.
// Input is never modified in place.
func toggle(selected []string, id string, max int) []string {
	for i, s := range selected {
		if s == id {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	if len(selected) >= max {
		return selected
	}
	return append(selected[:len(selected):len(selected)], id)
}
