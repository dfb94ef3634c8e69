package survey

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/mbolis/crew-survey/model"
	"github.com/pkg/errors"
)

const eventAnswer = "answer"

var transitions = fsm.Events{
	{Name: eventAnswer, Src: []string{string(model.AwaitingName)}, Dst: string(model.AwaitingEmployeeID)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingEmployeeID)}, Dst: string(model.AwaitingBase)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingBase)}, Dst: string(model.AwaitingQ1)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingQ1)}, Dst: string(model.AwaitingQ2)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingQ2)}, Dst: string(model.AwaitingQ3)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingQ3)}, Dst: string(model.AwaitingQ4)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingQ4)}, Dst: string(model.AwaitingQ5)},
	{Name: eventAnswer, Src: []string{string(model.AwaitingQ5)}, Dst: string(model.Terminated)},
}

// newMachine resumes the questionnaire of a conversation at stage.
func newMachine(stage model.Stage) *fsm.FSM {
	return fsm.NewFSM(string(stage), transitions, fsm.Callbacks{})
}

// answer moves machine past its current question and returns the new stage.
func answer(ctx context.Context, machine *fsm.FSM) (model.Stage, error) {
	from := machine.Current()
	err := machine.Event(ctx, eventAnswer)
	if err != nil {
		return model.Stage(from), errors.Wrapf(err, "survey.answer from %s", from)
	}
	return model.Stage(machine.Current()), nil
}
