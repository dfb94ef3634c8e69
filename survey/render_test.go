package survey

import (
	"context"
	"testing"

	"github.com/mbolis/crew-survey/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt_FreeText(t *testing.T) {
	view := RenderPrompt(model.Session{Stage: model.AwaitingName})

	assert.Equal(t, "Enter your full name:", view.Text)
	assert.Empty(t, view.Buttons)
}

func TestRenderPrompt_SingleChoice(t *testing.T) {
	view := RenderPrompt(model.Session{Stage: model.AwaitingBase})

	require.Len(t, view.Buttons, 4)
	assert.Equal(t, Button{"Astana", "base_astana"}, view.Buttons[0])
	assert.Equal(t, Button{"Aktau", "base_aktau"}, view.Buttons[3])
}

func TestRenderPrompt_MultiChoiceMarkers(t *testing.T) {
	view := RenderPrompt(model.Session{
		Stage:   model.AwaitingQ2,
		Answers: model.Answers{Q2: []string{"comfort"}},
	})

	require.Len(t, view.Buttons, 7)
	assert.Equal(t, Button{"☐ Crew politeness and customer focus", "q2_politeness"}, view.Buttons[0])
	assert.Equal(t, Button{"✅ Cabin comfort", "q2_comfort"}, view.Buttons[3])
	assert.Equal(t, Button{"➡ Next", "q2_done"}, view.Buttons[6])

	view = RenderPrompt(model.Session{Stage: model.AwaitingQ5})
	assert.Equal(t, Button{"✅ Finish", "q5_done"}, view.Buttons[6])
	for _, b := range view.Buttons[:6] {
		assert.Contains(t, b.Label, "☐ ")
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		id       string
		expected []string
	}{
		{"add to empty", nil, "a", []string{"a"}},
		{"add second", []string{"a"}, "b", []string{"a", "b"}},
		{"third is ignored", []string{"a", "b"}, "c", []string{"a", "b"}},
		{"remove at cap", []string{"a", "b"}, "a", []string{"b"}},
		{"remove last", []string{"a"}, "a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toggle(tt.selected, tt.id, 2))
		})
	}
}

func TestToggle_DoesNotAlias(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "a"

	added := toggle(base, "b", 2)
	removed := toggle(added, "a", 2)

	assert.Equal(t, []string{"a"}, base)
	assert.Equal(t, []string{"a", "b"}, added)
	assert.Equal(t, []string{"b"}, removed)
}

func TestAnswer_FollowsTable(t *testing.T) {
	ctx := context.Background()

	machine := newMachine(model.AwaitingName)
	for _, expected := range model.Stages[1:] {
		next, err := answer(ctx, machine)
		require.NoError(t, err)
		assert.Equal(t, expected, next)
	}

	next, err := answer(ctx, machine)
	assert.Error(t, err)
	assert.Equal(t, model.Terminated, next)
}

func TestAnswer_ResumesAtStoredStage(t *testing.T) {
	next, err := answer(context.Background(), newMachine(model.AwaitingQ3))
	require.NoError(t, err)
	assert.Equal(t, model.AwaitingQ4, next)
}
