package survey

import (
	"context"
	"testing"
	"time"

	"github.com/mbolis/crew-survey/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 17, 9, 30, 5, 0, time.UTC)
}

func TestAssembler_Assemble(t *testing.T) {
	a := NewAssembler(&memTable{})
	a.now = fixedClock

	rec := a.Assemble(model.Session{Answers: model.Answers{
		FullName:   "Ivan Petrov",
		EmployeeID: "E100",
		Base:       "Almaty",
		Q1:         "Fully satisfied",
		Q2:         []string{"comfort", "food"},
		Q3:         "Yes",
		Q4:         "More training",
		Q5:         []string{"time"},
	}}, "42")

	assert.Equal(t, []string{
		"2024-05-17 09:30:05",
		"Ivan Petrov",
		"E100",
		"42",
		"Almaty",
		"Fully satisfied",
		"Cabin comfort, Food quality",
		"Yes",
		"More training",
		"Lack of time per passenger",
	}, rec.Row())
}

func TestAssembler_EmptySelections(t *testing.T) {
	a := NewAssembler(&memTable{})
	a.now = fixedClock

	row := a.Assemble(model.Session{Answers: model.Answers{Q2: []string{}}}, "1").Row()

	assert.Len(t, row, 10)
	assert.Equal(t, "", row[6])
	assert.Equal(t, "", row[9])
}

func TestAssembler_UnknownIDKeptVerbatim(t *testing.T) {
	a := NewAssembler(&memTable{})

	rec := a.Assemble(model.Session{Answers: model.Answers{Q5: []string{"weather", "lang"}}}, "1")

	assert.Equal(t, []string{"weather", "Language barrier"}, rec.Q5)
}

func TestAssembler_Commit(t *testing.T) {
	table := &memTable{}
	a := NewAssembler(table)

	err := a.Commit(context.Background(), model.SubmissionRecord{EmployeeID: "E1"})

	require.NoError(t, err)
	require.Len(t, table.Rows(), 1)
	assert.Equal(t, "E1", table.Rows()[0][model.EmployeeIDColumn])
}

func TestAssembler_CommitFailure(t *testing.T) {
	a := NewAssembler(&memTable{failAppend: true})

	err := a.Commit(context.Background(), model.SubmissionRecord{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
}
