package model

import "strings"

type ConversationID int64

type Stage string

const (
	AwaitingName       Stage = "awaiting_name"
	AwaitingEmployeeID Stage = "awaiting_employee_id"
	AwaitingBase       Stage = "awaiting_base"
	AwaitingQ1         Stage = "awaiting_q1"
	AwaitingQ2         Stage = "awaiting_q2"
	AwaitingQ3         Stage = "awaiting_q3"
	AwaitingQ4         Stage = "awaiting_q4"
	AwaitingQ5         Stage = "awaiting_q5"
	Terminated         Stage = "terminated"
)

// Stages lists the stages in the order a respondent walks through them.
var Stages = []Stage{
	AwaitingName,
	AwaitingEmployeeID,
	AwaitingBase,
	AwaitingQ1,
	AwaitingQ2,
	AwaitingQ3,
	AwaitingQ4,
	AwaitingQ5,
	Terminated,
}

// Answers accumulates a respondent's input. A field is only meaningful once
// the session has moved past the stage that writes it.
type Answers struct {
	FullName   string
	EmployeeID string
	Base       string
	Q1         string
	Q2         []string // option ids, in selection order
	Q3         string
	Q4         string
	Q5         []string // option ids, in selection order
}

func (a Answers) Clone() Answers {
	c := a
	if a.Q2 != nil {
		c.Q2 = append([]string{}, a.Q2...)
	}
	if a.Q5 != nil {
		c.Q5 = append([]string{}, a.Q5...)
	}
	return c
}

type Session struct {
	ID      ConversationID
	Stage   Stage
	Answers Answers
}

// SubmissionRecord is a completed survey, flattened into its stored columns.
type SubmissionRecord struct {
	Timestamp  string
	FullName   string
	EmployeeID string
	CallerID   string
	Base       string
	Q1         string
	Q2         []string // labels, in selection order
	Q3         string
	Q4         string
	Q5         []string // labels, in selection order
}

const ListSeparator = ", "

// Columns of a stored row, 0-based.
const (
	TimestampColumn  = 0
	EmployeeIDColumn = 2
)

func (r SubmissionRecord) Row() []string {
	return []string{
		r.Timestamp,
		r.FullName,
		r.EmployeeID,
		r.CallerID,
		r.Base,
		r.Q1,
		strings.Join(r.Q2, ListSeparator),
		r.Q3,
		r.Q4,
		strings.Join(r.Q5, ListSeparator),
	}
}
