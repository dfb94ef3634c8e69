// Package catalog holds the fixed questionnaire: every question, its kind and
// the ordered options a respondent may pick from.
package catalog

import "fmt"

type Kind int

const (
	FreeText Kind = iota
	SingleChoice
	MultiChoice
)

func (k Kind) String() string {
	switch k {
	case FreeText:
		return "free_text"
	case SingleChoice:
		return "single_choice"
	case MultiChoice:
		return "multi_choice"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

const (
	KeyName       = "name"
	KeyEmployeeID = "employee_id"
	KeyBase       = "base"
	KeyQ1         = "q1"
	KeyQ2         = "q2"
	KeyQ3         = "q3"
	KeyQ4         = "q4"
	KeyQ5         = "q5"
)

// Done is the option id reserved for the button closing a multi-choice question.
const Done = "done"

type Option struct {
	Label string
	ID    string
}

type Question struct {
	Key         string
	Prompt      string
	Kind        Kind
	MaxSelected int
	Options     []Option
	DoneLabel   string
}

func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (q Question) Label(id string) (string, bool) {
	o, ok := q.Option(id)
	return o.Label, ok
}

var questions = map[string]Question{
	KeyName: {
		Key:    KeyName,
		Prompt: "Enter your full name:",
		Kind:   FreeText,
	},
	KeyEmployeeID: {
		Key:    KeyEmployeeID,
		Prompt: "Enter your employee ID:",
		Kind:   FreeText,
	},
	KeyBase: {
		Key:    KeyBase,
		Prompt: "Choose your home base:",
		Kind:   SingleChoice,
		Options: []Option{
			{"Astana", "astana"},
			{"Almaty", "almaty"},
			{"Shymkent", "shymkent"},
			{"Aktau", "aktau"},
		},
	},
	KeyQ1: {
		Key:    KeyQ1,
		Prompt: "1. How satisfied are you with the current service standards?",
		Kind:   SingleChoice,
		Options: []Option{
			{"Fully satisfied", "1"},
			{"Rather satisfied than not", "2"},
			{"Rather dissatisfied than satisfied", "3"},
			{"Completely dissatisfied", "4"},
		},
	},
	KeyQ2: {
		Key:         KeyQ2,
		Prompt:      "2. Which aspects need improvement? (up to 2)",
		Kind:        MultiChoice,
		MaxSelected: 2,
		Options: []Option{
			{"Crew politeness and customer focus", "politeness"},
			{"Food quality", "food"},
			{"Passenger feedback", "feedback"},
			{"Cabin comfort", "comfort"},
			{"Service processes", "process"},
			{"Teamwork and cooperation", "teamwork"},
		},
		DoneLabel: "➡ Next",
	},
	KeyQ3: {
		Key:    KeyQ3,
		Prompt: "3. Do you feel sufficiently trained?",
		Kind:   SingleChoice,
		Options: []Option{
			{"Yes", "1"},
			{"There are gaps", "2"},
			{"Not enough", "3"},
			{"Outdated", "4"},
		},
	},
	KeyQ4: {
		Key:    KeyQ4,
		Prompt: "4. Your suggestions for improving the service:",
		Kind:   FreeText,
	},
	KeyQ5: {
		Key:         KeyQ5,
		Prompt:      "5. What difficulties do you most often face when serving passengers? (up to 2)",
		Kind:        MultiChoice,
		MaxSelected: 2,
		Options: []Option{
			{"Lack of time per passenger", "time"},
			{"Limited resources (food, water, supplies)", "resources"},
			{"Inconvenient service order / procedures", "order"},
			{"Language barrier", "lang"},
			{"Aggressive passenger behaviour", "aggression"},
			{"Equipment malfunctions", "tech"},
		},
		DoneLabel: "✅ Finish",
	},
}

// Lookup returns the question registered under key. An unknown key is a
// programming error.
func Lookup(key string) Question {
	q, ok := questions[key]
	if !ok {
		panic("catalog: unknown question " + key)
	}
	return q
}

// Keys returns every question key in the order they are asked.
func Keys() []string {
	return []string{KeyName, KeyEmployeeID, KeyBase, KeyQ1, KeyQ2, KeyQ3, KeyQ4, KeyQ5}
}
