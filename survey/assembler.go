package survey

import (
	"context"
	"time"

	"github.com/mbolis/crew-survey/catalog"
	"github.com/mbolis/crew-survey/model"
)

const TimestampLayout = "2006-01-02 15:04:05"

// Assembler flattens a finished session into a SubmissionRecord and appends it
// to the table.
type Assembler struct {
	table Table
	now   func() time.Time
}

func NewAssembler(table Table) *Assembler {
	return &Assembler{
		table: table,
		now:   time.Now,
	}
}

func (a *Assembler) Assemble(sess model.Session, callerID string) model.SubmissionRecord {
	ans := sess.Answers
	return model.SubmissionRecord{
		Timestamp:  a.now().Format(TimestampLayout),
		FullName:   ans.FullName,
		EmployeeID: ans.EmployeeID,
		CallerID:   callerID,
		Base:       ans.Base,
		Q1:         ans.Q1,
		Q2:         labels(catalog.Lookup(catalog.KeyQ2), ans.Q2),
		Q3:         ans.Q3,
		Q4:         ans.Q4,
		Q5:         labels(catalog.Lookup(catalog.KeyQ5), ans.Q5),
	}
}

// Commit appends the record. The session is left alone: clearing it is up to
// the caller once the append went through.
func (a *Assembler) Commit(ctx context.Context, rec model.SubmissionRecord) error {
	err := a.table.AppendRow(ctx, AppendRange, rec.Row())
	if err != nil {
		return &BackendError{Op: "append_row", Err: err}
	}
	return nil
}

// labels keeps selection order; an id missing from the catalog is kept verbatim.
func labels(q catalog.Question, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, ok := q.Label(id); ok {
			out = append(out, label)
		} else {
			out = append(out, id)
		}
	}
	return out
}
