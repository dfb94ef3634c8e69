package survey

import (
	"context"

	"github.com/mbolis/crew-survey/model"
)

// Guard tells whether an employee already completed the survey.
type Guard struct {
	table Table
}

func NewGuard(table Table) *Guard {
	return &Guard{table}
}

// HasSubmitted scans the stored rows for employeeID. A backend failure is
// returned as is: it never counts as "not submitted yet".
func (g *Guard) HasSubmitted(ctx context.Context, employeeID string) (bool, error) {
	rows, err := g.table.ReadAllRows(ctx, ReadRange)
	if err != nil {
		return false, &BackendError{Op: "read_rows", Err: err}
	}

	for _, row := range rows {
		if len(row) > model.EmployeeIDColumn && row[model.EmployeeIDColumn] == employeeID {
			return true, nil
		}
	}
	return false, nil
}
