package survey

import "context"

// Table is the append-only tabular store completed surveys are written to.
type Table interface {
	ReadAllRows(ctx context.Context, rng string) ([][]string, error)
	AppendRow(ctx context.Context, rng string, row []string) error
}

const (
	ReadRange   = "A2:Z"
	AppendRange = "A2"
)
