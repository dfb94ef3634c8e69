package survey

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var errOffline = errors.New("sheet offline")

type memTable struct {
	mu         sync.Mutex
	rows       [][]string
	failRead   bool
	failAppend bool
	reads      int
	appends    int
}

func (t *memTable) ReadAllRows(ctx context.Context, rng string) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reads++
	if t.failRead {
		return nil, errOffline
	}
	out := make([][]string, len(t.rows))
	copy(out, t.rows)
	return out, nil
}

func (t *memTable) AppendRow(ctx context.Context, rng string, row []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.appends++
	if t.failAppend {
		return errOffline
	}
	t.rows = append(t.rows, append([]string{}, row...))
	return nil
}

func (t *memTable) Rows() [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.rows
}
