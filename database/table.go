package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
)

const columns = 10

// Table stores survey rows in the local submission table. It holds a single
// sheet, so ranges are accepted but select nothing.
type Table struct {
	db *sql.DB
}

func NewTable(db *sql.DB) *Table {
	return &Table{db}
}

func (t *Table) ReadAllRows(ctx context.Context, rng string) ([][]string, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT
			timestamp, full_name, employee_id, caller_id, base,
			q1, q2, q3, q4, q5
		FROM submission
		ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "db.read_rows")
	}
	defer rows.Close()

	out := [][]string{}
	for rows.Next() {
		row := make([]string, columns)
		dst := make([]any, columns)
		for i := range row {
			dst[i] = &row[i]
		}
		err = rows.Scan(dst...)
		if err != nil {
			return nil, errors.Wrap(err, "db.read_rows.scan")
		}
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "db.read_rows.next")
	}
	return out, nil
}

func (t *Table) AppendRow(ctx context.Context, rng string, row []string) error {
	if len(row) != columns {
		return fmt.Errorf("db.append_row: expected %d cells, got %d", columns, len(row))
	}

	args := make([]any, columns)
	for i, cell := range row {
		args[i] = cell
	}
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO submission (
			timestamp, full_name, employee_id, caller_id, base,
			q1, q2, q3, q4, q5
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	return errors.Wrap(err, "db.append_row")
}
