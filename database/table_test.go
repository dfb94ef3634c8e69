package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTable(t *testing.T) *Table {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "survey.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTable(db)
}

func TestTable_EmptyStore(t *testing.T) {
	rows, err := openTable(t).ReadAllRows(context.Background(), "A2:Z")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTable_AppendThenRead(t *testing.T) {
	table := openTable(t)
	ctx := context.Background()

	first := []string{"2024-05-17 09:30:05", "Ivan Petrov", "E100", "42", "Almaty",
		"Fully satisfied", "Food quality, Cabin comfort", "Yes", "More training", "Lack of time per passenger"}
	second := []string{"2024-05-17 10:00:00", "Anna", "E200", "43", "Aktau",
		"Outdated", "", "Yes", "", ""}

	require.NoError(t, table.AppendRow(ctx, "A2", first))
	require.NoError(t, table.AppendRow(ctx, "A2", second))

	rows, err := table.ReadAllRows(ctx, "A2:Z")
	require.NoError(t, err)
	assert.Equal(t, [][]string{first, second}, rows)
}

func TestTable_AppendRejectsWrongWidth(t *testing.T) {
	err := openTable(t).AppendRow(context.Background(), "A2", []string{"only", "three", "cells"})

	assert.Error(t, err)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.sqlite")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	row := []string{"t", "n", "E1", "c", "b", "1", "", "3", "4", ""}
	require.NoError(t, NewTable(db).AppendRow(ctx, "A2", row))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := NewTable(db).ReadAllRows(ctx, "A2:Z")
	require.NoError(t, err)
	assert.Equal(t, [][]string{row}, rows)
}
