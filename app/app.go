package app

import (
	"context"
	"io"

	"github.com/mbolis/crew-survey/config"
	"github.com/mbolis/crew-survey/database"
	"github.com/mbolis/crew-survey/session"
	"github.com/mbolis/crew-survey/sheets"
	"github.com/mbolis/crew-survey/survey"
	"github.com/pkg/errors"
)

type App struct {
	config.Config
	Table    survey.Table
	Sessions session.Store
	Engine   *survey.Engine
}

// New opens the configured table backend and builds the survey engine on top
// of it. The returned closer releases the backend.
func New(ctx context.Context, cfg config.Config) (App, io.Closer, error) {
	table, closer, err := OpenTable(ctx, cfg)
	if err != nil {
		return App{}, nil, err
	}

	sessions := session.NewMemoryStore()
	return App{
		Config:   cfg,
		Table:    table,
		Sessions: sessions,
		Engine:   survey.NewEngine(sessions, survey.NewGuard(table), survey.NewAssembler(table)),
	}, closer, nil
}

func OpenTable(ctx context.Context, cfg config.Config) (survey.Table, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSheets:
		sheet, err := sheets.Open(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return sheet, nopCloser{}, nil

	case config.BackendSQLite:
		db, err := database.Open(cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return database.NewTable(db), db, nil
	}
	return nil, nil, errors.Errorf("app.open_table: unknown backend %q", cfg.Backend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
