// Package sheets stores survey rows in a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/mbolis/crew-survey/model"
	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValueInputOption makes Sheets parse cells as if typed by a user, so that
// timestamps become dates. Every other cell is sent as quoted text.
const ValueInputOption = "USER_ENTERED"

// textPrefix forces a USER_ENTERED cell to be stored verbatim as text. Sheets
// does not keep the prefix in the cell value.
const textPrefix = "'"

type Sheet struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
}

// Open authenticates with the service account key in credentialsFile. A missing
// or malformed key is an error.
func Open(ctx context.Context, spreadsheetID, credentialsFile string) (*Sheet, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "sheets.credentials.read")
	}

	creds, err := google.CredentialsFromJSON(ctx, key, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, errors.Wrapf(err, "sheets.credentials.parse %s", credentialsFile)
	}

	return New(ctx, spreadsheetID, option.WithCredentials(creds))
}

func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Sheet, error) {
	if spreadsheetID == "" {
		return nil, errors.New("sheets.new: missing spreadsheet id")
	}

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "sheets.new")
	}

	return &Sheet{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (s *Sheet) ReadAllRows(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "sheets.get %s", rng)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Sheet) AppendRow(ctx context.Context, rng string, row []string) error {
	cells := make([]interface{}, len(row))
	for i, cell := range row {
		if i == model.TimestampColumn || cell == "" {
			cells[i] = cell
			continue
		}
		// "00123" would otherwise be stored as the number 123, and "=..." as a formula
		cells[i] = textPrefix + cell
	}

	_, err := s.values.
		Append(s.spreadsheetID, rng, &gsheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	return errors.Wrapf(err, "sheets.append %s", rng)
}
