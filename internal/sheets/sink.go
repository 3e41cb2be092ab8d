package sheets

import (
	"context"
	"fmt"

	"github.com/dmoreira/callsync/internal/types"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Sink reads and appends rows on one worksheet of a Google
// spreadsheet. It is the only persistent state the sync has.
type Sink struct {
	service   *sheetsapi.Service
	sheetKey  string
	worksheet string
	logger    zerolog.Logger
}

// NewSink authenticates against the Sheets API with service-account
// credentials and binds to one worksheet.
func NewSink(ctx context.Context, credentialsFile, sheetKey, worksheet string, logger zerolog.Logger) (*Sink, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Sink{
		service:   service,
		sheetKey:  sheetKey,
		worksheet: worksheet,
		logger:    logger,
	}, nil
}

// KnownIDs reads every value of the identifier column and returns the
// set of record identifiers already exported.
func (s *Sink) KnownIDs(ctx context.Context) (map[string]bool, error) {
	readRange := fmt.Sprintf("%s!%s:%s", s.worksheet, types.IDColumn, types.IDColumn)
	resp, err := s.service.Spreadsheets.Values.Get(s.sheetKey, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read identifier column: %w", err)
	}

	known := make(map[string]bool)
	for _, row := range resp.Values {
		for _, cell := range row {
			if id, ok := cell.(string); ok && id != "" {
				known[id] = true
			}
		}
	}

	s.logger.Info().Int("known_ids", len(known)).Msg("existing identifiers loaded from sheet")
	return known, nil
}

// Append writes the accumulated rows in one bulk call, preserving
// order. USER_ENTERED lets the sheet recognize date and time strings.
// An empty batch is a no-op.
func (s *Sink) Append(ctx context.Context, rows []types.ExportRow) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}

	appendRange := fmt.Sprintf("%s!A:%s", s.worksheet, types.IDColumn)
	_, err := s.service.Spreadsheets.Values.Append(s.sheetKey, appendRange, &sheetsapi.ValueRange{
		Values: values,
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append %d rows: %w", len(rows), err)
	}

	s.logger.Info().Int("rows", len(rows)).Msg("rows appended to sheet")
	return nil
}
