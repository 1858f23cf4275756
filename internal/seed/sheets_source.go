package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"salesdash/internal/core"
)

// SheetsSource reads the seed dataset from a Google Sheets range. The first
// row is the header; each following row becomes one raw record keyed by
// header name. Useful for ops-curated datasets that live in a spreadsheet
// instead of the public JSON dump.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
}

var _ Source = (*SheetsSource)(nil)

// NewSheetsSource builds a Sheets-backed source. Credentials come from the
// given options (service-account file or JSON), falling back to ADC.
func NewSheetsSource(ctx context.Context, spreadsheetID, readRange string, opts ...goption.ClientOption) (*SheetsSource, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet ID")
	}
	if readRange == "" {
		readRange = "Transactions"
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSource{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

func (s *SheetsSource) Name() string {
	return "sheets"
}

func (s *SheetsSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet range %s: %v", core.ErrUpstreamFetch, s.readRange, err)
	}
	return rowsToRecords(resp.Values), nil
}

// rowsToRecords maps a values matrix to raw records using the first row as
// the header. Blank headers and cells past the header width are dropped.
func rowsToRecords(values [][]interface{}) []RawRecord {
	if len(values) < 2 {
		return nil
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		if s, ok := h.(string); ok {
			headers[i] = strings.TrimSpace(s)
		}
	}

	recs := make([]RawRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(RawRecord, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			raw, err := json.Marshal(cell)
			if err != nil {
				continue
			}
			rec[headers[i]] = raw
		}
		if len(rec) > 0 {
			recs = append(recs, rec)
		}
	}

	return recs
}
