// Package sheets wraps the Google Sheets v4 API: range reads and writes,
// append, clear, and spreadsheet metadata, plus a bounded parallel map
// over rows for batch processing.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/porticolabs/connectors"
)

// SpreadsheetID identifies a Google spreadsheet.
type SpreadsheetID string

// valueInputOption tells Sheets to parse written values the way the UI
// would (dates, numbers, formulas).
const valueInputOption = "USER_ENTERED"

// Service calls the Google Sheets API.
type Service struct {
	sv *sheetsv4.Service
}

// NewService creates a Sheets service from an OAuth2 token source.
func NewService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*Service, error) {
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	sv, err := sheetsv4.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Service{sv: sv}, nil
}

// NewServiceWithOptions creates a Sheets service from raw client options,
// for callers that manage their own transport (and for tests).
func NewServiceWithOptions(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	sv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Service{sv: sv}, nil
}

// SheetInfo is one sheet (tab) of a spreadsheet.
type SheetInfo struct {
	ID    int64
	Title string
}

// Spreadsheet is the metadata the connector exposes.
type Spreadsheet struct {
	ID     SpreadsheetID
	Title  string
	Sheets []SheetInfo
}

// GetSpreadsheet fetches spreadsheet metadata.
// GET https://sheets.googleapis.com/v4/spreadsheets/{spreadsheetId}
func (s *Service) GetSpreadsheet(ctx context.Context, id SpreadsheetID) (*Spreadsheet, error) {
	resp, err := s.sv.Spreadsheets.Get(string(id)).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	out := &Spreadsheet{ID: id}
	if resp.Properties != nil {
		out.Title = resp.Properties.Title
	}
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		out.Sheets = append(out.Sheets, SheetInfo{
			ID:    sh.Properties.SheetId,
			Title: sh.Properties.Title,
		})
	}
	return out, nil
}

// ReadRange reads the values in an A1 range.
// GET .../values/{range}
func (s *Service) ReadRange(ctx context.Context, id SpreadsheetID, a1Range string) ([][]any, error) {
	resp, err := s.sv.Spreadsheets.Values.Get(string(id), a1Range).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}
	return resp.Values, nil
}

// AppendRows appends rows after the last row of data in the range's sheet.
// POST .../values/{range}:append
//
// Appends are not idempotent, so transient failures surface immediately
// rather than being retried into duplicate rows.
func (s *Service) AppendRows(ctx context.Context, id SpreadsheetID, a1Range string, rows [][]any) (int64, error) {
	body := &sheetsv4.ValueRange{Values: rows}
	resp, err := s.sv.Spreadsheets.Values.Append(string(id), a1Range, body).
		ValueInputOption(valueInputOption).
		Context(ctx).Do()
	if err != nil {
		return 0, wrapError(err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return resp.Updates.UpdatedRows, nil
}

// UpdateRange overwrites the values in an A1 range.
// PUT .../values/{range}
func (s *Service) UpdateRange(ctx context.Context, id SpreadsheetID, a1Range string, rows [][]any) (int64, error) {
	body := &sheetsv4.ValueRange{Values: rows}
	resp, err := s.sv.Spreadsheets.Values.Update(string(id), a1Range, body).
		ValueInputOption(valueInputOption).
		Context(ctx).Do()
	if err != nil {
		return 0, wrapError(err)
	}
	return resp.UpdatedCells, nil
}

// ClearRange clears the values in an A1 range, leaving formatting alone.
// POST .../values/{range}:clear
func (s *Service) ClearRange(ctx context.Context, id SpreadsheetID, a1Range string) error {
	_, err := s.sv.Spreadsheets.Values.Clear(string(id), a1Range, &sheetsv4.ClearValuesRequest{}).
		Context(ctx).Do()
	return wrapError(err)
}

// wrapError normalizes googleapi errors to *connectors.APIError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" && gerr.Code == http.StatusNotFound {
			msg = "spreadsheet or range not found"
		}
		return &connectors.APIError{
			Provider:   "sheets",
			StatusCode: gerr.Code,
			Message:    msg,
		}
	}
	return err
}
