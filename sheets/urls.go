package sheets

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidURL indicates a URL that is not a Google Sheets document URL.
var ErrInvalidURL = errors.New("sheets: not a docs.google.com spreadsheet URL")

// Ref names a spreadsheet and, when the URL carries a gid fragment, one
// sheet within it.
type Ref struct {
	ID SpreadsheetID

	// GID is the sheet (tab) ID from the #gid= fragment. Valid only when
	// HasGID is true; gid 0 is a real sheet ID.
	GID    int64
	HasGID bool
}

// ParseURL extracts the spreadsheet ID and optional sheet gid from a URL
// of the form:
//
//	https://docs.google.com/spreadsheets/d/{spreadsheetId}/edit#gid={sheetId}
//
// Any other host or path shape is rejected before a network call.
func ParseURL(raw string) (Ref, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, ErrInvalidURL
	}
	if !strings.EqualFold(u.Host, "docs.google.com") {
		return Ref{}, ErrInvalidURL
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 3 || segments[0] != "spreadsheets" || segments[1] != "d" || segments[2] == "" {
		return Ref{}, ErrInvalidURL
	}

	ref := Ref{ID: SpreadsheetID(segments[2])}

	fragment := u.Fragment
	if idx := strings.Index(fragment, "gid="); idx >= 0 {
		gid, err := strconv.ParseInt(fragment[idx+len("gid="):], 10, 64)
		if err != nil {
			return Ref{}, ErrInvalidURL
		}
		ref.GID = gid
		ref.HasGID = true
	}
	return ref, nil
}
