package airtable

import (
	"net/url"
	"strings"
)

// Ref names a location inside Airtable, parsed from a share URL. Table and
// View are zero when the URL only names a base.
type Ref struct {
	Base  BaseID
	Table TableID
	View  ViewID
}

// ParseURL extracts the base, table, and view identifiers from an
// airtable.com URL of the form:
//
//	https://airtable.com/appXXXXXXXXXXXXXX[/tblYYYYYYYYYYYYYY[/viwZZZZZZZZZZZZZZ]]
//
// Missing segments are returned as zero values. A URL on another host, or
// whose path does not lead with a base ID, is rejected with ErrInvalidURL
// before any network call.
func ParseURL(raw string) (Ref, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, ErrInvalidURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "airtable.com" {
		return Ref{}, ErrInvalidURL
	}

	segments := splitPath(u.Path)
	if len(segments) == 0 || !strings.HasPrefix(segments[0], "app") {
		return Ref{}, ErrInvalidURL
	}

	ref := Ref{Base: BaseID(segments[0])}
	if len(segments) > 1 {
		if !strings.HasPrefix(segments[1], "tbl") {
			return Ref{}, ErrInvalidURL
		}
		ref.Table = TableID(segments[1])
	}
	if len(segments) > 2 {
		if !strings.HasPrefix(segments[2], "viw") {
			return Ref{}, ErrInvalidURL
		}
		ref.View = ViewID(segments[2])
	}
	return ref, nil
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
