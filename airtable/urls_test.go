package airtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    Ref
		wantErr bool
	}{
		{
			name: "base, table and view",
			url:  "https://airtable.com/appAAAAAAAAAAAAAA/tblBBBBBBBBBBBBBB/viwCCCCCCCCCCCCCC",
			want: Ref{
				Base:  "appAAAAAAAAAAAAAA",
				Table: "tblBBBBBBBBBBBBBB",
				View:  "viwCCCCCCCCCCCCCC",
			},
		},
		{
			name: "base and table only",
			url:  "https://airtable.com/appAAAAAAAAAAAAAA/tblBBBBBBBBBBBBBB",
			want: Ref{Base: "appAAAAAAAAAAAAAA", Table: "tblBBBBBBBBBBBBBB"},
		},
		{
			name: "base only",
			url:  "https://airtable.com/appAAAAAAAAAAAAAA",
			want: Ref{Base: "appAAAAAAAAAAAAAA"},
		},
		{
			name: "www host accepted",
			url:  "https://www.airtable.com/appAAAAAAAAAAAAAA",
			want: Ref{Base: "appAAAAAAAAAAAAAA"},
		},
		{
			name:    "wrong host",
			url:     "https://example.com/appAAAAAAAAAAAAAA",
			wantErr: true,
		},
		{
			name:    "path not starting with base ID",
			url:     "https://airtable.com/tblBBBBBBBBBBBBBB",
			wantErr: true,
		},
		{
			name:    "second segment not a table ID",
			url:     "https://airtable.com/appAAAAAAAAAAAAAA/recDDDDDDDDDDDDDD",
			wantErr: true,
		},
		{
			name:    "third segment not a view ID",
			url:     "https://airtable.com/appAAAAAAAAAAAAAA/tblBBBBBBBBBBBBBB/tblEEEEEEEEEEEEEE",
			wantErr: true,
		},
		{
			name:    "empty path",
			url:     "https://airtable.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURL(tt.url)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
