package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[provider.airtable]
rate_limit = 5.0

[provider.xero]
base_url = "https://xero.example/api"

[provider.xero.headers]
"Xero-Tenant-Id" = "tenant-123"

[provider.xero.retry]
base_delay_ms = 250
max_delay_ms = 10000
multiplier = 3.0
max_attempts = 8
transient = [429, 503]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Contains(t, cfg.Providers, "airtable")
	assert.Equal(t, 5.0, cfg.Providers["airtable"].RateLimit)

	xero := cfg.Providers["xero"]
	assert.Equal(t, "https://xero.example/api", xero.BaseURL)
	assert.Equal(t, "tenant-123", xero.Headers["Xero-Tenant-Id"])
	require.NotNil(t, xero.Retry)
	assert.Equal(t, 8, xero.Retry.MaxAttempts)
}

func TestRetryPolicyOverlay(t *testing.T) {
	r := &Retry{BaseDelayMS: 250, Multiplier: 3, MaxAttempts: 8, Transient: []int{429, 503}}
	p := r.Policy()

	assert.Equal(t, 250*time.Millisecond, p.BaseDelay)
	assert.Equal(t, 3.0, p.Multiplier)
	assert.Equal(t, 8, p.MaxAttempts)
	assert.Equal(t, []int{429, 503}, p.Transient)
	assert.Equal(t, 30*time.Second, p.MaxDelay, "unset fields keep the default")
}

func TestRetryPolicyDefaults(t *testing.T) {
	p := (&Retry{}).Policy()

	assert.Equal(t, 500*time.Millisecond, p.BaseDelay)
	assert.Contains(t, p.Transient, 429)
	assert.Zero(t, p.MaxAttempts)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "negative rate limit",
			in:   "[provider.slack]\nrate_limit = -1.0\n",
			want: "rate_limit",
		},
		{
			name: "multiplier below one",
			in:   "[provider.slack.retry]\nmultiplier = 0.5\n",
			want: "multiplier",
		},
		{
			name: "bad transient status",
			in:   "[provider.slack.retry]\ntransient = [42]\n",
			want: "transient status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOptions(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Len(t, cfg.Options("xero"), 3)
	assert.Len(t, cfg.Options("airtable"), 1)
	assert.Empty(t, cfg.Options("unknown"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Providers, 2)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Providers)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("not = [valid"))
	require.Error(t, err)
}
