package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

const sampleConfig = `
default_provider: yaml
factory_suffixes: [ModelProviderFactory, Factory]
log:
  level: debug
providers:
  - type: json
    name: orders
    data: '{"total": 3}'
  - type: yaml
    file: model.yaml
  - type: remote
    url: https://models.example.com/page
    format: xml
    timeout_seconds: 5
    max_retries: 2
    requests_per_minute: 60
    cache_ttl_seconds: 30
    user_agent: razorpad-docs/1.0
    headers:
      X-Tenant: acme
    client_credentials:
      client_id: id
      client_secret: secret
      token_url: https://auth.example.com/token
      scopes: [models.read]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.DefaultProvider)
	assert.Equal(t, []string{"ModelProviderFactory", "Factory"}, cfg.FactorySuffixes)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.Len(t, cfg.Providers, 3)

	assert.Equal(t, types.ProviderTypeJSON, cfg.Providers[0].Type)
	assert.Equal(t, "orders", cfg.Providers[0].Name)
	assert.Equal(t, `{"total": 3}`, cfg.Providers[0].Data)

	remote := cfg.Providers[2]
	assert.Equal(t, types.ProviderTypeXML, remote.Format)
	assert.Equal(t, 5*time.Second, remote.Timeout())
	assert.Equal(t, 30*time.Second, remote.CacheTTL())
	assert.Equal(t, "acme", remote.Headers["X-Tenant"])
	assert.Equal(t, "razorpad-docs/1.0", remote.UserAgent)
	require.NotNil(t, remote.ClientCredentials)
	assert.Equal(t, []string{"models.read"}, remote.ClientCredentials.Scopes)

	assert.NoError(t, cfg.Validate())
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("providers: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.DefaultProvider)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("providers: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "razorpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Providers, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   ProviderEntry
		wantErr []string
	}{
		{
			name:  "inline json",
			entry: ProviderEntry{Type: types.ProviderTypeJSON, Data: "{}"},
		},
		{
			name:    "unknown type",
			entry:   ProviderEntry{Type: "csv"},
			wantErr: []string{`unknown provider type "csv"`},
		},
		{
			name:    "data and file",
			entry:   ProviderEntry{Type: types.ProviderTypeXML, Data: "<a/>", File: "a.xml"},
			wantErr: []string{"mutually exclusive"},
		},
		{
			name:    "remote without url",
			entry:   ProviderEntry{Type: types.ProviderTypeRemote},
			wantErr: []string{"requires url"},
		},
		{
			name:    "remote with bad format",
			entry:   ProviderEntry{Type: types.ProviderTypeRemote, URL: "http://x", Format: "toml"},
			wantErr: []string{`unsupported remote format "toml"`},
		},
		{
			name: "incomplete client credentials",
			entry: ProviderEntry{
				Type:              types.ProviderTypeRemote,
				URL:               "http://x",
				ClientCredentials: &ClientCredentialsEntry{ClientSecret: "s"},
			},
			wantErr: []string{"client_id and token_url"},
		},
		{
			name: "negative limits",
			entry: ProviderEntry{
				Type:              types.ProviderTypeRemote,
				URL:               "http://x",
				TimeoutSeconds:    -1,
				MaxRetries:        -1,
				RequestsPerMinute: -1,
				CacheTTLSeconds:   -1,
			},
			wantErr: []string{"timeout_seconds", "max_retries", "requests_per_minute", "cache_ttl_seconds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfig_Validate_ReportsIndex(t *testing.T) {
	cfg := &Config{Providers: []ProviderEntry{
		{Type: types.ProviderTypeJSON},
		{Type: types.ProviderTypeRemote},
		{Type: "bogus"},
	}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "providers[1]: remote provider requires url")
	assert.Contains(t, err.Error(), `providers[2]: unknown provider type "bogus"`)
	assert.NotContains(t, err.Error(), "providers[0]")
}
