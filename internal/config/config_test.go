package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/share-preview/internal/metadata"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, ".", cfg.Site.Root)
	assert.False(t, cfg.Upload.Enabled)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, metadata.DefaultDefaults(), cfg.MetadataDefaults())
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  request_timeout_seconds: 20
auth:
  enabled: true
  api_key: secret
fetch:
  timeout_seconds: 5
  user_agent: preview-agent
site:
  root: /srv/site
  config_candidates: ["app/layout.tsx"]
  public_dir: static
defaults:
  title: Home
  site_url: https://example.org
  image_width: 800
  image_height: 418
upload:
  enabled: true
  max_bytes: 1024
logging:
  development: false
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "secret", cfg.Auth.APIKey)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "preview-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, "/srv/site", cfg.Site.Root)
	assert.True(t, cfg.Upload.Enabled)
	assert.EqualValues(t, 1024, cfg.Upload.MaxBytes)
	assert.False(t, cfg.Logging.Development)

	d := cfg.MetadataDefaults()
	assert.Equal(t, []string{"app/layout.tsx"}, d.ConfigCandidates)
	assert.Equal(t, "static", d.PublicDir)
	assert.Equal(t, "Home", d.Title)
	assert.Equal(t, "https://example.org", d.SiteURL)
	assert.Equal(t, 800, d.ImageWidth)
	assert.Equal(t, "Start Page Preview", d.ImageAlt, "unset keys keep defaults")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHAREPREVIEW_SERVER_PORT", "7070")
	t.Setenv("SHAREPREVIEW_FETCH_TIMEOUT_SECONDS", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"fetch timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }},
		{"request timeout not above fetch", func(c *Config) { c.Server.RequestTimeoutSeconds = 10 }},
		{"site root", func(c *Config) { c.Site.Root = " " }},
		{"config candidates", func(c *Config) { c.Site.ConfigCandidates = nil }},
		{"site url", func(c *Config) { c.Defaults.SiteURL = "yourdomain.com" }},
		{"image size", func(c *Config) { c.Defaults.ImageHeight = 0 }},
		{"upload size", func(c *Config) { c.Upload.Enabled = true; c.Upload.MaxBytes = 0 }},
		{"api key", func(c *Config) { c.Auth.Enabled = true }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
