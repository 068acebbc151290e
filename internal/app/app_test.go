package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/share-preview/internal/app"
	"github.com/JakeFAU/share-preview/internal/config"
)

func loadConfig(t *testing.T, root string) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Site.Root = root
	return cfg
}

func TestNewMissingRoot(t *testing.T) {
	_, err := app.New(loadConfig(t, filepath.Join(t.TempDir(), "absent")), zap.NewNop())
	assert.Error(t, err)
}

func TestAppServesLocalMetadata(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "app"), 0o750))
	layout := "const siteUrl = 'https://site.dev';\nexport const metadata = { title: 'Local' };"
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "app", "layout.tsx"), []byte(layout), 0o600))

	a, err := app.New(loadConfig(t, root), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	rec, err := a.GetAssembler().Local(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec.Title)
	assert.Equal(t, "Local", *rec.Title)

	resp := httptest.NewRecorder()
	a.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/metadata-editor/current", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"title":"Local"`)
}

func TestAppUploadGate(t *testing.T) {
	root := t.TempDir()
	cfg := loadConfig(t, root)

	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	resp := httptest.NewRecorder()
	a.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/metadata-editor/upload-image", nil))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	cfg.Upload = config.UploadConfig{Enabled: true, MaxBytes: 1 << 10}
	a, err = app.New(cfg, nil)
	require.NoError(t, err)
	assert.True(t, a.GetConfig().Upload.Enabled)
	resp = httptest.NewRecorder()
	a.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/metadata-editor/upload-image", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
