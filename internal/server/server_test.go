package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/siteforge/apiserver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		ServerPort: 0,
		Store: config.StoreConfig{
			Backend:    backend,
			DataDir:    dir,
			SchemaPath: filepath.Join(dir, "schema.json"),
			SQLitePath: filepath.Join(dir, "siteforge.db"),
		},
		CORSOrigins: []string{"*"},
		BcryptCost:  bcrypt.MinCost,
	}
}

func TestServerRoutes(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			srv, err := New(context.Background(), testConfig(t, backend))
			require.NoError(t, err)
			defer func() { _ = srv.Shutdown() }()

			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, http.StatusOK, rec.Code)

			doc := `{"profile":{"websiteName":"Acme"},"branding":{"palette":{"colors":["#fff"]}}}`
			req := httptest.NewRequest(http.MethodPost, "/api/site-config", bytes.NewBufferString(doc))
			req.Header.Set("Content-Type", "application/json")
			rec = httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		})
	}
}

func TestServerCORSPreflight(t *testing.T) {
	srv, err := New(context.Background(), testConfig(t, config.BackendFile))
	require.NoError(t, err)
	defer func() { _ = srv.Shutdown() }()

	req := httptest.NewRequest(http.MethodOptions, "/api/site-config", nil)
	req.Header.Set("Origin", "https://wizard.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerUnknownBackend(t *testing.T) {
	cfg := testConfig(t, "memcached")
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
