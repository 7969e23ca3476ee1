package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveEndpoint(t *testing.T) {
	ops := NewOps(":0", t.TempDir())

	recorder := httptest.NewRecorder()
	ops.server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func TestHealthDegradedWhenAssetsMissing(t *testing.T) {
	ops := NewOps(":0", t.TempDir())

	recorder := httptest.NewRecorder()
	ops.server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var response healthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "degraded", response.Status)
	assert.NotEmpty(t, response.Missing)
	assert.Len(t, response.Files, 7)
}

func TestHealthOKWithCompleteAssets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"translations.json", "services.json", "contacts.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0755))
	for _, name := range []string{"location_ru.mp4", "location_uz.mp4", "clinic_ru.mp4", "clinic_uz.mp4"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", name), []byte("stub"), 0644))
	}

	ops := NewOps(":0", dir)
	recorder := httptest.NewRecorder()
	ops.server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response healthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Empty(t, response.Missing)
}
