package diag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDataFilesEmptyDir(t *testing.T) {
	reports := CheckDataFiles(t.TempDir())

	// Three JSON files plus four videos are expected.
	require.Len(t, reports, 7)
	for _, report := range reports {
		assert.False(t, report.Exists, report.Path)
	}
	assert.Len(t, Missing(reports), 7)
}

func TestCheckDataFilesCompleteDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"translations.json", "services.json", "contacts.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"ru": {}}`), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0755))
	for _, name := range []string{"location_ru.mp4", "location_uz.mp4", "clinic_ru.mp4", "clinic_uz.mp4"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", name), []byte("stub"), 0644))
	}

	reports := CheckDataFiles(dir)
	assert.Empty(t, Missing(reports))
	for _, report := range reports {
		assert.True(t, report.Exists, report.Path)
		assert.Greater(t, report.SizeBytes, int64(0), report.Path)
	}
}

func TestMissingFlagsBrokenJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "translations.json"), []byte("{broken"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "services.json"), []byte(`{"ru": []}`), 0644))

	missing := Missing(CheckDataFiles(dir))
	assert.Contains(t, missing, filepath.Join(dir, "translations.json"))
	assert.NotContains(t, missing, filepath.Join(dir, "services.json"))
	assert.Contains(t, missing, filepath.Join(dir, "contacts.json"))
}
