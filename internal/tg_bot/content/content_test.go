package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTexts() map[string]string {
	texts := make(map[string]string, len(CoreKeys))
	for _, key := range CoreKeys {
		texts[key] = "text for " + key
	}
	return texts
}

func writeDataDir(t *testing.T, translations, services, contacts string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "translations.json"), []byte(translations), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "services.json"), []byte(services), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contacts.json"), []byte(contacts), 0644))
	return dir
}

func TestNewStoreFromFiles(t *testing.T) {
	dir := writeDataDir(t,
		`{"ru": {`+coreKeysJSON()+`}}`,
		`{"ru": [{"id": "1", "name": "УЗИ", "price": "180 000"}]}`,
		`{"ru": {"location": {"latitude": 41.3, "longitude": 69.2}, "phone": "+998712000000"}}`,
	)

	store, err := NewStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"ru"}, store.Languages())
	assert.True(t, store.HasLanguage("ru"))
	assert.False(t, store.HasLanguage("uz"))

	service, err := store.ServiceByID("ru", "1")
	require.NoError(t, err)
	assert.Equal(t, "УЗИ", service.Name)

	info, err := store.Contacts("ru")
	require.NoError(t, err)
	assert.Equal(t, "+998712000000", info.Phone)
	assert.InDelta(t, 41.3, info.Location.Latitude, 0.001)
}

func TestNewStoreMissingFile(t *testing.T) {
	_, err := NewStore(t.TempDir())
	assert.Error(t, err)
}

func TestNewStoreInvalidJSON(t *testing.T) {
	dir := writeDataDir(t, `{not json`, `{}`, `{}`)
	_, err := NewStore(dir)
	assert.Error(t, err)
}

func TestTextLookup(t *testing.T) {
	store := NewStoreFromData(
		map[string]map[string]string{"ru": fullTexts()},
		map[string][]models.Service{"ru": {{ID: "1", Name: "УЗИ"}}},
		map[string]models.ContactInfo{"ru": {}},
	)

	text, err := store.Text("ru", "welcome")
	require.NoError(t, err)
	assert.Equal(t, "text for welcome", text)

	_, err = store.Text("ru", "no_such_key")
	assert.ErrorIs(t, err, ErrMissingTranslation)

	_, err = store.Text("de", "welcome")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestTextOrKeyFallsBackToKey(t *testing.T) {
	store := NewStoreFromData(
		map[string]map[string]string{"ru": fullTexts()},
		nil, nil,
	)

	assert.Equal(t, "text for welcome", store.TextOrKey("ru", "welcome"))
	assert.Equal(t, "no_such_key", store.TextOrKey("ru", "no_such_key"))
}

func TestServiceByIDNotFound(t *testing.T) {
	store := NewStoreFromData(
		map[string]map[string]string{"ru": fullTexts()},
		map[string][]models.Service{"ru": {{ID: "1", Name: "УЗИ"}}},
		map[string]models.ContactInfo{"ru": {}},
	)

	_, err := store.ServiceByID("ru", "99")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestServicesKeepConfiguredOrder(t *testing.T) {
	store := NewStoreFromData(
		map[string]map[string]string{"ru": fullTexts()},
		map[string][]models.Service{"ru": {
			{ID: "3", Name: "Массаж"},
			{ID: "1", Name: "УЗИ"},
			{ID: "2", Name: "Анализы"},
		}},
		map[string]models.ContactInfo{"ru": {}},
	)

	services := store.Services("ru")
	require.Len(t, services, 3)
	assert.Equal(t, "Массаж", services[0].Name)
	assert.Equal(t, "УЗИ", services[1].Name)
	assert.Equal(t, "Анализы", services[2].Name)
}

func TestValidate(t *testing.T) {
	texts := fullTexts()
	services := map[string][]models.Service{"ru": {{ID: "1", Name: "УЗИ"}}}
	contacts := map[string]models.ContactInfo{"ru": {}}

	t.Run("complete data passes", func(t *testing.T) {
		store := NewStoreFromData(map[string]map[string]string{"ru": texts}, services, contacts)
		assert.NoError(t, store.Validate())
	})

	t.Run("no languages", func(t *testing.T) {
		store := NewStoreFromData(nil, nil, nil)
		assert.Error(t, store.Validate())
	})

	t.Run("missing core key", func(t *testing.T) {
		partial := fullTexts()
		delete(partial, "enter_phone")
		store := NewStoreFromData(map[string]map[string]string{"ru": partial}, services, contacts)
		assert.ErrorIs(t, store.Validate(), ErrMissingTranslation)
	})

	t.Run("empty catalog", func(t *testing.T) {
		store := NewStoreFromData(map[string]map[string]string{"ru": texts}, nil, contacts)
		assert.Error(t, store.Validate())
	})

	t.Run("missing contacts", func(t *testing.T) {
		store := NewStoreFromData(map[string]map[string]string{"ru": texts}, services, nil)
		assert.Error(t, store.Validate())
	})
}

// coreKeysJSON renders the full core key set as JSON object members so
// file-based tests stay valid when the key list grows.
func coreKeysJSON() string {
	out := ""
	for i, key := range CoreKeys {
		if i > 0 {
			out += ", "
		}
		out += `"` + key + `": "text for ` + key + `"`
	}
	return out
}
