// Package content holds the immutable language-keyed data of the bot:
// UI texts, the service catalog and clinic contact records. Everything is
// loaded once at startup from JSON files and never mutated afterwards.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingTranslation is returned when a text key is absent for a language.
	ErrMissingTranslation = errors.New("missing translation key")
	// ErrServiceNotFound is returned when a service id is not in the catalog.
	ErrServiceNotFound = errors.New("service not found")
	// ErrUnknownLanguage is returned for a language the store was not loaded with.
	ErrUnknownLanguage = errors.New("unknown language")
)

// CoreKeys must be present for every language; Validate fails otherwise.
var CoreKeys = []string{
	"welcome",
	"contacts",
	"appointment",
	"about_clinic",
	"about_clinic_text",
	"contact_info",
	"location",
	"video",
	"call",
	"back",
	"enter_name",
	"enter_phone",
	"send_contact",
	"invalid_phone",
	"select_date",
	"today",
	"tomorrow",
	"day_after_tomorrow",
	"other_date",
	"enter_other_date",
	"select_service",
	"service_not_found",
	"appointment_confirmed",
	"make_another_appointment",
	"not_specified",
	"error_occurred",
	"location_caption",
	"video_caption",
	"video_unavailable",
}

// Store is the read-only localized content of the bot.
type Store struct {
	translations map[string]map[string]string
	services     map[string][]models.Service
	contacts     map[string]models.ContactInfo
}

// NewStore reads translations.json, services.json and contacts.json from
// dataPath and validates the core key set.
func NewStore(dataPath string) (*Store, error) {
	var translations map[string]map[string]string
	if err := readJSON(filepath.Join(dataPath, "translations.json"), &translations); err != nil {
		return nil, err
	}
	var services map[string][]models.Service
	if err := readJSON(filepath.Join(dataPath, "services.json"), &services); err != nil {
		return nil, err
	}
	var contacts map[string]models.ContactInfo
	if err := readJSON(filepath.Join(dataPath, "contacts.json"), &contacts); err != nil {
		return nil, err
	}

	store := NewStoreFromData(translations, services, contacts)
	if err := store.Validate(); err != nil {
		return nil, err
	}
	logrus.Infof("Content loaded for languages %v", store.Languages())
	return store, nil
}

// NewStoreFromData builds a store from already decoded maps.
func NewStoreFromData(
	translations map[string]map[string]string,
	services map[string][]models.Service,
	contacts map[string]models.ContactInfo,
) *Store {
	return &Store{
		translations: translations,
		services:     services,
		contacts:     contacts,
	}
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read content file %s: %w", path, err)
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse content file %s: %w", path, err)
	}
	return nil
}

// Languages returns the loaded language codes in sorted order.
func (s *Store) Languages() []string {
	languages := make([]string, 0, len(s.translations))
	for lang := range s.translations {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

// HasLanguage reports whether texts were loaded for lang.
func (s *Store) HasLanguage(lang string) bool {
	_, ok := s.translations[lang]
	return ok
}

// Text returns the UI string for the given language and key.
func (s *Store) Text(lang, key string) (string, error) {
	texts, ok := s.translations[lang]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	text, ok := texts[key]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, lang, key)
	}
	return text, nil
}

// TextOrKey is Text with a logging fallback: after Validate passed at
// startup a miss can only mean a non-core key, so the key itself is
// returned instead of failing the dialogue.
func (s *Store) TextOrKey(lang, key string) string {
	text, err := s.Text(lang, key)
	if err != nil {
		logrus.WithError(err).Warn("Translation lookup failed")
		return key
	}
	return text
}

// Services returns the catalog for lang in its configured order.
func (s *Store) Services(lang string) []models.Service {
	return s.services[lang]
}

// ServiceByID resolves a catalog id for lang.
func (s *Store) ServiceByID(lang, id string) (models.Service, error) {
	for _, service := range s.services[lang] {
		if service.ID == id {
			return service, nil
		}
	}
	return models.Service{}, fmt.Errorf("%w: %s/%s", ErrServiceNotFound, lang, id)
}

// Contacts returns the clinic contact record for lang.
func (s *Store) Contacts(lang string) (models.ContactInfo, error) {
	info, ok := s.contacts[lang]
	if !ok {
		return models.ContactInfo{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	return info, nil
}

// Validate checks that every language carries all core keys, a non-empty
// service catalog and a contact record. It is fatal at startup.
func (s *Store) Validate() error {
	if len(s.translations) == 0 {
		return errors.New("no languages loaded")
	}
	for _, lang := range s.Languages() {
		for _, key := range CoreKeys {
			if _, ok := s.translations[lang][key]; !ok {
				return fmt.Errorf("%w: %s/%s", ErrMissingTranslation, lang, key)
			}
		}
		if len(s.services[lang]) == 0 {
			return fmt.Errorf("no services configured for language %s", lang)
		}
		if _, ok := s.contacts[lang]; !ok {
			return fmt.Errorf("no contacts configured for language %s", lang)
		}
	}
	return nil
}
