package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesIdleSession(t *testing.T) {
	sessions := NewSessionsMap("")

	session := sessions.Get(7)
	assert.Equal(t, int64(7), session.ChatID)
	assert.Equal(t, models.StateIdle, session.State)
	assert.Equal(t, models.LanguageDefault, session.Language)
	assert.True(t, session.Draft.Empty())
	assert.Equal(t, 1, sessions.Len())
}

func TestSetLanguageAndState(t *testing.T) {
	sessions := NewSessionsMap("")

	sessions.SetLanguage(7, "uz")
	sessions.SetState(7, models.StateWaitingForPhone)

	session := sessions.Get(7)
	assert.Equal(t, "uz", session.Language)
	assert.Equal(t, models.StateWaitingForPhone, session.State)
}

func TestUpdateDraftPatchesOnlyGivenFields(t *testing.T) {
	sessions := NewSessionsMap("")

	sessions.UpdateDraft(7, models.BookingDraft{Name: "Aziz"})
	sessions.UpdateDraft(7, models.BookingDraft{Phone: "+998901234567"})
	sessions.UpdateDraft(7, models.BookingDraft{Date: "Завтра"})

	draft := sessions.Get(7).Draft
	assert.Equal(t, "Aziz", draft.Name)
	assert.Equal(t, "+998901234567", draft.Phone)
	assert.Equal(t, "Завтра", draft.Date)

	// An empty patch field never wipes an earlier value.
	sessions.UpdateDraft(7, models.BookingDraft{ServiceID: "2"})
	draft = sessions.Get(7).Draft
	assert.Equal(t, "Aziz", draft.Name)
	assert.Equal(t, "2", draft.ServiceID)
}

func TestClearKeepsLanguage(t *testing.T) {
	sessions := NewSessionsMap("")

	sessions.SetLanguage(7, "uz")
	sessions.SetState(7, models.StateWaitingForService)
	sessions.UpdateDraft(7, models.BookingDraft{Name: "Aziz", Phone: "+99890"})

	sessions.Clear(7)

	session := sessions.Get(7)
	assert.Equal(t, models.StateIdle, session.State)
	assert.True(t, session.Draft.Empty())
	assert.Equal(t, "uz", session.Language)
}

func TestGetReturnsCopy(t *testing.T) {
	sessions := NewSessionsMap("")

	session := sessions.Get(7)
	session.Language = "uz"
	session.Draft.Name = "mutated"

	assert.Equal(t, models.LanguageDefault, sessions.Get(7).Language)
	assert.True(t, sessions.Get(7).Draft.Empty())
}

func TestSaveAndReadRoundtrip(t *testing.T) {
	storagePath := filepath.Join(t.TempDir(), "sessions.json")
	sessions := NewSessionsMap(storagePath)

	sessions.SetLanguage(1, "uz")
	sessions.SetState(1, models.StateWaitingForDate)
	sessions.UpdateDraft(1, models.BookingDraft{Name: "Aziz", Phone: "+998901234567"})
	sessions.SetLanguage(2, "ru")

	require.NoError(t, sessions.SaveBatchToFile())

	restored := NewSessionsMap(storagePath)
	require.NoError(t, restored.ReadFileToMemory())
	assert.Equal(t, 2, restored.Len())

	session := restored.Get(1)
	assert.Equal(t, "uz", session.Language)
	assert.Equal(t, models.StateWaitingForDate, session.State)
	assert.Equal(t, "Aziz", session.Draft.Name)
	assert.Equal(t, "+998901234567", session.Draft.Phone)
}

func TestReadFileToMemoryMissingFile(t *testing.T) {
	sessions := NewSessionsMap(filepath.Join(t.TempDir(), "absent.json"))
	assert.NoError(t, sessions.ReadFileToMemory())
	assert.Equal(t, 0, sessions.Len())
}

func TestReadFileToMemoryEmptyFile(t *testing.T) {
	storagePath := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(storagePath, nil, 0644))

	sessions := NewSessionsMap(storagePath)
	assert.NoError(t, sessions.ReadFileToMemory())
	assert.Equal(t, 0, sessions.Len())
}

func TestReadFileToMemoryCorruptFile(t *testing.T) {
	storagePath := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(storagePath, []byte("{broken"), 0644))

	sessions := NewSessionsMap(storagePath)
	assert.Error(t, sessions.ReadFileToMemory())
}
