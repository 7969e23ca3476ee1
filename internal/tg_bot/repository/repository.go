// Package repository provides the session state store of the bot.
// Sessions live in memory and are periodically snapshotted to a file.
package repository

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
)

// Sessions manages per-chat dialogue state in memory and on disk.
type Sessions struct {
	BatchBuffer     map[int64]*models.Session `json:"batchBuffer"` // In-memory store of sessions by chat ID.
	storageFilePath string                    // File path for persisting sessions.
	mu              *sync.RWMutex             // Protects BatchBuffer from concurrent access
}

// NewSessionsMap creates a new Sessions instance with an empty memory buffer.
func NewSessionsMap(envStoragePath string) *Sessions {
	return &Sessions{
		BatchBuffer:     make(map[int64]*models.Session),
		storageFilePath: envStoragePath,
		mu:              &sync.RWMutex{},
	}
}

// ensure returns the session for chatID, default-constructing an idle
// session with the default language on first access. Callers must hold mu.
func (m *Sessions) ensure(chatID int64) *models.Session {
	session, ok := m.BatchBuffer[chatID]
	if !ok || session == nil {
		session = &models.Session{
			ChatID:   chatID,
			Language: models.LanguageDefault,
			State:    models.StateIdle,
		}
		m.BatchBuffer[chatID] = session
	}
	if session.State == "" {
		session.State = models.StateIdle
	}
	if session.Language == "" {
		session.Language = models.LanguageDefault
	}
	return session
}

// Get returns a copy of the session for chatID, creating an idle one on
// first lookup.
func (m *Sessions) Get(chatID int64) models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.ensure(chatID)
}

// SetLanguage stores the user's language preference.
func (m *Sessions) SetLanguage(chatID int64, lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensure(chatID).Language = lang
}

// SetState moves the session to the given dialogue state.
func (m *Sessions) SetState(chatID int64, state models.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensure(chatID).State = state
}

// UpdateDraft applies the non-empty fields of patch to the session draft.
// Fields set earlier in the dialogue are never cleared here.
func (m *Sessions) UpdateDraft(chatID int64, patch models.BookingDraft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := &m.ensure(chatID).Draft
	if patch.Name != "" {
		draft.Name = patch.Name
	}
	if patch.Phone != "" {
		draft.Phone = patch.Phone
	}
	if patch.Date != "" {
		draft.Date = patch.Date
	}
	if patch.ServiceID != "" {
		draft.ServiceID = patch.ServiceID
	}
}

// Clear resets the session to idle with an empty draft. The language
// preference survives the reset.
func (m *Sessions) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.ensure(chatID)
	session.State = models.StateIdle
	session.Draft = models.BookingDraft{}
}

// Len returns the number of known sessions.
func (m *Sessions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.BatchBuffer)
}

// ReadFileToMemory reads sessions from the storage file into the
// in-memory buffer. A missing or empty file is not an error.
func (m *Sessions) ReadFileToMemory() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.storageFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Infof("Storage file %s does not exist, starting with empty buffer", m.storageFilePath)
			return nil
		}
		err = fmt.Errorf("failed to read storage file %s: %w", m.storageFilePath, err)
		logrus.WithError(err).Error("Error reading storage file")
		return err
	}

	if len(data) == 0 {
		logrus.Infof("Storage file %s is empty, starting with empty buffer", m.storageFilePath)
		return nil
	}

	var buffer map[int64]*models.Session
	if err = json.Unmarshal(data, &buffer); err != nil {
		err = fmt.Errorf("failed to unmarshal storage file %s: %w", m.storageFilePath, err)
		logrus.WithError(err).Error("Error parsing storage file")
		return err
	}

	m.BatchBuffer = buffer
	logrus.Infof("Loaded %d sessions from %s", len(m.BatchBuffer), m.storageFilePath)
	return nil
}

// SaveBatchToFile persists the in-memory session buffer to the storage file.
func (m *Sessions) SaveBatchToFile() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	startTime := time.Now()

	// Write to a temporary file first
	tempPath := m.storageFilePath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		err = fmt.Errorf("failed to open temp file %s: %w", tempPath, err)
		logrus.WithError(err).Error("Error saving batch to file")
		return err
	}
	defer func() {
		if err = file.Close(); err != nil {
			logrus.WithError(err).Errorf("Failed to close file: %v", err)
		}
	}()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	if err = encoder.Encode(m.BatchBuffer); err != nil {
		err = fmt.Errorf("failed to encode batch to temp file %s: %w", tempPath, err)
		logrus.WithError(err).Error("Error encoding batch")
		return err
	}
	if err = writer.Flush(); err != nil {
		err = fmt.Errorf("failed to flush temp file %s: %w", tempPath, err)
		logrus.WithError(err).Error("Error flushing batch")
		return err
	}

	// Atomically rename a temp file to final destination
	if err = os.Rename(tempPath, m.storageFilePath); err != nil {
		err = fmt.Errorf("failed to rename temp file %s to %s: %w", tempPath, m.storageFilePath, err)
		logrus.WithError(err).Error("Error finalizing batch save")
		return err
	}

	elapsedTime := time.Since(startTime)
	logrus.Infof("Saved %d sessions to %s in %v", len(m.BatchBuffer), m.storageFilePath, elapsedTime)
	return nil
}
