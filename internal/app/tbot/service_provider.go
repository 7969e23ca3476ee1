// Package tbot provides dependency injection and service management for
// the clinic bot components. It initializes and provides access to the
// content store, session repository, dialogue machine and bot service.
package tbot

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/booking"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/content"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/notify"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/repository"
	botServ "github.com/medionuz/ClinicTgBOT/internal/tg_bot/service"
	"github.com/sirupsen/logrus"
)

// ServiceProvider manages the dependency injection for the bot components.
type ServiceProvider struct {
	// Domain collaborators
	contentStore *content.Store
	sessionsRepo *repository.Sessions
	machine      *booking.Machine
	notifier     *notify.Dispatcher

	// Bot API
	botAPI *tgbotapi.BotAPI

	// Bot service
	botService *botServ.TgBotServices

	// Config values
	dataPath    string
	storagePath string
	adminChatID int64

	contentOnce    sync.Once
	sessionsOnce   sync.Once
	machineOnce    sync.Once
	notifierOnce   sync.Once
	botAPIOnce     sync.Once
	botServiceOnce sync.Once
}

// NewServiceProvider creates a new instance of the service provider.
func NewServiceProvider(dataPath, storagePath string, adminChatID int64) *ServiceProvider {
	if dataPath == "" || storagePath == "" {
		logrus.Fatal("ServiceProvider data and storage paths must be non-empty")
	}
	return &ServiceProvider{
		dataPath:    dataPath,
		storagePath: storagePath,
		adminChatID: adminChatID,
	}
}

// ContentStore returns the localized content store, loading it on first use.
func (s *ServiceProvider) ContentStore() (*content.Store, error) {
	var err error
	s.contentOnce.Do(func() {
		s.contentStore, err = content.NewStore(s.dataPath)
		if err != nil {
			logrus.WithError(err).Error("Failed to load content store")
			s.contentStore = nil
		} else {
			logrus.Info("ContentStore initialized")
		}
	})
	if s.contentStore == nil {
		return nil, fmt.Errorf("content store not initialized")
	}
	return s.contentStore, nil
}

// SessionsRepository returns the session store with any persisted state loaded.
func (s *ServiceProvider) SessionsRepository() *repository.Sessions {
	s.sessionsOnce.Do(func() {
		s.sessionsRepo = repository.NewSessionsMap(s.storagePath)
		if err := s.sessionsRepo.ReadFileToMemory(); err != nil {
			logrus.WithError(err).Error("Failed to read sessions from file")
		} else {
			logrus.Info("SessionsRepository initialized and state loaded")
		}
	})
	return s.sessionsRepo
}

// Machine returns the appointment dialogue controller.
func (s *ServiceProvider) Machine() (*booking.Machine, error) {
	store, err := s.ContentStore()
	if err != nil {
		return nil, err
	}
	s.machineOnce.Do(func() {
		s.machine = booking.NewMachine(store, s.SessionsRepository())
		logrus.Info("Booking machine initialized")
	})
	return s.machine, nil
}

// Notifier returns the operator notification dispatcher.
func (s *ServiceProvider) Notifier(tg notify.Sender) *notify.Dispatcher {
	s.notifierOnce.Do(func() {
		s.notifier = notify.NewDispatcher(tg, s.adminChatID)
		logrus.Info("Notifier initialized")
	})
	return s.notifier
}

// BotAPI returns the Telegram Bot API instance.
func (s *ServiceProvider) BotAPI(token string) (*tgbotapi.BotAPI, error) {
	var err error
	s.botAPIOnce.Do(func() {
		s.botAPI, err = tgbotapi.NewBotAPI(token)
		if err != nil {
			logrus.WithError(err).Error("Failed to initialize BotAPI")
			s.botAPI = nil
		}
	})
	if s.botAPI == nil {
		return nil, fmt.Errorf("bot API not initialized")
	}

	logrus.Info("BotApi initialized")
	return s.botAPI, nil
}

// BotService returns the main Telegram bot service.
func (s *ServiceProvider) BotService(botAPI *tgbotapi.BotAPI) (*botServ.TgBotServices, error) {
	store, err := s.ContentStore()
	if err != nil {
		return nil, fmt.Errorf("bot service not initialized: %w", err)
	}
	machine, err := s.Machine()
	if err != nil {
		return nil, fmt.Errorf("bot service not initialized: %w", err)
	}

	s.botServiceOnce.Do(func() {
		tg := botServ.NewTelegramClient(botAPI)
		s.botService = botServ.NewTgBot(
			store,
			s.SessionsRepository(),
			machine,
			s.Notifier(tg),
			tg,
			s.dataPath,
		)
		logrus.Info("BotService initialized")
	})
	return s.botService, nil
}
