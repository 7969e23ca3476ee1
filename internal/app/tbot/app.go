package tbot

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/medionuz/ClinicTgBOT/internal/logcfg"
	"github.com/medionuz/ClinicTgBOT/internal/server"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/config"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/diag"
	"github.com/sirupsen/logrus"
)

// App represents the application structure responsible for initializing
// dependencies and running the Telegram bot.
type App struct {
	serviceProvider *ServiceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	ops             *server.Ops      // Operational HTTP server
}

// NewApp creates a new instance of the application.
func NewApp(ctx context.Context) (*App, error) {
	app := &App{}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the application and runs the Telegram bot.
func (a *App) Run() {
	a.runTelegramBot()
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.initOpsServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initConfig initializes the application configuration.
func (a *App) initConfig(_ context.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	a.config = cfg
	logcfg.RunLoggerConfig(a.config.EnvLogsLevel, a.config.EnvLogFileName)
	return nil
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = NewServiceProvider(
		a.config.EnvDataPath,
		a.config.EnvStoragePath,
		a.config.EnvAdminChatID,
	)
	return nil
}

// initOpsServer initializes the operational HTTP server.
func (a *App) initOpsServer(_ context.Context) error {
	a.ops = server.NewOps(a.config.EnvHTTPAddr, a.config.EnvDataPath)
	return nil
}

// runTelegramBot starts the Telegram bot with graceful shutdown.
func (a *App) runTelegramBot() {
	// Startup diagnostics over the data assets (missing videos are
	// tolerated at runtime, but worth knowing about immediately).
	diag.LogReport(diag.CheckDataFiles(a.config.EnvDataPath))

	// Initialize bot API
	botAPI, err := a.serviceProvider.BotAPI(a.config.EnvBotToken)
	if err != nil {
		logrus.Fatalf("[ERROR] can't make telegram bot, %v", err)
	}
	logrus.Infof("Bot API created successfully for %s", botAPI.Self.UserName)

	// Initialize bot service
	myBot, err := a.serviceProvider.BotService(botAPI)
	if err != nil {
		logrus.Fatalf("[ERROR] can't build bot service, %v", err)
	}

	go a.ops.Run()

	// Setup ticker for periodic state saving
	ticker := time.NewTicker(time.Minute * 5) // Ticker for saving sessions to file every 5 minutes
	defer ticker.Stop()

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	// Configure updates channel
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60 // seconds timeout
	updates := botAPI.GetUpdatesChan(updateConfig)

	sessions := a.serviceProvider.SessionsRepository()

	// Main loop
	for {
		select {
		case sig := <-signalChan: // Wait for shutdown signal
			logrus.Infof("Received %v signal, shutting down bot...", sig)
			if err = sessions.SaveBatchToFile(); err != nil {
				logrus.Error("Error while saving state on shutdown: ", err)
			}
			a.ops.Shutdown()
			logrus.Info("Shutting down main loop...")
			return

		case <-ticker.C: // Ticker event
			if err = sessions.SaveBatchToFile(); err != nil {
				logrus.Error("Error while saving state on ticker: ", err)
			}

		case update, ok := <-updates: // Telegram updates
			if !ok {
				logrus.Error("Telegram update chan closed, shutting down bot...")
				if err = sessions.SaveBatchToFile(); err != nil {
					logrus.Error("Error while saving state on shutdown: ", err)
				}
				a.ops.Shutdown()
				return
			}
			myBot.UpdateProcessing(&update)
		}
	}
}
