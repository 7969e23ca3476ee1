package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	EnvLogsLevel   string `env:"LOG_LEVEL" envDefault:"info"`                  // Log level for the application (e.g., DEBUG, INFO)
	EnvLogFileName string `env:"LOG_FILE_NAME" envDefault:"clinicBot.log"`     // File's name for log output
	EnvBotToken    string `env:"TOKEN_BOT"`                                    // Telegram Bot Token for authentication with the Telegram API
	EnvStoragePath string `env:"FILE_STORAGE_PATH" envDefault:"sessions.json"` // File path for persisting chat sessions
	EnvDataPath    string `env:"DATA_PATH" envDefault:"data"`                  // Directory with translations/services/contacts and videos
	EnvHTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`                 // Listen address of the ops HTTP server
	EnvAdminChatID int64  // Operator chat for booking notifications; 0 disables them
}

// NewConfig initializes a new Config instance by loading environment
// variables from a bot.env file when present.
func NewConfig() (*Config, error) {
	if err := godotenv.Load("bot.env"); err != nil {
		logrus.Info("No bot.env file found, using system environment variables")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if config.EnvBotToken == "" {
		return nil, errors.New("TOKEN_BOT is required")
	}

	// An invalid operator chat id disables notifications instead of
	// failing startup, matching the soft behavior of the rest of the bot.
	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logrus.WithError(err).Warn("Invalid ADMIN_CHAT_ID, operator notifications will be disabled")
		} else {
			config.EnvAdminChatID = id
		}
	}

	return config, nil
}
