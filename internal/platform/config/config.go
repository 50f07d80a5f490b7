package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const stateDirName = ".reflexum"

// Secrets are credentials read from the environment (or .env files). They take
// precedence over the values persisted in the settings file.
type Secrets struct {
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIBase  string
	LLMAPIKey        string
	LLMBaseURL       string
	LLMModel         string
}

type Config struct {
	VaultPath    string
	StateDir     string
	DBPath       string
	SettingsPath string
	ActivePath   string
	LogLevel     string
	LogFormat    string
	Secrets      Secrets
}

func New(vaultPath string) (Config, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	stateDir := filepath.Join(vaultPath, stateDirName)
	if err := loadEnvFiles(filepath.Join(stateDir, ".env"), ".env"); err != nil {
		return Config{}, err
	}
	return Config{
		VaultPath:    vaultPath,
		StateDir:     stateDir,
		DBPath:       filepath.Join(stateDir, "reflexum.db"),
		SettingsPath: filepath.Join(stateDir, "settings.yaml"),
		ActivePath:   filepath.Join(stateDir, "active-session.json"),
		LogLevel:     getEnv("REFLEXUM_LOG_LEVEL", "info"),
		LogFormat:    getEnv("REFLEXUM_LOG_FORMAT", "text"),
		Secrets: Secrets{
			TelegramBotToken: os.Getenv("REFLEXUM_TELEGRAM_BOT_TOKEN"),
			TelegramChatID:   os.Getenv("REFLEXUM_TELEGRAM_CHAT_ID"),
			TelegramAPIBase:  getEnv("REFLEXUM_TELEGRAM_API_BASE", "https://api.telegram.org"),
			LLMAPIKey:        os.Getenv("REFLEXUM_LLM_API_KEY"),
			LLMBaseURL:       os.Getenv("REFLEXUM_LLM_BASE_URL"),
			LLMModel:         os.Getenv("REFLEXUM_LLM_MODEL"),
		},
	}, nil
}

// loadEnvFiles loads every existing file; variables already set in the
// process environment are never overwritten.
func loadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
