package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBPath string

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Telegram (push-уведомления)
	TelegramBotToken string

	// File Storage
	UploadPath  string
	MaxFileSize int64

	// AI-помощник
	AIAPIURL  string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration

	// Default admin (создается при первом запуске)
	AdminUsername string
	AdminPassword string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		Host:             getEnv("HOST", "0.0.0.0"),
		DBPath:           getEnv("DB_PATH", "data/lms.db"),
		JWTSecret:        getEnv("JWT_SECRET", "lms_secret_key_2026"),
		JWTExpiration:    24 * time.Hour,
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		UploadPath:       getEnv("UPLOAD_PATH", "data/uploads"),
		AIAPIURL:         getEnv("AI_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIModel:          getEnv("AI_MODEL", "gpt-4o-mini"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
	}

	if maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "52428800"), 10, 64); err == nil {
		config.MaxFileSize = maxFileSize
	} else {
		config.MaxFileSize = 50 * 1024 * 1024 // 50MB по умолчанию
	}

	if timeoutSec, err := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "30")); err == nil && timeoutSec > 0 {
		config.AITimeout = time.Duration(timeoutSec) * time.Second
	} else {
		config.AITimeout = 30 * time.Second
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
