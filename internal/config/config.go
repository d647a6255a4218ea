package config

import (
	"os"
	"strconv"
	"time"

	"gymhub/internal/cache"
	"gymhub/internal/database"
	"gymhub/internal/logger"
	"gymhub/internal/messaging"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	RequestTimeout time.Duration
	CORSOrigin     string

	Log logger.Config

	// Auth and users
	BcryptCost    int
	AdminEmail    string
	AdminPassword string

	// XML bulk import
	ImportConcurrency int
	UploadMaxBytes    int64

	MetricsEnabled      bool
	// порт /metrics у cmd/consumers
	ConsumerMetricsPort string

	Database database.Config
	Cache    cache.Config
	NATS     messaging.Config
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		CORSOrigin:     getEnv("CORS_ALLOW_ORIGIN", "*"),

		Log: logger.Config{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
		},

		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		ImportConcurrency: getEnvInt("IMPORT_CONCURRENCY", 8),
		UploadMaxBytes:    int64(getEnvInt("UPLOAD_MAX_BYTES", 50*1024*1024)),

		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
		ConsumerMetricsPort: getEnv("CONSUMER_METRICS_PORT", "9101"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "gym"),
			Password:           getEnv("DB_PASSWORD", "gym"),
			DBName:             getEnv("DB_NAME", "gym"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Cache: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
			TTL:      time.Duration(getEnvInt("SESSION_CACHE_TTL_SEC", 900)) * time.Second,
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "gymhub"),
			ClientID:  getEnv("NATS_CLIENT_ID", "gymhub-api"),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
