package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	WorkerMetricsPort string
	AutoMigrate       bool

	DB       DBConfig
	RabbitMQ RabbitMQConfig
}

type DBConfig struct {
	Driver   string // "pgx" or "sqlite3"
	Host     string
	Port     string
	User     string
	Password string
	Name     string // database name, or file path for sqlite3
	SSLMode  string
	PoolSize int
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

// Load reads the configuration from the environment. Unset variables fall
// back to the values the forum has always run with locally.
func Load() *Config {
	return &Config{
		AppName:           getEnv("APP_NAME", "forum"),
		AppEnv:            getEnv("APP_ENV", "development"),
		AppPort:           getEnv("APP_PORT", "5000"),
		WorkerMetricsPort: getEnv("WORKER_METRICS_PORT", "5001"),
		AutoMigrate:       getEnv("AUTO_MIGRATE", "0") == "1",

		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "pgx"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "Forum"),
			Password: getEnv("DB_PASSWORD", "123"),
			Name:     getEnv("DB_NAME", "forum"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			PoolSize: getEnvInt("DB_POOL_SIZE", 10),
		},

		RabbitMQ: RabbitMQConfig{
			URL:   os.Getenv("RABBITMQ_URL"),
			Queue: getEnv("EVENTS_QUEUE", "forum_events"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
