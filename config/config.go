package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppEnv                 string
	AppPort                string
	AllowedOrigins         string
	DBDriver               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBPath                 string
	DBMaxIdleConns         int
	DBMaxOpenConns         int
	NatsURL                string
	SessionExpirationHours int
	ChannelTokenSecret     string
	ChannelTokenTTLMinutes int
	SweepIntervalMinutes   int
	TrashRetentionDays     int
	EventDispatchSeconds   int
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	return Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		AppPort:                getEnv("APP_PORT", "8080"),
		AllowedOrigins:         getEnv("ALLOWED_ORIGINS", "*"),
		DBDriver:               getEnv("DB_DRIVER", "postgres"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "tasker"),
		DBPassword:             getEnv("DB_PASSWORD", "tasker"),
		DBName:                 getEnv("DB_NAME", "tasker"),
		DBPath:                 getEnv("DB_PATH", "tasker.db"),
		DBMaxIdleConns:         getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:         getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		NatsURL:                getEnv("NATS_URL", "nats://localhost:4222"),
		SessionExpirationHours: getEnvAsInt("SESSION_EXPIRATION_HOURS", 168),
		ChannelTokenSecret:     getEnv("CHANNEL_TOKEN_SECRET", "change-this-channel-token-secret"),
		ChannelTokenTTLMinutes: getEnvAsInt("CHANNEL_TOKEN_TTL_MINUTES", 15),
		SweepIntervalMinutes:   getEnvAsInt("SWEEP_INTERVAL_MINUTES", 30),
		TrashRetentionDays:     getEnvAsInt("TRASH_RETENTION_DAYS", 30),
		EventDispatchSeconds:   getEnvAsInt("EVENT_DISPATCH_INTERVAL_SECONDS", 1),
	}
}
