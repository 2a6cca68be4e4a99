package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel  string
	LogFormat string

	JWTSecret string

	// RedisAddr enables the cross-instance realtime relay when set.
	RedisAddr     string
	RedisPassword string

	// PushEnabled switches between the Expo notifier and a no-op one.
	PushEnabled     bool
	ExpoEndpoint    string
	ExpoAccessToken string

	FanoutConcurrency int
	PushTimeout       time.Duration

	NotificationRetention         time.Duration
	NotificationRetentionSchedule string
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var err error
	cfg := Config{
		HTTPPort:                      getEnv("HTTP_PORT", "8080"),
		DBHost:                        getEnv("DB_HOST", "localhost"),
		DBPort:                        getEnv("DB_PORT", "5432"),
		DBUser:                        getEnv("DB_USER", "postgres"),
		DBPassword:                    getEnv("DB_PASSWORD", ""),
		DBName:                        getEnv("DB_NAME", "courierhub"),
		DBSslMode:                     getEnv("DB_SSLMODE", "disable"),
		LogLevel:                      getEnv("LOG_LEVEL", "info"),
		LogFormat:                     getEnv("LOG_FORMAT", "json"),
		JWTSecret:                     getEnv("JWT_SECRET_KEY", ""),
		RedisAddr:                     getEnv("REDIS_ADDRESS", ""),
		RedisPassword:                 getEnv("REDIS_PASSWORD", ""),
		ExpoEndpoint:                  getEnv("EXPO_PUSH_ENDPOINT", ""),
		ExpoAccessToken:               getEnv("EXPO_ACCESS_TOKEN", ""),
		NotificationRetentionSchedule: getEnv("NOTIFICATION_RETENTION_SCHEDULE", "0 0 3 * * *"),
	}

	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PushEnabled, err = getEnvBool("PUSH_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.FanoutConcurrency, err = getEnvInt("FANOUT_CONCURRENCY", 16); err != nil {
		return Config{}, err
	}
	if cfg.PushTimeout, err = getEnvDuration("PUSH_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.NotificationRetention, err = getEnvDuration("NOTIFICATION_RETENTION", 30*24*time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
