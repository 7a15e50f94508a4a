package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	BaseURL                string
	SiteName               string
	DatabaseDSN            string
	JWTSecret              string
	JWTExpireHours         int
	BrevoAPIKey            string
	BrevoEndpoint          string
	SMTPAddr               string
	SMTPUsername           string
	SMTPPassword           string
	FromEmail              string
	RedisAddr              string
	ActivationTTLHours     int
	TelemetryEnabled       bool
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	appURL := fmt.Sprintf("%s:%s", appHost, appPort)

	redisAddr := ""
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	cfg := Config{
		AppURL:                 appURL,
		BaseURL:                getEnv("BASE_URL", "http://"+appURL),
		SiteName:               getEnv("SITE_NAME", "Task Manager"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskboard.db"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTExpireHours:         getEnvAsInt("JWT_EXPIRE_HOURS", 72),
		BrevoAPIKey:            getEnv("BREVO_API_KEY", ""),
		BrevoEndpoint:          getEnv("BREVO_ENDPOINT", "https://api.brevo.com/v3/smtp/email"),
		SMTPAddr:               fmt.Sprintf("%s:%s", getEnv("SMTP_HOST", "127.0.0.1"), getEnv("SMTP_PORT", "25")),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		FromEmail:              getEnv("MAIL_FROM_EMAIL", "noreply@example.com"),
		RedisAddr:              redisAddr,
		ActivationTTLHours:     getEnvAsInt("ACTIVATION_TOKEN_TTL_HOURS", 48),
		TelemetryEnabled:       getEnvAsBool("ENABLE_TELEMETRY", true),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
	if cfg.JWTExpireHours <= 0 {
		log.Fatal("JWT_EXPIRE_HOURS must be greater than 0")
	}
	if cfg.ActivationTTLHours <= 0 {
		log.Fatal("ACTIVATION_TOKEN_TTL_HOURS must be greater than 0")
	}
	if cfg.FromEmail == "" {
		log.Fatal("MAIL_FROM_EMAIL must not be empty")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("%s must be an integer, got %q", key, v)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
