package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	DailyLimit         int
	SessionTTLHours    int
	ResendAPIKey       string
	OTPEmailSender     string
	RateLimitPerMinute int
	RateLimitBurst     int
	MaxUploadMB        int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sender := os.Getenv("OTP_EMAIL_SENDER")
	if sender == "" {
		sender = "login@searchdesk.local"
	}

	return Config{
		Port:               port,
		DatabaseURL:        os.Getenv("DB_DSN"),
		DailyLimit:         readInt("DAILY_SEARCH_LIMIT", 10),
		SessionTTLHours:    readInt("SESSION_TTL_HOURS", 8),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		OTPEmailSender:     sender,
		RateLimitPerMinute: readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:     readInt("RATE_LIMIT_BURST", 30),
		MaxUploadMB:        readInt("MAX_UPLOAD_MB", 32),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
