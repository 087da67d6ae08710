package config

import (
	"os"
	"strconv"
	"time"

	"workforce/timepay"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	JWTSecret          string
	JWTExpiration      time.Duration
	ServerPort         string
	InviteExpiration   time.Duration
	OvernightPolicy    string // "wrap" or "clamp", see timepay
	DailyThreshold     float64
	OvertimeMultiplier float64
}

func Load() *Config {
	// Missing .env is fine, env vars may come from the environment directly
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/workforce"),
		JWTSecret:          getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:      24 * time.Hour,
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		InviteExpiration:   7 * 24 * time.Hour, // 7 days
		OvernightPolicy:    getEnv("OVERNIGHT_POLICY", "wrap"),
		DailyThreshold:     getEnvFloat("DAILY_OVERTIME_THRESHOLD", timepay.DefaultDailyThreshold),
		OvertimeMultiplier: getEnvFloat("OVERTIME_MULTIPLIER", timepay.DefaultOvertimeMultiplier),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}
