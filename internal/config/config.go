package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	JWTTTL       time.Duration
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JobsConfig struct {
	ReturnsInterval  time.Duration
	DeadlineInterval time.Duration
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtTTLHours, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	returnsHours, _ := strconv.Atoi(getEnv("RETURNS_INTERVAL_HOURS", "24"))
	deadlineMinutes, _ := strconv.Atoi(getEnv("DEADLINE_INTERVAL_MINUTES", "60"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			JWTTTL:       time.Duration(jwtTTLHours) * time.Hour,
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "dailyvest"),
			Password: getEnv("DB_PASSWORD", "dailyvest"),
			Name:     getEnv("DB_NAME", "dailyvest"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Jobs: JobsConfig{
			ReturnsInterval:  time.Duration(returnsHours) * time.Hour,
			DeadlineInterval: time.Duration(deadlineMinutes) * time.Minute,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Payment windows for pay-later investments
const (
	InitialPaymentWindow = 3 * time.Hour
	FullPaymentWindow    = 14 * 24 * time.Hour
)
