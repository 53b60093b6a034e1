package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	// All variables
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	API_PREFIX   string
	LOG_LEVEL    string
	// JWT Configuration
	JWT_SECRET     string
	JWT_ISSUER     string
	JWT_EXPIRES_IN time.Duration
	// Redis Configuration
	REDIS_URL string
	// CORS
	ALLOWED_ORIGINS string
	// Default administrator created by /init and the seeder
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
	// Login lockout
	LOGIN_MAX_ATTEMPTS  int
	LOGIN_LOCK_DURATION time.Duration
	// Listing
	MAX_PAGE_SIZE int
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	jwtExpiresIn, err := ParseDuration(getEnvOrDefault("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	lockDuration, err := ParseDuration(getEnvOrDefault("LOGIN_LOCK_DURATION", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_LOCK_DURATION: %w", err)
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getEnvOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getEnvOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		PORT:         port,
		API_PREFIX:   getEnvOrDefault("API_PREFIX", "/api"),
		LOG_LEVEL:    getEnvOrDefault("LOG_LEVEL", "info"),
		// JWT
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		JWT_ISSUER:     getEnvOrDefault("JWT_ISSUER", "academic-portfolio-api"),
		JWT_EXPIRES_IN: jwtExpiresIn,
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// CORS
		ALLOWED_ORIGINS: getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		// Default admin
		ADMIN_EMAIL:    getEnvOrDefault("ADMIN_EMAIL", "admin@example.com"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
		// Lockout
		LOGIN_MAX_ATTEMPTS:  getEnvIntOrDefault("LOGIN_MAX_ATTEMPTS", 5),
		LOGIN_LOCK_DURATION: lockDuration,
		// Listing
		MAX_PAGE_SIZE: getEnvIntOrDefault("MAX_PAGE_SIZE", 100),
	}

	return envVariables, nil
}

// Validate reports configuration that the server cannot start without
func (e *EnvironmentVariable) Validate() error {
	if e.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if e.LOGIN_MAX_ATTEMPTS < 1 {
		return errors.New("LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	if e.MAX_PAGE_SIZE < 1 {
		return errors.New("MAX_PAGE_SIZE must be at least 1")
	}
	return nil
}

// ParseDuration accepts Go durations ("90m", "2h") and whole days ("7d")
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day count %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
