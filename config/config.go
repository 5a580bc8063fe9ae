package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
	"github.com/joho/godotenv"
)

const defaultCORSOrigin = "http://localhost:3000"

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	ServerPort         string
	UpstreamBaseURL    string
	UpstreamTimeout    time.Duration
	RedisURL           string
	TokenCheckInterval string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	PaymentRedirectURL string
	LogLevel           string
	CookieSecure       bool
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	// Attempt to load .env file if in development environment (skip in production)
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := strings.TrimPrefix(getEnv("SERVER_PORT", "8080"), ":")
	upstream := strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/")
	timeoutStr := getEnv("UPSTREAM_TIMEOUT_SECONDS", "30")
	rateStr := getEnv("RATE_LIMIT_PER_MINUTE", "30")

	// Critical: the gateway is useless without the remote API
	if upstream == "" {
		return nil, errors.New("UPSTREAM_BASE_URL environment variable must be set")
	}

	timeoutSecs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSecs <= 0 {
		customLog.Warnf("Invalid UPSTREAM_TIMEOUT_SECONDS '%s'. Using default 30s. Error: %v", timeoutStr, err)
		timeoutSecs = 30
	}

	ratePerMinute, err := strconv.Atoi(rateStr)
	if err != nil || ratePerMinute <= 0 {
		customLog.Warnf("Invalid RATE_LIMIT_PER_MINUTE '%s'. Using default 30. Error: %v", rateStr, err)
		ratePerMinute = 30
	}

	origins := splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigin))
	if len(origins) == 0 {
		customLog.Warnf("CORS_ALLOWED_ORIGINS has no origins. Using default %s.", defaultCORSOrigin)
		origins = []string{defaultCORSOrigin}
	}

	cfg := &Config{
		ServerPort:         port,
		UpstreamBaseURL:    upstream,
		UpstreamTimeout:    time.Duration(timeoutSecs) * time.Second,
		RedisURL:           getEnv("REDIS_URL", ""),
		TokenCheckInterval: getEnv("TOKEN_CHECK_INTERVAL", "@every 60s"),
		CORSAllowedOrigins: origins,
		RateLimitPerMinute: ratePerMinute,
		PaymentRedirectURL: getEnv("PAYMENT_REDIRECT_URL", "http://localhost:3000/payment-status"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CookieSecure:       getEnv("COOKIE_SECURE", "") == "true" || os.Getenv("APP_ENV") == "production",
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		customLog.Warnf("Invalid LOG_LEVEL '%s'. Using info. Error: %v", cfg.LogLevel, err)
		cfg.LogLevel = "info"
		_ = logger.SetLevel(cfg.LogLevel)
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Upstream: %s, Redis: %t, Log level: %s",
		cfg.ServerPort, cfg.UpstreamBaseURL, cfg.RedisURL != "", cfg.LogLevel)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
