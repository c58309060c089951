package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spend-analytics/internal/analytics"
)

type Config struct {
	Port               string
	CurrencySymbol     string
	CORSAllowedOrigins []string
	LogLevel           logrus.Level
	MaxUploadBytes     int64
}

// ProcessEnvironmentVariables builds the Config from the environment. A
// .env file in the working directory is loaded first when present; variables
// already set in the environment win over it.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.ProcessEnvironmentVariables: load .env: %w", err)
	}

	// Defaults match the dashboard's local development setup
	env := Config{
		Port:               "5000",
		CurrencySymbol:     analytics.DefaultCurrencySymbol,
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           logrus.InfoLevel,
		MaxUploadBytes:     10 << 20,
	}

	envPort := os.Getenv("PORT")
	envCurrencySymbol := os.Getenv("CURRENCY_SYMBOL")
	envCORSAllowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envMaxUploadBytes := os.Getenv("MAX_UPLOAD_BYTES")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envCurrencySymbol) != 0 {
		env.CurrencySymbol = envCurrencySymbol
	}

	if len(envCORSAllowedOrigins) != 0 {
		env.CORSAllowedOrigins = splitList(envCORSAllowedOrigins)
	}

	if len(envLogLevel) != 0 {
		level, err := logrus.ParseLevel(envLogLevel)
		if err != nil {
			return nil, fmt.Errorf("config.ProcessEnvironmentVariables: LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if len(envMaxUploadBytes) != 0 {
		maxUploadBytes, err := strconv.ParseInt(envMaxUploadBytes, 10, 64)
		if err != nil || maxUploadBytes <= 0 {
			return nil, fmt.Errorf("config.ProcessEnvironmentVariables: MAX_UPLOAD_BYTES must be a positive integer, got %q", envMaxUploadBytes)
		}
		env.MaxUploadBytes = maxUploadBytes
	}

	return &env, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
