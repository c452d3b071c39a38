package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by LEADS_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	LeadsBackend       string
	DatabaseURL        string
	LeadsTable         string
	LeadInsertTimeout  time.Duration
	MaxBodyBytes       int64
	CORSAllowedOrigins []string
	MetricsEnabled     bool

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Terminal form client
	LeadFormEndpoint string
	LeadFormTimeout  time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LeadsBackend:       strings.ToLower(strings.TrimSpace(getEnv("LEADS_BACKEND", BackendPostgres))),
		DatabaseURL:        strings.TrimSpace(getEnv("DATABASE_URL", "")),
		LeadsTable:         getEnv("LEADS_TABLE", "leads"),
		LeadInsertTimeout:  getEnvAsDuration("LEAD_INSERT_TIMEOUT", 10*time.Second),
		MaxBodyBytes:       int64(getEnvAsInt("MAX_BODY_BYTES", 64<<10)),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		LeadFormEndpoint: getEnv("LEADFORM_ENDPOINT", "http://localhost:8080/api/submit-lead"),
		LeadFormTimeout:  getEnvAsDuration("LEADFORM_TIMEOUT", 15*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
