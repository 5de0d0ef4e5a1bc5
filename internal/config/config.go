package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIKey      string `json:"-"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Collection names
	CampaignCollection     string `json:"mongo_campaign_collection"`
	ClaimCollection        string `json:"mongo_claim_collection"`
	VerificationCollection string `json:"mongo_verification_collection"`
	AuditLogsCollection    string `json:"mongo_audit_logs_collection"`

	// Verification configuration
	VerificationTTL time.Duration `json:"verification_ttl"`

	// Notifier gateway configuration
	NotifierURL      string        `json:"notifier_url"`
	NotifierClientID string        `json:"-"`
	NotifierSecret   string        `json:"-"`
	NotifierTimeout  time.Duration `json:"notifier_timeout"`

	// Audit worker configuration
	AuditWorkers    int `json:"audit_workers"`
	AuditBufferSize int `json:"audit_buffer_size"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	verificationTTL, err := time.ParseDuration(getEnvOrDefault("VERIFICATION_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("invalid VERIFICATION_TTL: %w", err)
	}

	notifierTimeout, err := time.ParseDuration(getEnvOrDefault("NOTIFIER_TIMEOUT", "5s"))
	if err != nil {
		return fmt.Errorf("invalid NOTIFIER_TIMEOUT: %w", err)
	}

	auditWorkers, err := strconv.Atoi(getEnvOrDefault("AUDIT_WORKERS", "2"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_WORKERS: %w", err)
	}

	auditBufferSize, err := strconv.Atoi(getEnvOrDefault("AUDIT_BUFFER_SIZE", "1000"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_BUFFER_SIZE: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		APIKey:      os.Getenv("API_KEY"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "aidtrack"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Collection names
		CampaignCollection:     getEnvOrDefault("MONGODB_CAMPAIGN_COLLECTION", "campaigns"),
		ClaimCollection:        getEnvOrDefault("MONGODB_CLAIM_COLLECTION", "claims"),
		VerificationCollection: getEnvOrDefault("MONGODB_VERIFICATION_COLLECTION", "verification_sessions"),
		AuditLogsCollection:    getEnvOrDefault("MONGODB_AUDIT_LOGS_COLLECTION", "audit_logs"),

		// Verification configuration
		VerificationTTL: verificationTTL,

		// Notifier gateway configuration
		NotifierURL:      os.Getenv("NOTIFIER_URL"),
		NotifierClientID: os.Getenv("NOTIFIER_CLIENT_ID"),
		NotifierSecret:   os.Getenv("NOTIFIER_SECRET"),
		NotifierTimeout:  notifierTimeout,

		// Audit worker configuration
		AuditWorkers:    auditWorkers,
		AuditBufferSize: auditBufferSize,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
