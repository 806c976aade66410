package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	TelemetryPort  string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers          []string
	KafkaGroupID          string
	SessionEventsTopic    string
	AssessmentEventsTopic string

	// Auth
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	// OIDC (clinician SSO)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Beat rendering
	BeatBaseURL     string
	BeatCatalogPath string
	BeatCacheTTL    time.Duration

	// Gateway
	CORSAllowedOrigin string
	RateLimitRPS      int
	RateLimitBurst    int
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		TelemetryPort:  getEnv("TELEMETRY_PORT", "8090"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "nurobeats"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "nurobeats123"),
		PostgresDB:       getEnv("POSTGRES_DB", "nurobeats"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:          getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:          getEnv("KAFKA_GROUP_ID", "nurobeats-platform"),
		SessionEventsTopic:    getEnv("SESSION_EVENTS_TOPIC", "therapy.sessions"),
		AssessmentEventsTopic: getEnv("ASSESSMENT_EVENTS_TOPIC", "therapy.assessments"),

		JWTSecret:   getEnv("JWT_SECRET", "nurobeats-dev-secret-key"),
		JWTIssuer:   getEnv("JWT_ISSUER", "nurobeats"),
		JWTAudience: getEnv("JWT_AUDIENCE", "nurobeats-api"),
		JWTTTL:      getDuration("JWT_TTL", time.Hour),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", ""),

		BeatBaseURL:     getEnv("BEAT_BASE_URL", "https://beats.nurobeats.local"),
		BeatCatalogPath: getEnv("BEAT_CATALOG_PATH", ""),
		BeatCacheTTL:    getDuration("BEAT_CACHE_TTL", 15*time.Minute),

		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		RateLimitRPS:      getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst:    getIntEnv("RATE_LIMIT_BURST", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		brokers := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				brokers = append(brokers, trimmed)
			}
		}
		if len(brokers) > 0 {
			return brokers
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
