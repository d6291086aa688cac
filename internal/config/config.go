package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	FrontendURL          string
	SearchDepth          int
	MaxSearchDepth       int
	SearchAlgorithm      string
	SessionIdleTimeout   time.Duration
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	MoveCacheTTL         time.Duration
	KafkaBrokers         []string
	KafkaTopic           string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	allowedOrigins = append(allowedOrigins, GetEnvAsList("ALLOWED_ORIGINS")...)

	// Engine
	maxDepth := GetEnvAsInt("MAX_SEARCH_DEPTH", 6)
	if maxDepth < 1 {
		log.Printf("MAX_SEARCH_DEPTH must be positive, got %d, using 6", maxDepth)
		maxDepth = 6
	}
	depth := GetEnvAsInt("SEARCH_DEPTH", 4)
	if depth < 1 || depth > maxDepth {
		log.Printf("SEARCH_DEPTH %d outside [1, %d], clamping", depth, maxDepth)
		depth = min(max(depth, 1), maxDepth)
	}
	algorithm := GetEnv("SEARCH_ALGORITHM", "alpha_beta")
	idleTimeoutMin := GetEnvAsInt("SESSION_IDLE_TIMEOUT_MINUTES", 30)

	// Database Config
	// Append simple_protocol for PgBouncer compatibility (pgx driver)
	dbURL := GetEnv("DATABASE_URL", "")
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 25)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// Redis move cache
	redisURL := GetEnv("REDIS_URL", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	moveCacheTTLMin := GetEnvAsInt("MOVE_CACHE_TTL_MINUTES", 60)

	// Kafka analytics (disabled without brokers)
	kafkaBrokers := GetEnvAsList("KAFKA_BROKERS")
	kafkaTopic := GetEnv("KAFKA_TOPIC", "engine-events")

	AppConfig = &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		SearchDepth:          depth,
		MaxSearchDepth:       maxDepth,
		SearchAlgorithm:      algorithm,
		SessionIdleTimeout:   time.Duration(idleTimeoutMin) * time.Minute,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		RedisURL:             redisURL,
		RedisPassword:        redisPassword,
		MoveCacheTTL:         time.Duration(moveCacheTTLMin) * time.Minute,
		KafkaBrokers:         kafkaBrokers,
		KafkaTopic:           kafkaTopic,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated variable, dropping blank entries.
func GetEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
