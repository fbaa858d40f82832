package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	RabbitMQ    RabbitMQConfig
	Marketplace MarketplaceConfig
	Ingest      IngestConfig
	Stream      StreamConfig
	Metrics     MetricsConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RabbitMQConfig configures the optional broadcast mirror.
// An empty URL disables the mirror entirely.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

type MarketplaceConfig struct {
	BaseURL        string
	PartnerID      string
	TimeoutSeconds int
}

type IngestConfig struct {
	QueueSize         int
	Workers           int
	RetryAttempts     int
	RetryInitialDelay time.Duration
}

type StreamConfig struct {
	RateLimitMax      int
	RateLimitWindow   time.Duration
	HeartbeatInterval time.Duration
	SubscriberBuffer  int
}

type MetricsConfig struct {
	Port string
}

func Load() (*Config, error) {
	// Local development convenience; env vars always win.
	_ = godotenv.Load()

	var missing []string

	get := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	config := &Config{
		Server: ServerConfig{
			Host: getOr("SERVER_HOST", "0.0.0.0"),
			Port: getOr("SERVER_PORT", "3000"),
		},
		Database: DatabaseConfig{
			Host:     get("DB_HOST"),
			Port:     get("DB_PORT"),
			User:     get("DB_USER"),
			Password: get("DB_PASSWORD"),
			DBName:   get("DB_NAME"),
			SSLMode:  getOr("DB_SSLMODE", "disable"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        os.Getenv("RABBITMQ_URL"),
			Exchange:   getOr("RABBITMQ_EXCHANGE", "sellerhub.events"),
			RoutingKey: getOr("RABBITMQ_ROUTING_KEY", "broadcast"),
		},
		Marketplace: MarketplaceConfig{
			BaseURL:        get("MARKETPLACE_BASE_URL"),
			PartnerID:      os.Getenv("MARKETPLACE_PARTNER_ID"),
			TimeoutSeconds: getIntOr("MARKETPLACE_TIMEOUT_SECONDS", 15),
		},
		Ingest: IngestConfig{
			QueueSize:         getIntOr("INGEST_QUEUE_SIZE", 256),
			Workers:           getIntOr("INGEST_WORKERS", 4),
			RetryAttempts:     getIntOr("INGEST_RETRY_ATTEMPTS", 3),
			RetryInitialDelay: getDurationOr("INGEST_RETRY_INITIAL_DELAY", time.Second),
		},
		Stream: StreamConfig{
			RateLimitMax:      getIntOr("STREAM_RATE_LIMIT_MAX", 10),
			RateLimitWindow:   getDurationOr("STREAM_RATE_LIMIT_WINDOW", time.Minute),
			HeartbeatInterval: getDurationOr("STREAM_HEARTBEAT_INTERVAL", 30*time.Second),
			SubscriberBuffer:  getIntOr("STREAM_SUBSCRIBER_BUFFER", 16),
		},
		Metrics: MetricsConfig{
			Port: getOr("METRICS_PORT", "9091"),
		},
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return config, nil
}

// ConnectionString returns a DSN string for GORM
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// MigrateURL returns a DSN in the URL form golang-migrate expects
func (c *DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Enabled reports whether the broadcast mirror should be started
func (c *RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

func getOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getIntOr(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getDurationOr(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
