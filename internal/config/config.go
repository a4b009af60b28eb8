package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Shop     ShopConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig carries the two hosted-database secrets. Both arrive via the
// environment and may be wrapped in stray quote characters when pasted into a
// deployment UI; Load strips them once so nothing downstream has to.
type DatabaseConfig struct {
	URL          string
	AuthToken    string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// DSN returns a lib/pq connection string with the auth token applied as the
// password.
func (d DatabaseConfig) DSN() (string, error) {
	dsn := d.URL
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parsed, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		dsn = parsed
	}
	if d.AuthToken != "" {
		dsn += " password=" + d.AuthToken
	}
	return dsn, nil
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

type AuthConfig struct {
	// StaffPassword is the single shared dashboard password. Deliberately a
	// latch rather than real authentication; the stakes are a bakery queue.
	StaffPassword string
	// StaffPasswordHash, when set, takes precedence and is compared with
	// bcrypt instead of the plain password.
	StaffPasswordHash string
	CookieName        string
}

// ShopConfig is the pickup window. Orders outside [OpenHour:OpenMinute,
// CloseHour:CloseMinute] are rejected at creation.
type ShopConfig struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

type FeatureFlags struct {
	EnableOrderCaching     bool
	EnableOrderEvents      bool
	StrictUpdateValidation bool
}

// Load reads the environment (plus an optional .env file) and validates the
// required secrets once, failing fast with a descriptive error instead of
// deep inside client construction.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			URL:          stripQuotes(os.Getenv("DATABASE_URL")),
			AuthToken:    stripQuotes(os.Getenv("DATABASE_AUTH_TOKEN")),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			OrdersTopic: getEnvString("KAFKA_ORDERS_TOPIC", "bakery.orders"),
		},
		Auth: AuthConfig{
			StaffPassword:     stripQuotes(os.Getenv("STAFF_PASSWORD")),
			StaffPasswordHash: stripQuotes(os.Getenv("STAFF_PASSWORD_HASH")),
			CookieName:        getEnvString("AUTH_COOKIE_NAME", "auth"),
		},
		Shop: ShopConfig{
			OpenHour:    9,
			OpenMinute:  0,
			CloseHour:   18,
			CloseMinute: 0,
		},
		Features: FeatureFlags{
			EnableOrderCaching:     getEnvBool("FEATURE_ORDER_CACHING", false),
			EnableOrderEvents:      getEnvBool("FEATURE_ORDER_EVENTS", false),
			StrictUpdateValidation: getEnvBool("STRICT_UPDATE_VALIDATION", false),
		},
	}

	if open := os.Getenv("SHOP_OPEN"); open != "" {
		h, m, err := parseClock(open)
		if err != nil {
			return nil, fmt.Errorf("invalid SHOP_OPEN %q: %w", open, err)
		}
		cfg.Shop.OpenHour, cfg.Shop.OpenMinute = h, m
	}
	if close := os.Getenv("SHOP_CLOSE"); close != "" {
		h, m, err := parseClock(close)
		if err != nil {
			return nil, fmt.Errorf("invalid SHOP_CLOSE %q: %w", close, err)
		}
		cfg.Shop.CloseHour, cfg.Shop.CloseMinute = h, m
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Database.AuthToken == "" {
		missing = append(missing, "DATABASE_AUTH_TOKEN")
	}
	if c.Auth.StaffPassword == "" && c.Auth.StaffPasswordHash == "" {
		missing = append(missing, "STAFF_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if _, err := c.Database.DSN(); err != nil {
		return err
	}

	return nil
}

// stripQuotes removes a matching pair of leading/trailing quote characters.
// Deployment UIs routinely hand back values pasted with the quotes included.
func stripQuotes(value string) string {
	value = strings.TrimSpace(value)
	for _, q := range []string{`"`, `'`} {
		if len(value) >= 2 && strings.HasPrefix(value, q) && strings.HasSuffix(value, q) {
			value = value[1 : len(value)-1]
		}
	}
	return value
}

func parseClock(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("out of range")
	}
	return h, m, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
