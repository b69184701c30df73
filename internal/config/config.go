// Package config provides runtime configuration values for the shop service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds configuration knobs for the HTTP server, storage backends and mail.
type Config struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	StaticDir       string
	LogLevel        string

	Mail MailConfig

	CatalogBackend string
	CatalogDBPath  string
	MigrationsPath string

	CartBackend   string
	RedisAddr     string
	RedisPassword string
	MongoURI      string
	MongoDBName   string

	KafkaBrokers []string
	KafkaTopic   string

	OTLPEndpoint string
}

// MailConfig describes the SMTP account orders are sent from.
type MailConfig struct {
	Backend   string
	Host      string
	Port      int
	User      string
	Password  string
	Recipient string
	Timeout   time.Duration
}

const (
	BackendStatic = "static"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSMTP   = "smtp"
	BackendLog    = "log"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenv(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func listenv(key string) []string {
	v := getenv(key, "")
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads an optional .env file and collects configuration from the
// environment with defaults. Variables already set in the environment win
// over the file.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing .env is the normal case outside local development
		_ = godotenv.Load(f)
	}

	return Config{
		Port:            getenv("PORT", "3000"),
		RequestTimeout:  durenv("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: durenv("SHUTDOWN_TIMEOUT", 10*time.Second),
		StaticDir:       getenv("STATIC_DIR", "public"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		Mail: MailConfig{
			Backend:   getenv("MAIL_BACKEND", BackendSMTP),
			Host:      getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:      atoienv("SMTP_PORT", 587),
			User:      getenv("EMAIL_USER", ""),
			Password:  getenv("EMAIL_PASS", ""),
			Recipient: getenv("RECIPIENT_EMAIL", ""),
			Timeout:   durenv("MAIL_TIMEOUT", 30*time.Second),
		},
		CatalogBackend: getenv("CATALOG_BACKEND", BackendStatic),
		CatalogDBPath:  getenv("CATALOG_DB_PATH", "catalog.db"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./internal/catalog/migrations"),
		CartBackend:    getenv("CART_BACKEND", BackendMemory),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getenv("MONGO_DB_NAME", "shop"),
		KafkaBrokers:   listenv("KAFKA_BROKERS"),
		KafkaTopic:     getenv("KAFKA_TOPIC", "order-placed"),
		OTLPEndpoint:   getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// Validate rejects backend names the service does not know.
func (c Config) Validate() error {
	switch c.CatalogBackend {
	case BackendStatic, BackendSQLite:
	default:
		return errors.Errorf("unknown CATALOG_BACKEND %q", c.CatalogBackend)
	}
	switch c.CartBackend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return errors.Errorf("unknown CART_BACKEND %q", c.CartBackend)
	}
	switch c.Mail.Backend {
	case BackendSMTP, BackendLog:
	default:
		return errors.Errorf("unknown MAIL_BACKEND %q", c.Mail.Backend)
	}
	if c.Mail.Timeout <= 0 {
		return errors.New("MAIL_TIMEOUT must be positive")
	}
	return nil
}

// MissingMailSettings lists the mail variables that are unset. Checkout will
// fail at send time while any of them is missing.
func (c Config) MissingMailSettings() []string {
	var missing []string
	if c.Mail.User == "" {
		missing = append(missing, "EMAIL_USER")
	}
	if c.Mail.Password == "" {
		missing = append(missing, "EMAIL_PASS")
	}
	if c.Mail.Recipient == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}
	return missing
}
