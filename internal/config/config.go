package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server       ServerConfig
	App          AppConfig
	Cache        CacheConfig
	Vendor       VendorConfig
	AnnotationDB AnnotationDBConfig
	AccountDB    AccountDBConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name           string `envconfig:"APP_NAME" default:"guardian-vault-api"`
	Environment    string `envconfig:"APP_ENV" default:"development"`
	Debug          bool   `envconfig:"APP_DEBUG" default:"false"`
	Version        string `envconfig:"APP_VERSION" default:"1.0.0"`
	RatingsEnabled bool   `envconfig:"RATINGS_ENABLED" default:"false"`
}

// CacheConfig holds definition cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"1h"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// VendorConfig holds the game vendor API settings.
type VendorConfig struct {
	APIKey  string        `envconfig:"VENDOR_API_KEY" default:""`
	BaseURL string        `envconfig:"VENDOR_BASE_URL" default:"https://www.bungie.net/Platform"`
	Timeout time.Duration `envconfig:"VENDOR_TIMEOUT" default:"30s"`
}

// AnnotationDBConfig holds item annotation database settings.
type AnnotationDBConfig struct {
	Type string `envconfig:"ANNOTATION_DB_TYPE" default:"sqlite"` // sqlite or postgres
	Path string `envconfig:"ANNOTATION_DB_PATH" default:"./data/annotations.db"`
	// PostgreSQL settings
	Host     string `envconfig:"ANNOTATION_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"ANNOTATION_DB_PORT" default:"5432"`
	Name     string `envconfig:"ANNOTATION_DB_NAME" default:"guardianvault"`
	User     string `envconfig:"ANNOTATION_DB_USER" default:"postgres"`
	Password string `envconfig:"ANNOTATION_DB_PASS" default:""`
	SSLMode  string `envconfig:"ANNOTATION_DB_SSLMODE" default:"disable"`
	// StaleThreshold controls cleanup of annotations that stopped resolving
	// to a live item.
	StaleThreshold time.Duration `envconfig:"ANNOTATION_STALE_THRESHOLD" default:"720h"`
}

// AccountDBConfig holds MySQL connection settings for linked accounts (optional).
type AccountDBConfig struct {
	Host     string `envconfig:"ACCOUNT_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"ACCOUNT_DB_PORT" default:"3306"`
	Name     string `envconfig:"ACCOUNT_DB_NAME" default:"guardianvault"`
	User     string `envconfig:"ACCOUNT_DB_USER" default:"root"`
	Password string `envconfig:"ACCOUNT_DB_PASS" default:""`
}

// PostgresDSN returns the PostgreSQL connection string.
func (a *AnnotationDBConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		a.User, a.Password, a.Host, a.Port, a.Name, a.SSLMode)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// DSN returns the MySQL data source name.
func (d *AccountDBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
