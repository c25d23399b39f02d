package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Carrier   CarrierConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Books     BooksConfig
	Scheduler SchedulerConfig
	Printer   PrinterConfig
	Email     EmailConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// StoreConfig selects the persistence driver: memory, sqlite, postgres or mongo
type StoreConfig struct {
	Driver     string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// CarrierConfig points at the shipping carrier webhook. An empty URL disables it.
type CarrierConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type BooksConfig struct {
	Currency          string
	LowStockThreshold int
	SeedProducts      bool
}

// PrinterConfig selects the receipt printer: usb, network or none
type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// EmailConfig is the SMTP relay for the daily digest. An empty host or no recipients
// disables mailing.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	DigestTo     []string
}

type SchedulerConfig struct {
	Enabled     bool
	DigestSpec  string
	CleanupSpec string
}

// Load reads configuration from the environment. envFile, when set, is loaded into
// the environment first; otherwise a .env in the working directory is read if present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		Mongo: MongoConfig{
			URI:        v.GetString("MONGO_URI"),
			Database:   v.GetString("MONGO_DATABASE"),
			Collection: v.GetString("MONGO_COLLECTION"),
			Timeout:    time.Duration(v.GetInt("MONGO_TIMEOUT_SECONDS")) * time.Second,
		},
		Carrier: CarrierConfig{
			URL:     v.GetString("CARRIER_URL"),
			APIKey:  v.GetString("CARRIER_API_KEY"),
			Timeout: time.Duration(v.GetInt("CARRIER_TIMEOUT_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Books: BooksConfig{
			Currency:          strings.ToUpper(v.GetString("BOOKS_CURRENCY")),
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
			SeedProducts:      v.GetBool("SEED_PRODUCTS"),
		},
		Scheduler: SchedulerConfig{
			Enabled:     v.GetBool("SCHEDULER_ENABLED"),
			DigestSpec:  v.GetString("SCHEDULER_DIGEST_SPEC"),
			CleanupSpec: v.GetString("SCHEDULER_CLEANUP_SPEC"),
		},
		Printer: PrinterConfig{
			Type:    strings.ToLower(v.GetString("PRINTER_TYPE")),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Email: EmailConfig{
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			FromName:     v.GetString("SMTP_FROM_NAME"),
			FromEmail:    v.GetString("SMTP_FROM_EMAIL"),
			DigestTo:     splitList(v.GetString("DIGEST_RECIPIENTS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "storebooks")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "storebooks.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "storebooks")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "storebooks")
	v.SetDefault("MONGO_COLLECTION", "book_slots")
	v.SetDefault("MONGO_TIMEOUT_SECONDS", 10)
	v.SetDefault("CARRIER_URL", "")
	v.SetDefault("CARRIER_TIMEOUT_SECONDS", 5)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("BOOKS_CURRENCY", "EGP")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("SEED_PRODUCTS", true)
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("SCHEDULER_DIGEST_SPEC", "0 20 * * *")
	v.SetDefault("SCHEDULER_CLEANUP_SPEC", "@hourly")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "storebooks")
	v.SetDefault("DIGEST_RECIPIENTS", []string{})
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres", "mongo":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Books.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD cannot be negative")
	}
	switch c.Printer.Type {
	case "none", "usb", "network":
	default:
		return fmt.Errorf("unknown printer type %q", c.Printer.Type)
	}
	if len(c.Books.Currency) != 3 {
		return fmt.Errorf("BOOKS_CURRENCY must be an ISO 4217 code, got %q", c.Books.Currency)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Enabled reports whether the digest can be mailed
func (c *EmailConfig) Enabled() bool {
	return c.SMTPHost != "" && len(c.DigestTo) > 0
}
