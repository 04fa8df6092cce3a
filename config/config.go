// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const (
	defaultPort       = "8080"
	defaultTaxRate    = "10"
	defaultCurrency   = "PYG"
	defaultSessionTTL = 12 * time.Hour
	defaultKafkaTopic = "pos.sales"
	defaultTimeZone   = "America/Asuncion"
	defaultLogLevel   = "info"
)

// Config holds everything the server needs to start.
type Config struct {
	Port        string
	DatabaseURL string

	TaxRate  decimal.Decimal
	Currency string
	Location *time.Location

	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ChromePath      string
	StoreName       string
	StoreAddress    string
	StoreTaxID      string
	ReceiptFooter   string
	ReceiptLogoPath string

	LogLevel string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", defaultPort),
		Currency:        strings.ToUpper(getenv("CURRENCY", defaultCurrency)),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KafkaTopic:      getenv("KAFKA_TOPIC", defaultKafkaTopic),
		ChromePath:      os.Getenv("CHROME_PATH"),
		StoreName:       getenv("STORE_NAME", "Mostrador"),
		StoreAddress:    os.Getenv("STORE_ADDRESS"),
		StoreTaxID:      os.Getenv("STORE_TAX_ID"),
		ReceiptFooter:   os.Getenv("RECEIPT_FOOTER"),
		ReceiptLogoPath: os.Getenv("RECEIPT_LOGO_PATH"),
		LogLevel:        getenv("LOG_LEVEL", defaultLogLevel),
	}

	dsn, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dsn

	cfg.TaxRate, err = decimal.NewFromString(getenv("TAX_RATE", defaultTaxRate))
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}
	if cfg.TaxRate.IsNegative() || cfg.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("invalid TAX_RATE: %s is outside 0..100", cfg.TaxRate)
	}

	cfg.SessionTTL = defaultSessionTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		cfg.SessionTTL, err = time.ParseDuration(v)
		if err != nil || cfg.SessionTTL <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q", v)
		}
	}

	cfg.Location, err = time.LoadLocation(getenv("TIMEZONE", defaultTimeZone))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	return cfg, nil
}

// databaseURL returns DATABASE_URL or builds a DSN from the DB_* variables.
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getenv("DB_PORT", "5432"),
		user,
		os.Getenv("DB_PASSWORD"),
		dbname,
		getenv("DB_SSLMODE", "disable"),
	), nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
