package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort           = "8080"
	defaultShopTimezone       = "Asia/Tokyo"
	defaultBusinessOpenHour   = 9
	defaultBusinessCloseHour  = 21
	defaultOrderRetentionDays = 60
	defaultTxMaxRetries       = 5
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	ShopTimezone       string
	BusinessOpenHour   int
	BusinessCloseHour  int
	OrderRetentionDays int
	RetentionCron      string
	TxMaxRetries       int
	LogLevel           string
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		HTTPPort:      envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:        envOr("DB_HOST", "localhost"),
		DBPort:        envOr("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOr("DB_SSLMODE", "disable"),
		ShopTimezone:  envOr("SHOP_TIMEZONE", defaultShopTimezone),
		RetentionCron: envOr("RETENTION_CRON", jobs.DefaultRetentionSchedule),
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.BusinessOpenHour, err = envInt("BUSINESS_OPEN_HOUR", defaultBusinessOpenHour); err != nil {
		return Config{}, err
	}
	if cfg.BusinessCloseHour, err = envInt("BUSINESS_CLOSE_HOUR", defaultBusinessCloseHour); err != nil {
		return Config{}, err
	}
	if cfg.OrderRetentionDays, err = envInt("ORDER_RETENTION_DAYS", defaultOrderRetentionDays); err != nil {
		return Config{}, err
	}
	if cfg.TxMaxRetries, err = envInt("TX_MAX_RETRIES", defaultTxMaxRetries); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []error
	if c.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required"))
	}
	if c.DBUser == "" {
		problems = append(problems, errors.New("DB_USER is required"))
	}
	if c.OrderRetentionDays < 1 {
		problems = append(problems, fmt.Errorf("ORDER_RETENTION_DAYS must be at least 1, got %d", c.OrderRetentionDays))
	}
	if c.TxMaxRetries < 1 {
		problems = append(problems, fmt.Errorf("TX_MAX_RETRIES must be at least 1, got %d", c.TxMaxRetries))
	}
	if _, err := c.ShopCalendar(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection string. Sessions run in UTC; the shop
// zone is applied by the calendar only.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func (c Config) ShopCalendar() (kernel.ShopCalendar, error) {
	return kernel.LoadShopCalendar(c.ShopTimezone, c.BusinessOpenHour, c.BusinessCloseHour)
}

func (c Config) RetentionPeriod() time.Duration {
	return time.Duration(c.OrderRetentionDays) * 24 * time.Hour
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}
