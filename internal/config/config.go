package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Holiday  HolidayConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// HolidayConfig selects the regional calendar layered over the national one.
type HolidayConfig struct {
	Region          string
	RefreshInterval time.Duration
}

type PayrollConfig struct {
	WeeksPerMonth      decimal.Decimal
	OvertimeTier1Hours decimal.Decimal
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "grupo_rubio"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Holiday calendar
	refresh, err := time.ParseDuration(getEnv("HOLIDAY_REFRESH_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_REFRESH_INTERVAL: %w", err)
	}
	config.Holiday = HolidayConfig{
		Region:          strings.ToUpper(getEnv("HOLIDAY_REGION", "")),
		RefreshInterval: refresh,
	}

	// Payroll
	weeksPerMonth, err := decimal.NewFromString(getEnv("PAYROLL_WEEKS_PER_MONTH", "4.33"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WEEKS_PER_MONTH: %w", err)
	}
	tier1, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_TIER1_HOURS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_TIER1_HOURS: %w", err)
	}
	config.Payroll = PayrollConfig{
		WeeksPerMonth:      weeksPerMonth,
		OvertimeTier1Hours: tier1,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	slog.Debug("configuration loaded", "env", config.App.Env, "holiday_region", config.Holiday.Region)
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Holiday.RefreshInterval <= 0 {
		return fmt.Errorf("HOLIDAY_REFRESH_INTERVAL must be positive")
	}
	if !c.Payroll.WeeksPerMonth.IsPositive() {
		return fmt.Errorf("PAYROLL_WEEKS_PER_MONTH must be positive")
	}
	if c.Payroll.OvertimeTier1Hours.IsNegative() {
		return fmt.Errorf("PAYROLL_OVERTIME_TIER1_HOURS cannot be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
