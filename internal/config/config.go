package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Cache      CacheConfig
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
}

// BillingConfig holds engine-wide billing defaults
type BillingConfig struct {
	// DefaultTaxRate is a decimal fraction (0.0825 for 8.25%) used when neither
	// the client nor the company carries a tax rate
	DefaultTaxRate string `mapstructure:"default_tax_rate"`
	InvoicePrefix  string `mapstructure:"invoice_prefix" validate:"required"`
	Currency       string `mapstructure:"currency" validate:"required,len=3"`
}

type CacheConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	CompanyTTLMinutes int  `mapstructure:"company_ttl_minutes"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, real deployments inject the environment directly
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billingengine")

	// Set up environment variables support
	v.SetEnvPrefix("BILLINGENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("billing.default_tax_rate", "0")
	v.SetDefault("billing.invoice_prefix", "US")
	v.SetDefault("billing.currency", "USD")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.company_ttl_minutes", 5)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Billing.GetDefaultTaxRate(); err != nil {
		return err
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Billing: BillingConfig{
			DefaultTaxRate: "0",
			InvoicePrefix:  "US",
			Currency:       "USD",
		},
		Cache: CacheConfig{Enabled: true, CompanyTTLMinutes: 5},
	}
}

// GetDefaultTaxRate parses the configured fallback tax rate
func (c BillingConfig) GetDefaultTaxRate() (decimal.Decimal, error) {
	if strings.TrimSpace(c.DefaultTaxRate) == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(c.DefaultTaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid billing.default_tax_rate %q: %w", c.DefaultTaxRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("billing.default_tax_rate must not be negative, got %s", c.DefaultTaxRate)
	}
	return rate, nil
}

// CompanyTTL returns how long company tax settings stay cached
func (c CacheConfig) CompanyTTL() time.Duration {
	if c.CompanyTTLMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CompanyTTLMinutes) * time.Minute
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
