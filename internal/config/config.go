package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/cajacoop/caja-engine/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DATABASE_HOST"`
	Port     string `mapstructure:"DATABASE_PORT"`
	Name     string `mapstructure:"DATABASE_NAME"`
	User     string `mapstructure:"DATABASE_USER"`
	Password string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode  string `mapstructure:"DATABASE_SSLMODE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Spec     string `mapstructure:"SCHEDULER_SPEC"`
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

// BusinessConfig carries the fixed monetary constants of the cooperative.
// Amounts are kept as strings and validated as decimals on load.
type BusinessConfig struct {
	ContributionAmount  string `mapstructure:"CONTRIBUTION_AMOUNT"`
	AdministrationFee   string `mapstructure:"ADMINISTRATION_FEE"`
	StrategicFundBase   string `mapstructure:"STRATEGIC_FUND_BASE"`
	StrategicFundRate   string `mapstructure:"STRATEGIC_FUND_RATE"`
	ContributionPenalty string `mapstructure:"CONTRIBUTION_PENALTY"`
	LoanPenaltyRate     string `mapstructure:"LOAN_PENALTY_RATE"`
	ProgramStartDate    string `mapstructure:"PROGRAM_START_DATE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCHEDULER_SPEC", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "America/Guayaquil")
	viper.SetDefault("CONTRIBUTION_AMOUNT", "20")
	viper.SetDefault("ADMINISTRATION_FEE", "10")
	viper.SetDefault("STRATEGIC_FUND_BASE", "5")
	viper.SetDefault("STRATEGIC_FUND_RATE", "0.50")
	viper.SetDefault("CONTRIBUTION_PENALTY", "1")
	viper.SetDefault("LOAN_PENALTY_RATE", "0.02")
	viper.SetDefault("PROGRAM_START_DATE", "2021-01-01")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	for name, value := range map[string]string{
		"CONTRIBUTION_AMOUNT":  c.Business.ContributionAmount,
		"ADMINISTRATION_FEE":   c.Business.AdministrationFee,
		"STRATEGIC_FUND_BASE":  c.Business.StrategicFundBase,
		"STRATEGIC_FUND_RATE":  c.Business.StrategicFundRate,
		"CONTRIBUTION_PENALTY": c.Business.ContributionPenalty,
		"LOAN_PENALTY_RATE":    c.Business.LoanPenaltyRate,
	} {
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", name, err)
		}
	}

	if _, err := time.Parse("2006-01-02", c.Business.ProgramStartDate); err != nil {
		return fmt.Errorf("PROGRAM_START_DATE must be a valid date: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// DSN returns the Postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// ChargePolicy returns the business constants as an explicit policy value
// for the accrual calculators. Values were validated on load.
func (c *Config) ChargePolicy() domain.ChargePolicy {
	return domain.ChargePolicy{
		ContributionAmount:  mustDecimal(c.Business.ContributionAmount),
		AdministrationFee:   mustDecimal(c.Business.AdministrationFee),
		StrategicFundBase:   mustDecimal(c.Business.StrategicFundBase),
		StrategicFundRate:   mustDecimal(c.Business.StrategicFundRate),
		ContributionPenalty: mustDecimal(c.Business.ContributionPenalty),
		LoanPenaltyRate:     mustDecimal(c.Business.LoanPenaltyRate),
	}
}

// ProgramStartDate returns the cooperative's opening date.
func (c *Config) ProgramStartDate() time.Time {
	date, _ := time.Parse("2006-01-02", c.Business.ProgramStartDate)
	return date
}

// HealthTimeout returns the health check timeout as duration
func (c *Config) HealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

func mustDecimal(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)
	return d
}
