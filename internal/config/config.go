package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Contract  ContractConfig  `yaml:"contract"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains the store settings. Driver "postgres" uses
// PostgreSQL for entities and asset accounts; "memory" keeps everything
// in-process.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains principal token settings
type JWTConfig struct {
	Secret           string `yaml:"secret"`
	TokenExpiryHours int    `yaml:"token_expiry_hours"`
}

// ContractConfig bootstraps the singleton contract state. When
// AutoInitialize is set and the contract has no administrator yet, the
// server runs Initialize(admin, payment_token) at startup.
type ContractConfig struct {
	AutoInitialize bool   `yaml:"auto_initialize"`
	Admin          string `yaml:"admin"`
	PaymentToken   string `yaml:"payment_token"`
	Custody        string `yaml:"custody"` // principal holding escrowed funds
}

// NotifierConfig configures the optional SendGrid admin notifier
type NotifierConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	AdminEmail     string `yaml:"admin_email"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig holds cron expressions for background jobs
type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	SolvencyAudit string `yaml:"solvency_audit"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_DRIVER"); val != "" {
		c.Database.Driver = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notifier.SendGridAPIKey = val
	}
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	switch c.Database.Driver {
	case "", "postgres":
		if c.Database.Host == "" || c.Database.Database == "" {
			return fmt.Errorf("database host and name are required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Contract.AutoInitialize {
		if c.Contract.Admin == "" || c.Contract.PaymentToken == "" {
			return fmt.Errorf("contract auto-initialize requires admin and payment_token")
		}
		if c.Contract.Admin == c.Contract.PaymentToken {
			return fmt.Errorf("contract admin and payment_token cannot be the same principal")
		}
	}
	return nil
}

// GetServerAddress returns the host:port the HTTP server binds to
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString builds the postgres connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}

// CustodyPrincipal returns the principal holding escrowed funds, with a
// stable default for single-node deployments.
func (c *Config) CustodyPrincipal() string {
	if c.Contract.Custody != "" {
		return c.Contract.Custody
	}
	return "contract-custody"
}
