// Package config loads the service configuration from an optional YAML file,
// overrides it from environment variables, fills defaults and validates it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/productforge/backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App       AppSettings       `yaml:"app"`
	Database  DatabaseSettings  `yaml:"database"`
	Server    ServerSettings    `yaml:"server"`
	JWT       JWTSettings       `yaml:"jwt"`
	Logging   LoggingSettings   `yaml:"logging"`
	CORS      CORSSettings      `yaml:"cors"`
	History   HistorySettings   `yaml:"history"`
	Humanizer HumanizerSettings `yaml:"humanizer"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings.
// Path is only used by the sqlite driver; the network fields only by postgres and mysql.
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Path     string `yaml:"path" env:"DB_PATH"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings configures verification of tokens issued by the external auth provider.
// An empty secret leaves the API open.
type JWTSettings struct {
	Secret string `yaml:"secret" env:"JWT_SECRET"`
	Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HistorySettings selects where export history is kept and how much of it.
type HistorySettings struct {
	Backend  string `yaml:"backend" env:"HISTORY_BACKEND"`
	Capacity int    `yaml:"capacity" env:"HISTORY_CAPACITY"`
}

// HumanizerSettings contains text humanization settings.
// A zero seed uses an entropy-seeded source.
type HumanizerSettings struct {
	DefaultProfile string `yaml:"default_profile" env:"HUMANIZE_DEFAULT_PROFILE"`
	Seed           int64  `yaml:"seed" env:"HUMANIZE_SEED"`
}

// RateLimitSettings throttles the export endpoint per client. It is on unless disabled.
type RateLimitSettings struct {
	Disabled     bool          `yaml:"disabled" env:"EXPORT_RATE_LIMIT_DISABLED"`
	ExportPerSec float64       `yaml:"export_per_second" env:"EXPORT_RATE_LIMIT"`
	ExportBurst  int           `yaml:"export_burst" env:"EXPORT_RATE_BURST"`
	CleanupEvery time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL"`
}

// ConnectionString returns the driver-specific data source name.
func (dbs *DatabaseSettings) ConnectionString() string {
	switch strings.ToLower(dbs.Driver) {
	case constants.DriverPostgres:
		sslParams := constants.PostgresSSLParams
		if strings.EqualFold(dbs.SSLMode, "disable") {
			sslParams = constants.PostgresSSLDisable
		}
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s %s",
			dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, sslParams,
		)

	case constants.DriverMySQL:
		// username:password@tcp(host:port)/dbname
		password := dbs.Password
		if password != "" {
			password = ":" + password
		}
		return fmt.Sprintf(
			"%s%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
			dbs.User, password, dbs.Host, dbs.Port, dbs.Name,
		)

	default:
		return fmt.Sprintf("file:%s?%s", dbs.Path, constants.SQLitePragmas)
	}
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// UsesDatabase reports whether export history is persisted through SQL.
func (hs *HistorySettings) UsesDatabase() bool {
	return strings.ToLower(hs.Backend) == constants.HistoryBackendDatabase
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		err = yaml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Save the configuration globally
	cfg = config

	// Log the configuration (but hide sensitive values)
	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	config.Database.Driver = strings.ToLower(config.Database.Driver)
	if config.Database.Driver == constants.DriverSQLite && config.Database.Path == "" {
		config.Database.Path = constants.DefaultSQLitePath
	}
	if config.Database.Port == 0 {
		switch config.Database.Driver {
		case constants.DriverPostgres:
			config.Database.Port = 5432
		case constants.DriverMySQL:
			config.Database.Port = 3306
		}
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// JWT defaults
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	// History defaults
	if config.History.Backend == "" {
		config.History.Backend = constants.DefaultHistoryBackend
	}
	config.History.Backend = strings.ToLower(config.History.Backend)
	if config.History.Capacity <= 0 {
		config.History.Capacity = constants.DefaultHistoryCapacity
	}

	// Humanizer defaults
	if config.Humanizer.DefaultProfile == "" {
		config.Humanizer.DefaultProfile = constants.DefaultHumanizeProfile
	}

	// Rate limit defaults
	if config.RateLimit.ExportPerSec == 0 {
		config.RateLimit.ExportPerSec = constants.DefaultExportRateLimit
	}
	if config.RateLimit.ExportBurst == 0 {
		config.RateLimit.ExportBurst = constants.DefaultExportRateBurst
	}
	if config.RateLimit.CleanupEvery == 0 {
		config.RateLimit.CleanupEvery = constants.DefaultRateLimitCleanup
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	// Validate environment
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		// Instead of failing, use a default and warn
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	switch config.Database.Driver {
	case constants.DriverSQLite:
	case constants.DriverPostgres, constants.DriverMySQL:
		// Network databases need connection details
		if config.History.UsesDatabase() && (config.Database.Host == "" || config.Database.User == "") {
			return fmt.Errorf("database host and user must be set for driver %s", config.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	if config.History.Backend != constants.HistoryBackendMemory && config.History.Backend != constants.HistoryBackendDatabase {
		return fmt.Errorf("invalid history backend: %s", config.History.Backend)
	}

	// In production, refuse a placeholder secret
	if config.App.IsProduction() && config.JWT.Secret == "changeme" {
		return fmt.Errorf("JWT secret must not be the placeholder value in production")
	}

	// Validate log level
	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.RateLimit.ExportPerSec < 0 || config.RateLimit.ExportBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if config.RateLimit.CleanupEvery < 0 {
		return fmt.Errorf("rate limit cleanup interval must be positive")
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	event := log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("history_backend", config.History.Backend).
		Int("history_capacity", config.History.Capacity).
		Str("db_driver", config.Database.Driver).
		Bool("auth_enabled", config.JWT.Secret != "").
		Str("log_level", config.Logging.Level)

	if config.Database.Driver == constants.DriverSQLite {
		event = event.Str("db_path", config.Database.Path)
	} else {
		event = event.
			Str("db_host", config.Database.Host).
			Int("db_port", config.Database.Port).
			Str("db_name", config.Database.Name)
	}

	event.Msg("Configuration loaded")
}
