package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the task manager
type Config struct {
	Database    DatabaseConfig    `yaml:"database" mapstructure:"database"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	Client      ClientConfig      `yaml:"client" mapstructure:"client"`
	Application ApplicationConfig `yaml:"application" mapstructure:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" mapstructure:"dir" env:"TASKS_DB_DIR"`
	Filename       string        `yaml:"filename" mapstructure:"filename" env:"TASKS_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" mapstructure:"query_timeout" env:"TASKS_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" env:"TASKS_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" mapstructure:"dir_permissions" env:"TASKS_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr              string        `yaml:"addr" mapstructure:"addr" env:"TASKS_SERVER_ADDR"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" mapstructure:"read_header_timeout" env:"TASKS_SERVER_READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" env:"TASKS_SERVER_SHUTDOWN_TIMEOUT"`
	BasePath          string        `yaml:"base_path" mapstructure:"base_path" env:"TASKS_SERVER_BASE_PATH"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength int `yaml:"title_min_length" mapstructure:"title_min_length" env:"TASKS_VALIDATION_TITLE_MIN"`
	TitleMaxLength int `yaml:"title_max_length" mapstructure:"title_max_length" env:"TASKS_VALIDATION_TITLE_MAX"`
}

// ClientConfig holds settings used by CLI commands talking to a running server
type ClientConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url" env:"TASKS_CLIENT_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" env:"TASKS_CLIENT_TIMEOUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout" env:"TASKS_APP_TIMEOUT"`
	Verbose   bool          `yaml:"verbose" mapstructure:"verbose" env:"TASKS_APP_VERBOSE"`
	LogLevel  string        `yaml:"log_level" mapstructure:"log_level" env:"TASKS_LOG_LEVEL"`
	LogFormat string        `yaml:"log_format" mapstructure:"log_format" env:"TASKS_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tasks")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tasks.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			BasePath:          "/api",
		},
		Validation: ValidationConfig{
			TitleMinLength: 1,
			TitleMaxLength: 255,
		},
		Client: ClientConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: 10 * time.Second,
		},
		Application: ApplicationConfig{
			Timeout:   60 * time.Second,
			Verbose:   false,
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TASKS_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKS_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TASKS_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TASKS_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TASKS_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration
	if addr := os.Getenv("TASKS_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TASKS_SERVER_READ_HEADER_TIMEOUT"); timeout != "" {
		c.Server.ReadHeaderTimeout = ParseDurationWithFallback(timeout, c.Server.ReadHeaderTimeout)
	}
	if timeout := os.Getenv("TASKS_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if base, ok := os.LookupEnv("TASKS_SERVER_BASE_PATH"); ok {
		c.Server.BasePath = base
	}

	// Validation configuration
	if minLen := os.Getenv("TASKS_VALIDATION_TITLE_MIN"); minLen != "" {
		c.Validation.TitleMinLength = ParseIntWithFallback(minLen, c.Validation.TitleMinLength)
	}
	if maxLen := os.Getenv("TASKS_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}

	// Client configuration
	if baseURL := os.Getenv("TASKS_CLIENT_BASE_URL"); baseURL != "" {
		c.Client.BaseURL = baseURL
	}
	if timeout := os.Getenv("TASKS_CLIENT_TIMEOUT"); timeout != "" {
		c.Client.Timeout = ParseDurationWithFallback(timeout, c.Client.Timeout)
	}

	// Application configuration
	if timeout := os.Getenv("TASKS_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKS_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := os.Getenv("TASKS_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if format := os.Getenv("TASKS_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" && c.Database.Filename != ":memory:" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}
	if c.Server.BasePath != "" && (!strings.HasPrefix(c.Server.BasePath, "/") || strings.HasSuffix(c.Server.BasePath, "/")) {
		return &ConfigError{Field: "server.base_path", Message: "base path must start with '/' and must not end with '/'"}
	}

	// Validate validation configuration
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}

	// Validate client configuration
	if c.Client.BaseURL == "" {
		return &ConfigError{Field: "client.base_url", Message: "client base URL cannot be empty"}
	}
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch strings.ToLower(c.Application.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be one of debug, info, warn, error"}
	}
	switch strings.ToLower(c.Application.LogFormat) {
	case "text", "json":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be text or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
