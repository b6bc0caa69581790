package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable that points at a config file
const ConfigFileEnv = "TASKS_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	path     string
	skipFile bool
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithFile makes the loader read the given YAML file. An explicitly named file must exist.
func (l *Loader) WithFile(path string) *Loader {
	l.path = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// WithoutFile makes the loader ignore every config file
func (l *Loader) WithoutFile() *Loader {
	l.skipFile = true
	return l
}

func (l *Loader) loadFile() error {
	if l.skipFile {
		return nil
	}
	path, explicit := l.path, l.path != ""
	if !explicit {
		if env := os.Getenv(ConfigFileEnv); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultConfigPath()
		}
	}
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(l.config); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

// DefaultConfigPath returns ~/.tasks/config.yaml, or "" if there is no home directory
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tasks", "config.yaml")
}

// WriteFile writes cfg as YAML to path, creating parent directories. Existing files
// are only replaced when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal renders cfg in the YAML layout read by Load
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg.document())
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// document renders durations as strings so the written file stays hand-editable
func (c *Config) document() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"database": {
			"dir":             c.Database.Dir,
			"filename":        c.Database.Filename,
			"query_timeout":   c.Database.QueryTimeout.String(),
			"write_timeout":   c.Database.WriteTimeout.String(),
			"dir_permissions": c.Database.DirPermissions,
		},
		"server": {
			"addr":                c.Server.Addr,
			"read_header_timeout": c.Server.ReadHeaderTimeout.String(),
			"shutdown_timeout":    c.Server.ShutdownTimeout.String(),
			"base_path":           c.Server.BasePath,
		},
		"validation": {
			"title_min_length": c.Validation.TitleMinLength,
			"title_max_length": c.Validation.TitleMaxLength,
		},
		"client": {
			"base_url": c.Client.BaseURL,
			"timeout":  c.Client.Timeout.String(),
		},
		"application": {
			"timeout":    c.Application.Timeout.String(),
			"verbose":    c.Application.Verbose,
			"log_level":  c.Application.LogLevel,
			"log_format": c.Application.LogFormat,
		},
	}
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Server overrides
	ServerAddr *string
	BasePath   *string

	// Validation overrides
	TitleMinLength *int
	TitleMaxLength *int

	// Client overrides
	ServerURL     *string
	ClientTimeout *time.Duration

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogLevel  *string
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		config.Database.DirPermissions = *overrides.DBDirPermissions
	}

	// Server overrides
	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}
	if overrides.BasePath != nil {
		config.Server.BasePath = *overrides.BasePath
	}

	// Validation overrides
	if overrides.TitleMinLength != nil {
		config.Validation.TitleMinLength = *overrides.TitleMinLength
	}
	if overrides.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}

	// Client overrides
	if overrides.ServerURL != nil {
		config.Client.BaseURL = *overrides.ServerURL
	}
	if overrides.ClientTimeout != nil {
		config.Client.Timeout = *overrides.ClientTimeout
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
}
