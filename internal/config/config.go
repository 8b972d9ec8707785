package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task board application
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Auth       AuthConfig
	Reset      ResetConfig
	Validation ValidationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TASKBOARD_DB_DIR"`
	Filename       string        `env:"TASKBOARD_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TASKBOARD_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TASKBOARD_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TASKBOARD_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"TASKBOARD_ADDR"`
	ShutdownTimeout time.Duration `env:"TASKBOARD_SHUTDOWN_TIMEOUT"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	BcryptCost int           `env:"TASKBOARD_BCRYPT_COST"`
	SessionTTL time.Duration `env:"TASKBOARD_SESSION_TTL"`
}

// ResetConfig holds password reset configuration
type ResetConfig struct {
	CodeTTL time.Duration `env:"TASKBOARD_RESET_CODE_TTL"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength int `env:"TASKBOARD_VALIDATION_TITLE_MIN"`
	TitleMaxLength int `env:"TASKBOARD_VALIDATION_TITLE_MAX"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".taskboard")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "taskboard.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Auth: AuthConfig{
			BcryptCost: 10,
			SessionTTL: 24 * time.Hour,
		},
		Reset: ResetConfig{
			CodeTTL: 10 * time.Minute,
		},
		Validation: ValidationConfig{
			TitleMinLength: 1,
			TitleMaxLength: 255,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TASKBOARD_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKBOARD_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TASKBOARD_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TASKBOARD_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TASKBOARD_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Server configuration
	if addr := os.Getenv("TASKBOARD_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TASKBOARD_SHUTDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	// Auth configuration
	if cost := os.Getenv("TASKBOARD_BCRYPT_COST"); cost != "" {
		if n, err := strconv.Atoi(cost); err == nil {
			c.Auth.BcryptCost = n
		}
	}
	if ttl := os.Getenv("TASKBOARD_SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Auth.SessionTTL = d
		}
	}

	// Reset configuration
	if ttl := os.Getenv("TASKBOARD_RESET_CODE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Reset.CodeTTL = d
		}
	}

	// Validation configuration
	if minLen := os.Getenv("TASKBOARD_VALIDATION_TITLE_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.TitleMinLength = n
		}
	}
	if maxLen := os.Getenv("TASKBOARD_VALIDATION_TITLE_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TitleMaxLength = n
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
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

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return &ConfigError{Field: "auth.bcrypt_cost", Message: "bcrypt cost must be between 4 and 31"}
	}
	if c.Auth.SessionTTL <= 0 {
		return &ConfigError{Field: "auth.session_ttl", Message: "session TTL must be positive"}
	}

	if c.Reset.CodeTTL <= 0 {
		return &ConfigError{Field: "reset.code_ttl", Message: "reset code TTL must be positive"}
	}

	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
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
