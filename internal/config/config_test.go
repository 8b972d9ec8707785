package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "taskboard.db", cfg.Database.Filename)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Reset.CodeTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TASKBOARD_ADDR", ":9090")
	t.Setenv("TASKBOARD_DB_DIR", "/tmp/boards")
	t.Setenv("TASKBOARD_BCRYPT_COST", "12")
	t.Setenv("TASKBOARD_RESET_CODE_TTL", "5m")
	t.Setenv("TASKBOARD_SESSION_TTL", "1h")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/boards", cfg.Database.Dir)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.Reset.CodeTTL)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "/tmp/boards/taskboard.db", cfg.GetDatabasePath())
}

func TestLoadFromEnvironment_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("TASKBOARD_BCRYPT_COST", "not-a-number")
	t.Setenv("TASKBOARD_RESET_CODE_TTL", "soon")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.Reset.CodeTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "should reject empty database dir", mutate: func(c *Config) { c.Database.Dir = "" }, field: "database.dir"},
		{name: "should reject empty listen address", mutate: func(c *Config) { c.Server.Addr = "" }, field: "server.addr"},
		{name: "should reject an out of range bcrypt cost", mutate: func(c *Config) { c.Auth.BcryptCost = 40 }, field: "auth.bcrypt_cost"},
		{name: "should reject a non-positive session TTL", mutate: func(c *Config) { c.Auth.SessionTTL = 0 }, field: "auth.session_ttl"},
		{name: "should reject a non-positive code TTL", mutate: func(c *Config) { c.Reset.CodeTTL = -time.Minute }, field: "reset.code_ttl"},
		{name: "should reject inverted title bounds", mutate: func(c *Config) { c.Validation.TitleMaxLength = 0 }, field: "validation.title_max_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
