package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_NAME", "DATA_DIR", "LOG_LEVEL", "CORS_ORIGINS", "IMPORT_MAX_RECORDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Same(t, AppConfig, cfg)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "oruma", cfg.DBName)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, 5000, cfg.ImportMaxRecords)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("DB_NAME", ":memory:")
	t.Setenv("IMPORT_MAX_RECORDS", "10")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":memory:", cfg.DBName)
	assert.Equal(t, 10, cfg.ImportMaxRecords)
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "number", value: "42", want: 42},
		{name: "not a number", value: "lots", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORUMA_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("ORUMA_TEST_INT", 7))
		})
	}
}
