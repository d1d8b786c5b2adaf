package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearEnvVars(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestValidateEnv_BackendRequirements(t *testing.T) {
	tests := []struct {
		backend string
		set     map[string]string
		missing []string
	}{
		{backend: "memory"},
		{backend: "file", missing: []string{"DATA_DIR"}},
		{backend: "redis", missing: []string{"REDIS_ADDR"}},
		{backend: "redis", set: map[string]string{"REDIS_ADDR": "localhost:6379"}},
		{backend: "postgres", set: map[string]string{"DB_USER": "u", "DB_HOST": "h"}, missing: []string{"DB_PASSWORD", "DB_PORT", "DB_NAME"}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("STORAGE_BACKEND", tt.backend)
			for k, v := range tt.set {
				t.Setenv(k, v)
			}

			err := ValidateEnv()
			if len(tt.missing) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, name := range tt.missing {
				assert.Contains(t, err.Error(), name)
			}
		})
	}
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "db")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "MONGO_URI")
}

func TestValidateEnvWithWarnings_MemoryBackend(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "STORAGE_BACKEND is memory")
}
