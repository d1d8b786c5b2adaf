package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the environment variables every deployment must set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"OPENAI_API_KEY",
}

// backendEnvVars lists the variables a storage backend cannot run without
var backendEnvVars = map[string][]string{
	BackendFile:     {"DATA_DIR"},
	BackendRedis:    {"REDIS_ADDR"},
	BackendPostgres: {"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"},
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := append([]string(nil), RequiredEnvVars...)
	backend := strings.ToLower(os.Getenv("STORAGE_BACKEND"))
	required = append(required, backendEnvVars[backend]...)

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if strings.ToLower(os.Getenv("STORAGE_BACKEND")) == BackendMemory || os.Getenv("STORAGE_BACKEND") == "" {
		warnings = append(warnings, "STORAGE_BACKEND is memory - history and metrics are lost on restart")
	}

	if os.Getenv("MONGO_URI") == "" {
		warnings = append(warnings, "MONGO_URI is not set - favorites are kept in memory")
	}

	return warnings, nil
}
