package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string // session log files are written here when set
	Environment string
	ServiceName string
	Version     string

	// Storage
	StorageBackend string // memory, file, redis, postgres
	DataDir        string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string

	// Postgres
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Favorites (MongoDB). Empty URI keeps favorites in memory.
	MongoURI      string
	MongoDatabase string

	// AI recipe generator
	OpenAIEndpoint string
	OpenAIKey      string
	OpenAIModel    string
	OpenAITimeout  time.Duration

	// Domain
	HistoryCap           int
	ArchiveCap           int
	TimeZone             string
	RolloverPollInterval time.Duration
	WorkerCount          int

	// API
	ActiveUserCacheSize int
	ActiveUserTTL       time.Duration
	RateLimitPerSecond  float64
	RateLimitBurst      int
	MaxRequestBodyBytes int64
	TrustedProxies      []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", EnvDev),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		DataDir:        getEnv("DATA_DIR", DefaultDataDir),
		RedisAddr:      getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		RedisNamespace: getEnv("REDIS_NAMESPACE", DefaultRedisNamespace),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "platify"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", DefaultMongoDatabase),

		OpenAIEndpoint: getEnv("OPENAI_ENDPOINT", DefaultOpenAIEndpoint),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", DefaultOpenAIModel),
		OpenAITimeout:  getEnvAsDuration("OPENAI_TIMEOUT", DefaultOpenAITimeout),

		HistoryCap:           getEnvAsInt("HISTORY_CAP", DefaultHistoryCap),
		ArchiveCap:           getEnvAsInt("ARCHIVE_CAP", DefaultArchiveCap),
		TimeZone:             getEnv("TIME_ZONE", DefaultTimeZone),
		RolloverPollInterval: getEnvAsDuration("ROLLOVER_POLL_INTERVAL", DefaultRolloverPollInterval),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),

		ActiveUserCacheSize: getEnvAsInt("ACTIVE_USER_CACHE_SIZE", DefaultActiveUserCacheSize),
		ActiveUserTTL:       getEnvAsDuration("ACTIVE_USER_TTL", DefaultActiveUserTTL),
		RateLimitPerSecond:  getEnvAsFloat("RATE_LIMIT_PER_SECOND", DefaultRateLimitPerSecond),
		RateLimitBurst:      getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		MaxRequestBodyBytes: int64(getEnvAsInt("MAX_REQUEST_BODY_BYTES", DefaultMaxRequestBodyBytes)),
		TrustedProxies:      getEnvAsList("TRUSTED_PROXIES"),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	return cfg, nil
}

// Validate checks enumerations and bounds that would otherwise fail at runtime
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	switch c.StorageBackend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres:
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_BACKEND must be one of memory, file, redis, postgres, got %q", c.StorageBackend))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("TIME_ZONE is not a known zone: %v", err))
	}
	if c.HistoryCap <= 0 {
		problems = append(problems, "HISTORY_CAP must be positive")
	}
	if c.ArchiveCap <= 0 {
		problems = append(problems, "ARCHIVE_CAP must be positive")
	}
	if c.RolloverPollInterval <= 0 {
		problems = append(problems, "ROLLOVER_POLL_INTERVAL must be positive")
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.ActiveUserCacheSize <= 0 {
		problems = append(problems, "ACTIVE_USER_CACHE_SIZE must be positive")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves TimeZone
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnvAsDuration parses a time.Duration variable, falling back to defaultValue when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
