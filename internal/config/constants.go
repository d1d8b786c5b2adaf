package config

import "time"

// Storage backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Environments
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Defaults
const (
	DefaultPort           = "8080"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultServiceName    = "platify-core"
	DefaultVersion        = "dev"
	DefaultDataDir        = "data"
	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisNamespace = "platify"
	DefaultMongoDatabase  = "platify"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultOpenAITimeout  = 60 * time.Second

	DefaultHistoryCap           = 100
	DefaultArchiveCap           = 12
	DefaultTimeZone             = "UTC"
	DefaultRolloverPollInterval = 45 * time.Second
	DefaultWorkerCount          = 4

	DefaultActiveUserCacheSize = 10000
	DefaultActiveUserTTL       = 2 * time.Hour
	DefaultRateLimitPerSecond  = 10.0
	DefaultRateLimitBurst      = 20
	DefaultMaxRequestBodyBytes = 1 << 20
)
