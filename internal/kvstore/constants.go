package kvstore

// KeySeparator separates the segments of hierarchical keys ("users/<id>/recipeHistory")
const KeySeparator = "/"

// ProbeKey is read by health checks and never written
const ProbeKey = "_probe"

// Backend names accepted by New
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// File backend settings
const (
	fileExtension   = ".json"
	tempFilePattern = ".tmp-*"
	journalFile     = "batch.journal"
	dirPerm         = 0o755
	filePerm        = 0o644
)

// Redis SCAN page size
const redisScanCount = 256

// Error Messages
const (
	ErrMsgStoreClosed       = "store is closed"
	ErrMsgUnknownBackend    = "unknown storage backend"
	ErrMsgReadFailed        = "failed to read key"
	ErrMsgWriteFailed       = "failed to write batch"
	ErrMsgListFailed        = "failed to list keys"
	ErrMsgCreateDirFailed   = "failed to create data directory"
	ErrMsgJournalFailed     = "failed to write batch journal"
	ErrMsgRecoverFailed     = "failed to replay batch journal"
	ErrMsgBeginTxFailed     = "failed to begin transaction"
	ErrMsgCommitTxFailed    = "failed to commit transaction"
	ErrMsgRedisPingFailed   = "failed to ping redis"
	ErrMsgMissingDependency = "backend dependency not configured"
)

// Log Messages
const (
	LogMsgStoreOpened       = "Key-value store opened"
	LogMsgFailedToRollback  = "Failed to rollback transaction"
	LogMsgFailedToCleanTemp = "Failed to remove temporary file"
	LogMsgBatchRolledBack   = "Batch write failed, previous values restored"
	LogMsgRollbackFailed    = "Failed to restore previous values, batch will be completed on next open"
	LogMsgJournalReplayed   = "Replayed interrupted batch"
	LogMsgJournalCorrupt    = "Discarding unreadable batch journal"
	LogMsgFailedToDropJrnl  = "Failed to remove batch journal"
)
