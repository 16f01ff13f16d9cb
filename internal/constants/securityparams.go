package constants

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	RequestIDContextKey = "request_id"
)

// History Backends
const (
	HistoryBackendMemory   = "memory"
	HistoryBackendDatabase = "database"
)

// Database Drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)
