// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines constants related to database structures,
// including table names, column names and connection parameters. Queries and
// migrations reference these instead of string literals.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableKeyValueStore is the name of the table holding opaque values by key,
	// such as serialized export histories.
	TableKeyValueStore = "kv_store"

	// TableSchemaMigrations is the name of the table recording applied migrations.
	TableSchemaMigrations = "schema_migrations"
)

// Common Column Names define frequently used database column names.
const (
	// ColumnStoreKey is the primary key column of the key-value store.
	ColumnStoreKey = "store_key"

	// ColumnStoreValue is the payload column of the key-value store.
	ColumnStoreValue = "store_value"

	// ColumnUpdatedAt is the column name for modification timestamps.
	ColumnUpdatedAt = "updated_at"

	// ColumnMigrationName is the column naming an applied migration.
	ColumnMigrationName = "name"

	// ColumnAppliedAt is the column recording when a migration ran.
	ColumnAppliedAt = "applied_at"
)

// PostgreSQL SSL connection string parameters
const (
	PostgresSSLParams  = "sslmode=verify-full connect_timeout=15"
	PostgresSSLDisable = "sslmode=disable connect_timeout=15"
)

// SQLite connection parameters
const (
	// DefaultSQLitePath is the database file used when no path is configured.
	DefaultSQLitePath = "data/productforge.db"

	// SQLitePragmas enables WAL mode and waits on locks instead of failing fast.
	SQLitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)
