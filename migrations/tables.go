package migrations

import (
	"fmt"

	"github.com/productforge/backend/internal/constants"
)

// blobType returns the column type used for opaque byte values.
func blobType(driver string) string {
	switch driver {
	case constants.DriverPostgres:
		return "BYTEA"
	case constants.DriverMySQL:
		return "LONGBLOB"
	default:
		return "BLOB"
	}
}

// createKeyValueStoreTable creates the kv_store table. Each export history is
// one row holding the JSON-encoded entry list.
func createKeyValueStoreTable() Migration {
	return Migration{
		Name:        "create_kv_store_table",
		Description: "Creates the kv_store table",
		TableName:   constants.TableKeyValueStore,
		Statements: func(driver string) []string {
			return []string{fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					%s VARCHAR(255) NOT NULL PRIMARY KEY,
					%s %s NOT NULL,
					%s TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				constants.TableKeyValueStore,
				constants.ColumnStoreKey,
				constants.ColumnStoreValue, blobType(driver),
				constants.ColumnUpdatedAt,
			)}
		},
	}
}

// createKeyValueStoreUpdatedAtIndex indexes kv_store by modification time.
// MySQL has no CREATE INDEX IF NOT EXISTS; the migration record prevents reruns.
func createKeyValueStoreUpdatedAtIndex() Migration {
	return Migration{
		Name:        "create_kv_store_updated_at_index",
		Description: "Indexes kv_store by updated_at",
		Statements: func(driver string) []string {
			ifNotExists := "IF NOT EXISTS "
			if driver == constants.DriverMySQL {
				ifNotExists = ""
			}
			return []string{fmt.Sprintf(
				"CREATE INDEX %sidx_kv_store_updated_at ON %s (%s)",
				ifNotExists, constants.TableKeyValueStore, constants.ColumnUpdatedAt,
			)}
		},
	}
}
