package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productforge/backend/internal/config"
)

func newMockPool(t *testing.T, driver string) (*Pool, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &Pool{DB: mockDB, Driver: driver}, mock
}

// TestNilConnectionHandling tests handling of nil connections
func TestNilConnectionHandling(t *testing.T) {
	t.Run("Close with nil DB pointer", func(t *testing.T) {
		pool := &Pool{DB: nil}
		pool.Close()
	})

	t.Run("Close with nil pool", func(t *testing.T) {
		var pool *Pool
		pool.Close()
	})
}

func TestGet(t *testing.T) {
	originalDBPool := dbPool
	defer func() { dbPool = originalDBPool }()

	pool, _ := newMockPool(t, "sqlite")
	dbPool = pool

	assert.Same(t, pool, Get())
}

func TestClose(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	pool := &Pool{DB: mockDB}
	mock.ExpectClose()

	pool.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatementBuilder(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"postgres", "SELECT store_value FROM kv_store WHERE store_key = $1"},
		{"mysql", "SELECT store_value FROM kv_store WHERE store_key = ?"},
		{"sqlite", "SELECT store_value FROM kv_store WHERE store_key = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			pool := &Pool{Driver: tt.driver}

			query, args, err := pool.Builder().
				Select("store_value").
				From("kv_store").
				Where("store_key = ?", "k").
				ToSql()

			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []interface{}{"k"}, args)
		})
	}
}

func TestTransaction(t *testing.T) {
	t.Run("Successful transaction", func(t *testing.T) {
		pool, mock := newMockPool(t, "sqlite")
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM kv_store").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			_, err := tx.Exec("DELETE FROM kv_store")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin transaction failure", func(t *testing.T) {
		pool, mock := newMockPool(t, "sqlite")
		mock.ExpectBegin().WillReturnError(errors.New("begin error"))

		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			t.Fatal("function should not be called")
			return nil
		})

		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Function error rolls back", func(t *testing.T) {
		pool, mock := newMockPool(t, "sqlite")
		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("function error")
		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback failure", func(t *testing.T) {
		pool, mock := newMockPool(t, "sqlite")
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("rollback error"))

		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			return errors.New("function error")
		})

		assert.ErrorContains(t, err, "failed to rollback transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Commit failure", func(t *testing.T) {
		pool, mock := newMockPool(t, "sqlite")
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("commit error"))

		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			return nil
		})

		assert.ErrorContains(t, err, "failed to commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Panic rolls back and re-panics", func(t *testing.T) {
		pool, mock := newMockPool(t, "sqlite")
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "panic test", func() {
			_ = pool.Transaction(context.Background(), func(tx *sql.Tx) error {
				panic("panic test")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("Successful health check", func(t *testing.T) {
		pool, mock := newMockPool(t, "postgres")
		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		assert.NoError(t, pool.HealthCheck(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ping failure", func(t *testing.T) {
		pool, mock := newMockPool(t, "postgres")
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err := pool.HealthCheck(context.Background())

		assert.ErrorContains(t, err, "database health check failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query failure", func(t *testing.T) {
		pool, mock := newMockPool(t, "postgres")
		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("query error"))

		err := pool.HealthCheck(context.Background())

		assert.ErrorContains(t, err, "database query test failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unexpected result", func(t *testing.T) {
		pool, mock := newMockPool(t, "postgres")
		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(2))

		err := pool.HealthCheck(context.Background())

		assert.ErrorContains(t, err, "database returned unexpected result")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConnect_SQLite(t *testing.T) {
	originalDBPool := dbPool
	defer func() { dbPool = originalDBPool }()

	cfg := &config.AppConfig{
		Database: config.DatabaseSettings{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "nested", "forge.db"),
		},
	}

	pool, err := Connect(cfg)
	require.NoError(t, err)
	defer pool.Close()

	assert.Equal(t, "sqlite", pool.Driver)
	assert.Same(t, pool, Get())
	assert.NoError(t, pool.HealthCheck(context.Background()))
	assert.Equal(t, 1, pool.Stats().MaxOpenConnections)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	cfg := &config.AppConfig{Database: config.DatabaseSettings{Driver: "oracle"}}

	_, err := Connect(cfg)

	assert.ErrorContains(t, err, "unsupported database driver")
}
