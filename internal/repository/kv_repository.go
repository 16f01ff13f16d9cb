// Package repository implements SQL persistence for the service.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"

	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/database"
	"github.com/productforge/backend/internal/models"
	"github.com/productforge/backend/internal/utils"
)

// KeyValueRepository stores opaque values by key in the kv_store table.
// It satisfies history.KV.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Find(ctx context.Context, key string) (*models.KeyValue, error)
}

// SQLKeyValueRepository is the database/sql implementation of KeyValueRepository.
type SQLKeyValueRepository struct {
	db      database.Querier
	driver  string
	builder sq.StatementBuilderType
	now     func() time.Time
}

// NewKeyValueRepository creates a KeyValueRepository on the given pool.
func NewKeyValueRepository(db *database.Pool) *SQLKeyValueRepository {
	return newKeyValueRepository(db, db.Driver)
}

func newKeyValueRepository(db database.Querier, driver string) *SQLKeyValueRepository {
	return &SQLKeyValueRepository{
		db:      db,
		driver:  driver,
		builder: database.StatementBuilder(driver),
		now:     time.Now,
	}
}

// Get returns the value stored under key, or nil when the key is absent.
func (r *SQLKeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	kv, err := r.Find(ctx, key)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return kv.Value, nil
}

// Find returns the full row stored under key.
//
// Returns:
//   - The stored row
//   - A NotFoundError when the key is absent, or the database error
func (r *SQLKeyValueRepository) Find(ctx context.Context, key string) (*models.KeyValue, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	startTime := time.Now()

	query, args, err := r.builder.
		Select(constants.ColumnStoreKey, constants.ColumnStoreValue, constants.ColumnUpdatedAt).
		From(constants.TableKeyValueStore).
		Where(sq.Eq{constants.ColumnStoreKey: key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build key lookup: %w", err)
	}

	kv := &models.KeyValue{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&kv.Key, &kv.Value, &kv.UpdatedAt)

	utils.LogDBQuery(query, args, time.Since(startTime), ignoreNoRows(err))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("KeyValue", key)
		}
		return nil, fmt.Errorf("failed to get value for key %s: %w", key, err)
	}

	return kv, nil
}

// Put inserts or replaces the value stored under key.
func (r *SQLKeyValueRepository) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	startTime := time.Now()
	now := r.now().UTC()

	insert := r.builder.
		Insert(constants.TableKeyValueStore).
		Columns(constants.ColumnStoreKey, constants.ColumnStoreValue, constants.ColumnUpdatedAt).
		Values(key, value, now)

	if r.driver == constants.DriverMySQL {
		insert = insert.Suffix(fmt.Sprintf(
			"ON DUPLICATE KEY UPDATE %[1]s = VALUES(%[1]s), %[2]s = VALUES(%[2]s)",
			constants.ColumnStoreValue, constants.ColumnUpdatedAt,
		))
	} else {
		insert = insert.Suffix(fmt.Sprintf(
			"ON CONFLICT(%[1]s) DO UPDATE SET %[2]s = excluded.%[2]s, %[3]s = excluded.%[3]s",
			constants.ColumnStoreKey, constants.ColumnStoreValue, constants.ColumnUpdatedAt,
		))
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build key upsert: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to store value for key %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("bytes", len(value)).Msg("Key-value entry stored")
	return nil
}

func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
