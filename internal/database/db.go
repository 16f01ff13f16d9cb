package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/productforge/backend/internal/config"
	"github.com/productforge/backend/internal/constants"
)

// Pool represents a database connection pool together with the driver it
// was opened with, so queries can pick the right SQL dialect.
type Pool struct {
	*sql.DB
	Driver string
}

var (
	// dbPool is the global database connection pool
	dbPool *Pool
)

// Connect opens a connection pool for the configured driver and verifies it.
//
// Parameters:
//   - cfg: The application configuration; only the database section is used
//
// Returns:
//   - The connection pool, also stored globally for Get
//   - An error if the database cannot be opened or reached
func Connect(cfg *config.AppConfig) (*Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectionTimeout)
	defer cancel()

	dbCfg := cfg.Database

	switch dbCfg.Driver {
	case constants.DriverSQLite:
		log.Info().Str("path", dbCfg.Path).Msg("Opening SQLite database")
		if err := os.MkdirAll(filepath.Dir(dbCfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

	case constants.DriverMySQL:
		log.Info().
			Str("host", dbCfg.Host).
			Int("port", dbCfg.Port).
			Str("database", dbCfg.Name).
			Msg("Connecting to MySQL database")
		if err := ensureMySQLDatabase(ctx, dbCfg); err != nil {
			return nil, err
		}

	case constants.DriverPostgres:
		log.Info().
			Str("host", dbCfg.Host).
			Int("port", dbCfg.Port).
			Str("database", dbCfg.Name).
			Msg("Connecting to PostgreSQL database")

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", dbCfg.Driver)
	}

	db, err := sql.Open(dbCfg.Driver, dbCfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	configurePool(db, dbCfg)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", dbCfg.Driver).Msg("Successfully connected to database")

	dbPool = &Pool{DB: db, Driver: dbCfg.Driver}
	return dbPool, nil
}

// configurePool applies connection limits. SQLite allows a single writer, so
// it gets exactly one connection.
func configurePool(db *sql.DB, dbCfg config.DatabaseSettings) {
	if dbCfg.Driver == constants.DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}

	db.SetMaxOpenConns(dbCfg.MaxConns)
	db.SetMaxIdleConns(dbCfg.MinConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBConnMaxIdleTime)
}

// ensureMySQLDatabase creates the configured schema when it does not exist yet.
func ensureMySQLDatabase(ctx context.Context, dbCfg config.DatabaseSettings) error {
	root := dbCfg
	root.Name = ""

	rootDB, err := sql.Open(constants.DriverMySQL, root.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to root database: %w", err)
	}
	defer rootDB.Close()

	if _, err := rootDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbCfg.Name)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	log.Info().Msgf("Ensured database '%s' exists", dbCfg.Name)
	return nil
}

// Get returns the global database connection pool
func Get() *Pool {
	if dbPool == nil {
		log.Fatal().Msg("database connection pool not initialized")
	}
	return dbPool
}

// Close closes the database connection pool
func (p *Pool) Close() {
	if p != nil && p.DB != nil {
		log.Info().Msg("Closing database connection pool")
		p.DB.Close()
	}
}

// Builder returns a squirrel statement builder using the placeholder style of
// the pool's driver.
func (p *Pool) Builder() sq.StatementBuilderType {
	return StatementBuilder(p.Driver)
}

// StatementBuilder returns a squirrel statement builder for driver.
// PostgreSQL uses $n placeholders; SQLite and MySQL use ?.
func StatementBuilder(driver string) sq.StatementBuilderType {
	if driver == constants.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Transaction executes a function within a transaction
func (p *Pool) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Handle panics to ensure proper rollback
	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HealthCheck performs a health check on the database connection
func (p *Pool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	start := time.Now()
	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Run a simple query to verify database functionality
	var result int
	if err := p.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	log.Debug().Dur("latency", time.Since(start)).Msg("Database health check passed")
	return nil
}
