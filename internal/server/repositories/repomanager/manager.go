package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// RepositoryManager knows how to migrate a database of one kind and how to
// build repositories on top of it.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Store is an open database together with the manager that serves it.
// DB is nil for the memory driver.
type Store struct {
	DB      *sql.DB
	Manager RepositoryManager
}

// Users returns the users repository bound to the store's database.
func (s *Store) Users() users.Repository {
	return s.Manager.Users(s.DB)
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Open connects to the storage selected by driver, verifies the connection
// and applies pending migrations.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var (
		m         RepositoryManager
		sqlDriver string
		maxConns  int
	)

	switch driver {
	case DriverMemory:
		return &Store{Manager: NewMemoryRepositoryManager()}, nil
	case DriverPostgres:
		m, sqlDriver = NewPostgresRepositoryManager(), "pgx"
	case DriverSQLite:
		path, err := sqliteDSN(dsn)
		if err != nil {
			return nil, err
		}
		dsn = path
		m, sqlDriver, maxConns = NewSQLiteRepositoryManager(), "sqlite", 1
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sqlOpen(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &Store{DB: db, Manager: m}, nil
}
