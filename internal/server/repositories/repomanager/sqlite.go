package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/filex"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, migrations.SQLiteDir); err != nil {
		return err
	}
	return nil
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

// sqliteDSN turns a database file path into a modernc DSN, creating the
// parent directory. Busy timeout and foreign keys are always enabled.
func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("sqlite driver requires a database path")
	}
	dir, err := filex.EnsureParentDir(path)
	if err != nil {
		return "", fmt.Errorf("sqlite path: %w", err)
	}
	return "file:" + filepath.Join(dir, filepath.Base(path)) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
}
