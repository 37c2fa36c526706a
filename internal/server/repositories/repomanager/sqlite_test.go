package repomanager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite_MigratesAndServesUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "auth.db")
	ctx := context.Background()

	s, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	repo := s.Users()
	require.IsType(t, &users.SQLiteRepository{}, repo)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "d"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "d"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	require.NoError(t, s.Close())

	// Reopening the same file must not re-apply migrations or lose data.
	s2, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	got, err := s2.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}

func TestOpen_SQLite_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), DriverSQLite, "")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	dir := t.TempDir()
	dsn, err := sqliteDSN(filepath.Join(dir, "a", "b.db"))
	require.NoError(t, err)
	assert.Equal(t, "file:"+filepath.Join(dir, "a", "b.db")+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dsn)
	assert.DirExists(t, filepath.Join(dir, "a"))
}
