package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := r.now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, biometric_key, created_at, updated_at)
		 VALUES (?, ?, NULLIF(?, ''), ?, ?)`,
		user.Email, user.PasswordHash, user.BiometricKey, now, now)
	if err != nil {
		return nil, mapSQLiteError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = strconv.FormatInt(id, 10)
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, password_hash, COALESCE(biometric_key, ''), created_at, updated_at
		 FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, common.ErrorNotFound
	}
	return r.getUser(ctx,
		`SELECT id, email, password_hash, COALESCE(biometric_key, ''), created_at, updated_at
		 FROM users WHERE biometric_key = ?`, key)
}

func (r *SQLiteRepository) SetBiometricKey(ctx context.Context, userID, key string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET biometric_key = NULLIF(?, ''), updated_at = ? WHERE id = ?`,
		key, r.now(), userID)
	if err != nil {
		return mapSQLiteError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var (
		id   int64
		user = &models.User{}
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&id, &user.Email, &user.PasswordHash, &user.BiometricKey, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = strconv.FormatInt(id, 10)
	return user, nil
}

// mapSQLiteError distinguishes the two unique indexes by the column named in
// the driver message ("UNIQUE constraint failed: users.email").
func mapSQLiteError(err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "users.email"):
			return common.ErrDuplicateEmail
		case strings.Contains(msg, "users.biometric_key"):
			return common.ErrDuplicateBiometricKey
		}
	}
	return fmt.Errorf("db error: %w", err)
}
