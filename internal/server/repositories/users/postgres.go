package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"

	pgEmailConstraint        = "users_email_key"
	pgBiometricKeyConstraint = "users_biometric_key_key"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, biometric_key)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.BiometricKey).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, mapPostgresError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, COALESCE(biometric_key, ''), created_at, updated_at FROM users
		 WHERE email = $1
		 `

	return r.getUser(ctx, query, email)
}

func (r *PostgresRepository) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, email, password_hash, COALESCE(biometric_key, ''), created_at, updated_at FROM users
		 WHERE biometric_key = $1
		 `

	return r.getUser(ctx, query, key)
}

func (r *PostgresRepository) SetBiometricKey(ctx context.Context, userID, key string) error {
	query :=
		`UPDATE users SET biometric_key = NULLIF($2, ''), updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, key)
	if err != nil {
		return mapPostgresError(err)
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

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.BiometricKey, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func mapPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case pgEmailConstraint:
			return common.ErrDuplicateEmail
		case pgBiometricKeyConstraint:
			return common.ErrDuplicateBiometricKey
		}
	}
	return fmt.Errorf("db error: %w", err)
}
