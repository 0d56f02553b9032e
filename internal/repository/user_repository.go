package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"news-app/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserRepository is the narrow storage contract the session layer depends
// on: unique-indexed lookups, single-row mutations and an atomic
// conditional update for the refresh-token slot.
type UserRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByEmailOrUsername(ctx context.Context, identifier string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateRefreshToken(ctx context.Context, id string, token *string) error
	RotateRefreshToken(ctx context.Context, id, presented, next string) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const accountColumns = "id, first_name, last_name, username, email, password_hash, refresh_token, saved_articles, created_at"

func (r *userRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	account.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, first_name, last_name, username, email, password_hash, saved_articles)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		account.ID, account.FirstName, account.LastName, account.Username,
		account.Email, account.PasswordHash, pq.Array(account.SavedArticles),
	).Scan(&account.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return account, nil
}

func (r *userRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE email = $1 OR username = $1",
		identifier,
	)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email or username: %w", err)
	}
	return account, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE id = $1",
		id,
	)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return account, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET refresh_token = $2 WHERE id = $1",
		id, token,
	)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RotateRefreshToken replaces the stored refresh token with next only if it
// still equals presented. The conditional WHERE clause makes the
// read-compare-write a single atomic statement, so concurrent refresh calls
// presenting the same token cannot both win.
func (r *userRepository) RotateRefreshToken(ctx context.Context, id, presented, next string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET refresh_token = $3 WHERE id = $1 AND refresh_token = $2",
		id, presented, next,
	)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if affected == 0 {
		return domain.ErrTokenMismatch
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.RefreshToken,
		pq.Array(&account.SavedArticles),
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
