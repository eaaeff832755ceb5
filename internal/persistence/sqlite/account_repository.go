package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

// AccountRepository implements persistence.AccountRepository using SQLite.
type AccountRepository struct {
	pool *ConnectionPool
}

// NewAccountRepository creates a SQLite-backed account repository.
func NewAccountRepository(pool *ConnectionPool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// CreateAccount inserts an operator account. Emails are stored lowercased so
// the unique index also enforces case-insensitive uniqueness.
func (r *AccountRepository) CreateAccount(ctx context.Context, account persistence.Account) error {
	if account.ID == "" || account.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, display_name, password_hash, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		normalizeEmail(account.Email),
		account.DisplayName,
		account.PasswordHash,
		account.IsAdmin,
		account.CreatedAt.UTC().Format(time.RFC3339),
		account.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// GetAccount retrieves an account by ID.
func (r *AccountRepository) GetAccount(ctx context.Context, id string) (persistence.Account, error) {
	if id == "" {
		return persistence.Account{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, accountSelect+" WHERE id = ?", id)
	return scanAccount(row)
}

// GetAccountByEmail retrieves an account by email address.
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (persistence.Account, error) {
	if email == "" {
		return persistence.Account{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, accountSelect+" WHERE email = ?", normalizeEmail(email))
	return scanAccount(row)
}

const accountSelect = `
	SELECT id, email, display_name, password_hash, is_admin, created_at, updated_at
	FROM accounts`

func scanAccount(row *sql.Row) (persistence.Account, error) {
	var account persistence.Account
	var createdAt, updatedAt string

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.PasswordHash,
		&account.IsAdmin,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Account{}, persistence.ErrNotFound
		}
		return persistence.Account{}, mapSQLiteError(err)
	}

	if account.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Account{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if account.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Account{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
