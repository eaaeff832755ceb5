package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

// ClientRepository implements persistence.ClientRepository using SQLite.
type ClientRepository struct {
	pool *ConnectionPool
}

// NewClientRepository creates a SQLite-backed client repository.
func NewClientRepository(pool *ConnectionPool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// CreateClient inserts a new client row.
func (r *ClientRepository) CreateClient(ctx context.Context, client persistence.Client) error {
	if client.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, phone, email, address, housekeeping_details, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		client.ID,
		client.Name,
		client.Phone,
		client.Email,
		client.Address,
		client.HousekeepingDetails,
		client.CreatedAt.UTC().Format(time.RFC3339),
		client.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// ReplaceClient overwrites every stored field of an existing client.
func (r *ClientRepository) ReplaceClient(ctx context.Context, client persistence.Client) error {
	if client.ID == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE clients
		SET name = ?, phone = ?, email = ?, address = ?, housekeeping_details = ?, updated_at = ?
		WHERE id = ?`,
		client.Name,
		client.Phone,
		client.Email,
		client.Address,
		client.HousekeepingDetails,
		client.UpdatedAt.UTC().Format(time.RFC3339),
		client.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetClient retrieves a client by ID.
func (r *ClientRepository) GetClient(ctx context.Context, id string) (persistence.Client, error) {
	if id == "" {
		return persistence.Client{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, address, housekeeping_details, created_at, updated_at
		FROM clients
		WHERE id = ?`, id)

	client, err := scanClient(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Client{}, persistence.ErrNotFound
		}
		return persistence.Client{}, mapSQLiteError(err)
	}
	return client, nil
}

// ListClients returns all clients ordered by creation time then ID.
func (r *ClientRepository) ListClients(ctx context.Context) ([]persistence.Client, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, name, phone, email, address, housekeeping_details, created_at, updated_at
		FROM clients
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var clients []persistence.Client
	for rows.Next() {
		client, err := scanClient(rows.Scan)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return clients, nil
}

// DeleteClient removes a client by ID.
func (r *ClientRepository) DeleteClient(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func scanClient(scan func(...any) error) (persistence.Client, error) {
	var client persistence.Client
	var createdAt, updatedAt string

	if err := scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.Address,
		&client.HousekeepingDetails,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.Client{}, err
	}

	var err error
	if client.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Client{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if client.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Client{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return client, nil
}
