package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

// HousekeeperRepository implements persistence.HousekeeperRepository using
// SQLite. Booking lists live in a child table keyed by (housekeeper, position)
// and are rewritten whole on every replace, mirroring the application's
// whole-entity replacement model.
type HousekeeperRepository struct {
	pool *ConnectionPool
}

// NewHousekeeperRepository creates a SQLite-backed housekeeper repository.
func NewHousekeeperRepository(pool *ConnectionPool) *HousekeeperRepository {
	return &HousekeeperRepository{pool: pool}
}

// CreateHousekeeper inserts a housekeeper and any initial bookings.
func (r *HousekeeperRepository) CreateHousekeeper(ctx context.Context, hk persistence.Housekeeper) error {
	if hk.ID == "" {
		return persistence.ErrConstraintViolation
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO housekeepers (id, name, phone, email, area, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			hk.ID,
			hk.Name,
			hk.Phone,
			hk.Email,
			hk.Area,
			hk.CreatedAt.UTC().Format(time.RFC3339),
			hk.UpdatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return mapSQLiteError(err)
		}
		return insertBookings(tx, hk.ID, hk.Bookings)
	})
}

// ReplaceHousekeeper overwrites the housekeeper row and rewrites its booking
// list in one transaction.
func (r *HousekeeperRepository) ReplaceHousekeeper(ctx context.Context, hk persistence.Housekeeper) error {
	if hk.ID == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE housekeepers
			SET name = ?, phone = ?, email = ?, area = ?, updated_at = ?
			WHERE id = ?`,
			hk.Name,
			hk.Phone,
			hk.Email,
			hk.Area,
			hk.UpdatedAt.UTC().Format(time.RFC3339),
			hk.ID,
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

		if _, err := tx.Exec("DELETE FROM housekeeper_bookings WHERE housekeeper_id = ?", hk.ID); err != nil {
			return mapSQLiteError(err)
		}
		return insertBookings(tx, hk.ID, hk.Bookings)
	})
}

// GetHousekeeper retrieves a housekeeper and its bookings by ID.
func (r *HousekeeperRepository) GetHousekeeper(ctx context.Context, id string) (persistence.Housekeeper, error) {
	if id == "" {
		return persistence.Housekeeper{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, area, created_at, updated_at
		FROM housekeepers
		WHERE id = ?`, id)

	hk, err := scanHousekeeper(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Housekeeper{}, persistence.ErrNotFound
		}
		return persistence.Housekeeper{}, mapSQLiteError(err)
	}

	bookings, err := r.loadBookings(ctx, id)
	if err != nil {
		return persistence.Housekeeper{}, err
	}
	hk.Bookings = bookings
	return hk, nil
}

// ListHousekeepers returns all housekeepers with their bookings, ordered by
// creation time then ID.
func (r *HousekeeperRepository) ListHousekeepers(ctx context.Context) ([]persistence.Housekeeper, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, name, phone, email, area, created_at, updated_at
		FROM housekeepers
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var housekeepers []persistence.Housekeeper
	for rows.Next() {
		hk, err := scanHousekeeper(rows.Scan)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		housekeepers = append(housekeepers, hk)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	for i := range housekeepers {
		bookings, err := r.loadBookings(ctx, housekeepers[i].ID)
		if err != nil {
			return nil, err
		}
		housekeepers[i].Bookings = bookings
	}
	return housekeepers, nil
}

// DeleteHousekeeper removes a housekeeper; bookings cascade.
func (r *HousekeeperRepository) DeleteHousekeeper(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM housekeepers WHERE id = ?", id)
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

func (r *HousekeeperRepository) loadBookings(ctx context.Context, housekeeperID string) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT booking
		FROM housekeeper_bookings
		WHERE housekeeper_id = ?
		ORDER BY position ASC`, housekeeperID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var bookings []string
	for rows.Next() {
		var booking string
		if err := rows.Scan(&booking); err != nil {
			return nil, mapSQLiteError(err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return bookings, nil
}

func insertBookings(tx *sql.Tx, housekeeperID string, bookings []string) error {
	for i, booking := range bookings {
		if _, err := tx.Exec(`
			INSERT INTO housekeeper_bookings (housekeeper_id, position, booking)
			VALUES (?, ?, ?)`,
			housekeeperID, i+1, booking,
		); err != nil {
			return mapSQLiteError(err)
		}
	}
	return nil
}

func scanHousekeeper(scan func(...any) error) (persistence.Housekeeper, error) {
	var hk persistence.Housekeeper
	var createdAt, updatedAt string

	if err := scan(
		&hk.ID,
		&hk.Name,
		&hk.Phone,
		&hk.Email,
		&hk.Area,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.Housekeeper{}, err
	}

	var err error
	if hk.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Housekeeper{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if hk.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Housekeeper{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return hk, nil
}
