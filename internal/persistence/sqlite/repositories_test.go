package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

func openTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "roster_test.db")
	pool, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return pool
}

func testClient(id, name string) persistence.Client {
	now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	return persistence.Client{
		ID:                  id,
		Name:                name,
		Phone:               "555-0101",
		Email:               name + "@example.com",
		Address:             "12 Elm Street",
		HousekeepingDetails: "null",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func testHousekeeper(id, name string, bookings ...string) persistence.Housekeeper {
	now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	return persistence.Housekeeper{
		ID:        id,
		Name:      name,
		Phone:     "555-0202",
		Email:     name + "@example.com",
		Area:      "north",
		Bookings:  bookings,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestClientRepository_CRUD(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	repo := NewClientRepository(pool)
	ctx := context.Background()

	client := testClient("client-1", "alice")
	client.HousekeepingDetails = "2024-01-30 P2M null P0D"
	if err := repo.CreateClient(ctx, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	stored, err := repo.GetClient(ctx, "client-1")
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if stored.Name != "alice" || stored.HousekeepingDetails != "2024-01-30 P2M null P0D" {
		t.Errorf("stored client mismatch: %+v", stored)
	}

	stored.HousekeepingDetails = "2024-01-30 P2M 2024-05-12 am P1W"
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Hour)
	if err := repo.ReplaceClient(ctx, stored); err != nil {
		t.Fatalf("ReplaceClient failed: %v", err)
	}

	replaced, err := repo.GetClient(ctx, "client-1")
	if err != nil {
		t.Fatalf("GetClient after replace failed: %v", err)
	}
	if replaced.HousekeepingDetails != "2024-01-30 P2M 2024-05-12 am P1W" {
		t.Errorf("details not replaced: %q", replaced.HousekeepingDetails)
	}

	clients, err := repo.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}
	if len(clients) != 1 {
		t.Errorf("ListClients returned %d entries, want 1", len(clients))
	}

	if err := repo.DeleteClient(ctx, "client-1"); err != nil {
		t.Fatalf("DeleteClient failed: %v", err)
	}
	if _, err := repo.GetClient(ctx, "client-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("GetClient after delete = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteClient(ctx, "client-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("second DeleteClient = %v, want ErrNotFound", err)
	}
}

func TestClientRepository_DuplicateNameMapsToErrDuplicate(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	repo := NewClientRepository(pool)
	ctx := context.Background()

	if err := repo.CreateClient(ctx, testClient("client-1", "alice")); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if err := repo.CreateClient(ctx, testClient("client-2", "Alice")); !errors.Is(err, persistence.ErrDuplicate) {
		t.Errorf("duplicate name create = %v, want ErrDuplicate", err)
	}
}

func TestHousekeeperRepository_BookingsRoundTrip(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	repo := NewHousekeeperRepository(pool)
	ctx := context.Background()

	hk := testHousekeeper("hk-1", "bernice", "2024-06-01 pm", "2024-05-12 am")
	if err := repo.CreateHousekeeper(ctx, hk); err != nil {
		t.Fatalf("CreateHousekeeper failed: %v", err)
	}

	stored, err := repo.GetHousekeeper(ctx, "hk-1")
	if err != nil {
		t.Fatalf("GetHousekeeper failed: %v", err)
	}
	want := []string{"2024-06-01 pm", "2024-05-12 am"}
	if len(stored.Bookings) != len(want) {
		t.Fatalf("loaded %d bookings, want %d", len(stored.Bookings), len(want))
	}
	for i, booking := range stored.Bookings {
		if booking != want[i] {
			t.Errorf("Bookings[%d] = %q, want %q (insertion order must survive storage)", i, booking, want[i])
		}
	}

	// Whole-entity replacement rewrites the booking list.
	stored.Bookings = []string{"2024-05-12 am"}
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Hour)
	if err := repo.ReplaceHousekeeper(ctx, stored); err != nil {
		t.Fatalf("ReplaceHousekeeper failed: %v", err)
	}

	replaced, err := repo.GetHousekeeper(ctx, "hk-1")
	if err != nil {
		t.Fatalf("GetHousekeeper after replace failed: %v", err)
	}
	if len(replaced.Bookings) != 1 || replaced.Bookings[0] != "2024-05-12 am" {
		t.Errorf("bookings not rewritten: %v", replaced.Bookings)
	}

	if err := repo.DeleteHousekeeper(ctx, "hk-1"); err != nil {
		t.Fatalf("DeleteHousekeeper failed: %v", err)
	}
	if _, err := repo.GetHousekeeper(ctx, "hk-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("GetHousekeeper after delete = %v, want ErrNotFound", err)
	}
}

func TestHousekeeperRepository_DuplicateBookingRowRejected(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	repo := NewHousekeeperRepository(pool)
	ctx := context.Background()

	hk := testHousekeeper("hk-1", "bernice", "2024-05-12 am", "2024-05-12 am")
	if err := repo.CreateHousekeeper(ctx, hk); !errors.Is(err, persistence.ErrDuplicate) {
		t.Errorf("duplicate booking create = %v, want ErrDuplicate", err)
	}
}

func TestAccountAndSessionRepositories(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	accounts := NewAccountRepository(pool)
	sessions := NewSessionRepository(pool)
	ctx := context.Background()
	now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

	account := persistence.Account{
		ID:           "account-1",
		Email:        "Admin@Example.com",
		DisplayName:  "Admin",
		PasswordHash: "$argon2id$stub",
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accounts.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	byEmail, err := accounts.GetAccountByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if byEmail.ID != "account-1" {
		t.Errorf("GetAccountByEmail returned %q, want account-1", byEmail.ID)
	}

	session := persistence.Session{
		ID:        "session-1",
		AccountID: "account-1",
		Token:     "token-1",
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := sessions.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	revoked, err := sessions.RevokeSession(ctx, "token-1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}
	if revoked.RevokedAt == nil {
		t.Error("RevokeSession did not set RevokedAt")
	}
	if _, err := sessions.RevokeSession(ctx, "token-1", now.Add(2*time.Hour)); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("second RevokeSession = %v, want ErrNotFound", err)
	}

	if err := sessions.DeleteExpiredSessions(ctx, now.Add(48*time.Hour)); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}
	if _, err := sessions.GetSession(ctx, "token-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("GetSession after cleanup = %v, want ErrNotFound", err)
	}
}
