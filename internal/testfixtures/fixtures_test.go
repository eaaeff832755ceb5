package testfixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

func TestClockAdvance(t *testing.T) {
	t.Parallel()

	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Now())
	}

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(ReferenceTime().Add(90 * time.Minute)) {
		t.Fatalf("unexpected advanced time %v", updated)
	}
}

func TestIDGeneratorSequence(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("roster")
	if got := gen.Next(); got != "roster-1" {
		t.Fatalf("expected roster-1, got %s", got)
	}
	if got := gen.Next(); got != "roster-2" {
		t.Fatalf("expected roster-2, got %s", got)
	}
}

func TestMemoryStoreClientConstraints(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	first := NewClientFixture(WithClientName("Alice Pauline"))
	if err := store.CreateClient(ctx, first); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	dup := NewClientFixture(WithClientName("ALICE PAULINE"))
	if err := store.CreateClient(ctx, dup); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for case-insensitive name, got %v", err)
	}

	if err := store.ReplaceClient(ctx, NewClientFixture()); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replacing unknown client, got %v", err)
	}
}

func TestMemoryStoreHousekeeperBookingsAreIsolated(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	fixture := NewHousekeeperFixture(WithBookingTexts("2024-05-12 am", "2024-05-01 pm"))
	if err := store.CreateHousekeeper(ctx, fixture); err != nil {
		t.Fatalf("CreateHousekeeper failed: %v", err)
	}

	loaded, err := store.GetHousekeeper(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("GetHousekeeper failed: %v", err)
	}
	loaded.Bookings[0] = "mutated"

	reloaded, err := store.GetHousekeeper(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("GetHousekeeper failed: %v", err)
	}
	if reloaded.Bookings[0] != "2024-05-12 am" {
		t.Fatalf("stored bookings were mutated through a returned slice: %v", reloaded.Bookings)
	}
}

func TestMemoryStoreSessionLifecycle(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := ReferenceTime()

	session := persistence.Session{ID: "sess-1", AccountID: "acct-1", Token: "tok-1", ExpiresAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now}
	if _, err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := store.RevokeSession(ctx, "tok-1", now.Add(time.Minute)); err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}
	if _, err := store.RevokeSession(ctx, "tok-1", now.Add(time.Minute)); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double revoke, got %v", err)
	}

	if err := store.DeleteExpiredSessions(ctx, now.Add(2*time.Hour)); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}
	if store.SessionCount() != 0 {
		t.Fatalf("expected all sessions purged, got %d", store.SessionCount())
	}
}
