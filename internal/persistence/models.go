package persistence

import "time"

// Client represents a service recipient as stored. HousekeepingDetails holds
// the engine's storage text form ("null" when no recurrence is configured);
// it is opaque to this layer and decoded by the application services.
type Client struct {
	ID                  string
	Name                string
	Phone               string
	Email               string
	Address             string
	HousekeepingDetails string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Housekeeper represents a bookable worker as stored. Bookings holds the
// canonical booking texts in insertion order; one-based positions are implied
// by slice order and re-derived on load.
type Housekeeper struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Area      string
	Bookings  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account represents an operator login for the roster API.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for an account.
type Session struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
