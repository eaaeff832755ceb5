package application

import (
	"time"

	"github.com/example/household-roster/internal/schedule"
)

// Principal represents the authenticated operator invoking a service method.
type Principal struct {
	AccountID string
	IsAdmin   bool
}

// Client is a service recipient. It is treated as an immutable value: every
// edit constructs a new Client and replaces the stored one wholesale.
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Details   schedule.HousekeepingDetails
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Housekeeper is a bookable worker. Like Client it is replaced wholesale on
// every edit; its BookingList is never mutated in place.
type Housekeeper struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Area      string
	Bookings  schedule.BookingList
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientInput captures caller provided client contact fields.
type ClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// HousekeeperInput captures caller provided housekeeper contact fields.
type HousekeeperInput struct {
	Name  string
	Phone string
	Email string
	Area  string
}

// Lead pairs an overdue client with its predicted due date for call lists.
type Lead struct {
	Client  Client
	DueDate schedule.Date
}

// Account represents an operator login exposed by the application services.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session represents an authenticated session issued to an operator.
type Session struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate an operator.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication.
type AuthenticateResult struct {
	Account Account
	Session Session
}
