package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

var (
	clientCounter      uint64
	housekeeperCounter uint64
	accountCounter     uint64
)

var referenceTime = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ClientFixture configures a deterministic stored client record.
type ClientFixture = persistence.Client

// ClientOption configures the generated client fixture.
type ClientOption func(*ClientFixture)

// NewClientFixture returns a deterministic client fixture with optional overrides.
func NewClientFixture(opts ...ClientOption) ClientFixture {
	idx := atomic.AddUint64(&clientCounter, 1)
	id := fmt.Sprintf("client-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ClientFixture{
		ID:                  id,
		Name:                fmt.Sprintf("Client %03d", idx),
		Phone:               fmt.Sprintf("9%07d", idx),
		Email:               fmt.Sprintf("%s@example.com", id),
		Address:             fmt.Sprintf("%d Roster Lane", idx),
		HousekeepingDetails: "null",
		CreatedAt:           created,
		UpdatedAt:           created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithClientID overrides the generated client ID.
func WithClientID(id string) ClientOption {
	return func(f *ClientFixture) {
		f.ID = id
	}
}

// WithClientName overrides the generated name.
func WithClientName(name string) ClientOption {
	return func(f *ClientFixture) {
		f.Name = name
	}
}

// WithHousekeepingStorageText sets the stored recurrence text.
func WithHousekeepingStorageText(text string) ClientOption {
	return func(f *ClientFixture) {
		f.HousekeepingDetails = text
	}
}

// HousekeeperFixture configures a deterministic stored housekeeper record.
type HousekeeperFixture = persistence.Housekeeper

// HousekeeperOption configures the generated housekeeper fixture.
type HousekeeperOption func(*HousekeeperFixture)

// NewHousekeeperFixture returns a deterministic housekeeper fixture with optional overrides.
func NewHousekeeperFixture(opts ...HousekeeperOption) HousekeeperFixture {
	idx := atomic.AddUint64(&housekeeperCounter, 1)
	id := fmt.Sprintf("housekeeper-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := HousekeeperFixture{
		ID:        id,
		Name:      fmt.Sprintf("Housekeeper %03d", idx),
		Phone:     fmt.Sprintf("8%07d", idx),
		Email:     fmt.Sprintf("%s@example.com", id),
		Area:      "Central",
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithHousekeeperID overrides the generated housekeeper ID.
func WithHousekeeperID(id string) HousekeeperOption {
	return func(f *HousekeeperFixture) {
		f.ID = id
	}
}

// WithHousekeeperName overrides the generated name.
func WithHousekeeperName(name string) HousekeeperOption {
	return func(f *HousekeeperFixture) {
		f.Name = name
	}
}

// WithBookingTexts sets the stored booking list in insertion order.
func WithBookingTexts(texts ...string) HousekeeperOption {
	return func(f *HousekeeperFixture) {
		f.Bookings = append([]string(nil), texts...)
	}
}

// AccountFixture configures a deterministic stored account record.
type AccountFixture = persistence.Account

// AccountOption configures the generated account fixture.
type AccountOption func(*AccountFixture)

// NewAccountFixture returns a deterministic account fixture with optional overrides.
func NewAccountFixture(opts ...AccountOption) AccountFixture {
	idx := atomic.AddUint64(&accountCounter, 1)
	id := fmt.Sprintf("account-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := AccountFixture{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		DisplayName:  fmt.Sprintf("Operator %03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		IsAdmin:      false,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAccountEmail overrides the generated email address.
func WithAccountEmail(email string) AccountOption {
	return func(f *AccountFixture) {
		f.Email = email
	}
}

// WithAccountPasswordHash overrides the generated password hash.
func WithAccountPasswordHash(hash string) AccountOption {
	return func(f *AccountFixture) {
		f.PasswordHash = hash
	}
}

// WithAccountAdmin sets the admin flag on the generated fixture.
func WithAccountAdmin(isAdmin bool) AccountOption {
	return func(f *AccountFixture) {
		f.IsAdmin = isAdmin
	}
}
