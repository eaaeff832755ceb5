package persistence

import (
	"context"
	"time"
)

// ClientRepository exposes CRUD operations for clients. Updates replace the
// whole record; there is no partial-field mutation.
type ClientRepository interface {
	CreateClient(ctx context.Context, client Client) error
	ReplaceClient(ctx context.Context, client Client) error
	GetClient(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	DeleteClient(ctx context.Context, id string) error
}

// HousekeeperRepository exposes CRUD operations for housekeepers, including
// their booking lists, which are replaced wholesale with the entity.
type HousekeeperRepository interface {
	CreateHousekeeper(ctx context.Context, housekeeper Housekeeper) error
	ReplaceHousekeeper(ctx context.Context, housekeeper Housekeeper) error
	GetHousekeeper(ctx context.Context, id string) (Housekeeper, error)
	ListHousekeepers(ctx context.Context) ([]Housekeeper, error)
	DeleteHousekeeper(ctx context.Context, id string) error
}

// AccountRepository exposes operator account storage.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account Account) error
	GetAccount(ctx context.Context, id string) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
