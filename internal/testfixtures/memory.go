package testfixtures

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

// MemoryStore implements every persistence repository interface against plain
// in-process maps. It mirrors the sqlite package's constraint behaviour, such
// as case-insensitive unique names, so services behave identically against
// either backend.
type MemoryStore struct {
	mu           sync.Mutex
	clients      map[string]persistence.Client
	clientOrder  []string
	housekeepers map[string]persistence.Housekeeper
	hkOrder      []string
	accounts     map[string]persistence.Account
	sessions     map[string]persistence.Session
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:      make(map[string]persistence.Client),
		housekeepers: make(map[string]persistence.Housekeeper),
		accounts:     make(map[string]persistence.Account),
		sessions:     make(map[string]persistence.Session),
	}
}

var _ persistence.ClientRepository = (*MemoryStore)(nil)
var _ persistence.HousekeeperRepository = (*MemoryStore)(nil)
var _ persistence.AccountRepository = (*MemoryStore)(nil)
var _ persistence.SessionRepository = (*MemoryStore)(nil)

func (s *MemoryStore) CreateClient(_ context.Context, client persistence.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clients {
		if strings.EqualFold(existing.Name, client.Name) {
			return persistence.ErrDuplicate
		}
	}
	s.clients[client.ID] = client
	s.clientOrder = append(s.clientOrder, client.ID)
	return nil
}

func (s *MemoryStore) ReplaceClient(_ context.Context, client persistence.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ID]; !ok {
		return persistence.ErrNotFound
	}
	for id, existing := range s.clients {
		if id != client.ID && strings.EqualFold(existing.Name, client.Name) {
			return persistence.ErrDuplicate
		}
	}
	s.clients[client.ID] = client
	return nil
}

func (s *MemoryStore) GetClient(_ context.Context, id string) (persistence.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[id]
	if !ok {
		return persistence.Client{}, persistence.ErrNotFound
	}
	return client, nil
}

func (s *MemoryStore) ListClients(_ context.Context) ([]persistence.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]persistence.Client, 0, len(s.clients))
	for _, id := range s.clientOrder {
		if client, ok := s.clients[id]; ok {
			out = append(out, client)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.clients, id)
	return nil
}

func (s *MemoryStore) CreateHousekeeper(_ context.Context, housekeeper persistence.Housekeeper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.housekeepers {
		if strings.EqualFold(existing.Name, housekeeper.Name) {
			return persistence.ErrDuplicate
		}
	}
	s.housekeepers[housekeeper.ID] = cloneHousekeeper(housekeeper)
	s.hkOrder = append(s.hkOrder, housekeeper.ID)
	return nil
}

func (s *MemoryStore) ReplaceHousekeeper(_ context.Context, housekeeper persistence.Housekeeper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.housekeepers[housekeeper.ID]; !ok {
		return persistence.ErrNotFound
	}
	if hasDuplicateBookingText(housekeeper.Bookings) {
		return persistence.ErrDuplicate
	}
	s.housekeepers[housekeeper.ID] = cloneHousekeeper(housekeeper)
	return nil
}

func (s *MemoryStore) GetHousekeeper(_ context.Context, id string) (persistence.Housekeeper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	housekeeper, ok := s.housekeepers[id]
	if !ok {
		return persistence.Housekeeper{}, persistence.ErrNotFound
	}
	return cloneHousekeeper(housekeeper), nil
}

func (s *MemoryStore) ListHousekeepers(_ context.Context) ([]persistence.Housekeeper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]persistence.Housekeeper, 0, len(s.housekeepers))
	for _, id := range s.hkOrder {
		if housekeeper, ok := s.housekeepers[id]; ok {
			out = append(out, cloneHousekeeper(housekeeper))
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteHousekeeper(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.housekeepers[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.housekeepers, id)
	return nil
}

func (s *MemoryStore) CreateAccount(_ context.Context, account persistence.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return persistence.ErrDuplicate
		}
	}
	s.accounts[account.ID] = account
	return nil
}

func (s *MemoryStore) GetAccount(_ context.Context, id string) (persistence.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return persistence.Account{}, persistence.ErrNotFound
	}
	return account, nil
}

func (s *MemoryStore) GetAccountByEmail(_ context.Context, email string) (persistence.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return persistence.Account{}, persistence.ErrNotFound
}

func (s *MemoryStore) CreateSession(_ context.Context, session persistence.Session) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.Token]; ok {
		return persistence.Session{}, persistence.ErrDuplicate
	}
	s.sessions[session.Token] = session
	return session, nil
}

func (s *MemoryStore) GetSession(_ context.Context, token string) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *MemoryStore) RevokeSession(_ context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return persistence.Session{}, persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	session.UpdatedAt = revokedAt
	s.sessions[token] = session
	return session, nil
}

func (s *MemoryStore) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}

// SessionCount reports the number of live session rows, for assertions.
func (s *MemoryStore) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func cloneHousekeeper(h persistence.Housekeeper) persistence.Housekeeper {
	cloned := h
	if len(h.Bookings) > 0 {
		cloned.Bookings = append([]string(nil), h.Bookings...)
	}
	return cloned
}

func hasDuplicateBookingText(bookings []string) bool {
	if len(bookings) < 2 {
		return false
	}
	seen := make(map[string]struct{}, len(bookings))
	for _, text := range bookings {
		if _, ok := seen[text]; ok {
			return true
		}
		seen[text] = struct{}{}
	}
	return false
}
