package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/household-roster/internal/persistence"
)

// clientRepositoryStub is an in-memory persistence.ClientRepository with
// per-call error overrides.
type clientRepositoryStub struct {
	mu         sync.Mutex
	clients    map[string]persistence.Client
	createErr  error
	replaceErr error
	getErr     error
	listErr    error
	deleteErr  error
}

func newClientRepositoryStub() *clientRepositoryStub {
	return &clientRepositoryStub{clients: make(map[string]persistence.Client)}
}

func (s *clientRepositoryStub) CreateClient(_ context.Context, client persistence.Client) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clients {
		if existing.Name == client.Name {
			return persistence.ErrDuplicate
		}
	}
	s.clients[client.ID] = client
	return nil
}

func (s *clientRepositoryStub) ReplaceClient(_ context.Context, client persistence.Client) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.clients[client.ID] = client
	return nil
}

func (s *clientRepositoryStub) GetClient(_ context.Context, id string) (persistence.Client, error) {
	if s.getErr != nil {
		return persistence.Client{}, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[id]
	if !ok {
		return persistence.Client{}, persistence.ErrNotFound
	}
	return client, nil
}

func (s *clientRepositoryStub) ListClients(_ context.Context) ([]persistence.Client, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]persistence.Client, 0, len(s.clients))
	for _, client := range s.clients {
		out = append(out, client)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *clientRepositoryStub) DeleteClient(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.clients, id)
	return nil
}

// housekeeperRepositoryStub is an in-memory persistence.HousekeeperRepository.
type housekeeperRepositoryStub struct {
	mu           sync.Mutex
	housekeepers map[string]persistence.Housekeeper
	replaceErr   error
}

func newHousekeeperRepositoryStub() *housekeeperRepositoryStub {
	return &housekeeperRepositoryStub{housekeepers: make(map[string]persistence.Housekeeper)}
}

func (s *housekeeperRepositoryStub) CreateHousekeeper(_ context.Context, housekeeper persistence.Housekeeper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.housekeepers {
		if existing.Name == housekeeper.Name {
			return persistence.ErrDuplicate
		}
	}
	s.housekeepers[housekeeper.ID] = housekeeper
	return nil
}

func (s *housekeeperRepositoryStub) ReplaceHousekeeper(_ context.Context, housekeeper persistence.Housekeeper) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.housekeepers[housekeeper.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.housekeepers[housekeeper.ID] = housekeeper
	return nil
}

func (s *housekeeperRepositoryStub) GetHousekeeper(_ context.Context, id string) (persistence.Housekeeper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	housekeeper, ok := s.housekeepers[id]
	if !ok {
		return persistence.Housekeeper{}, persistence.ErrNotFound
	}
	return housekeeper, nil
}

func (s *housekeeperRepositoryStub) ListHousekeepers(_ context.Context) ([]persistence.Housekeeper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]persistence.Housekeeper, 0, len(s.housekeepers))
	for _, housekeeper := range s.housekeepers {
		out = append(out, housekeeper)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *housekeeperRepositoryStub) DeleteHousekeeper(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.housekeepers[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.housekeepers, id)
	return nil
}

// accountRepositoryStub is an in-memory persistence.AccountRepository.
type accountRepositoryStub struct {
	mu       sync.Mutex
	accounts map[string]persistence.Account
}

func newAccountRepositoryStub() *accountRepositoryStub {
	return &accountRepositoryStub{accounts: make(map[string]persistence.Account)}
}

func (s *accountRepositoryStub) CreateAccount(_ context.Context, account persistence.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return persistence.ErrDuplicate
		}
	}
	s.accounts[account.ID] = account
	return nil
}

func (s *accountRepositoryStub) GetAccount(_ context.Context, id string) (persistence.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return persistence.Account{}, persistence.ErrNotFound
	}
	return account, nil
}

func (s *accountRepositoryStub) GetAccountByEmail(_ context.Context, email string) (persistence.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return persistence.Account{}, persistence.ErrNotFound
}

// sessionRepositoryStub is an in-memory persistence.SessionRepository that
// records calls for assertions.
type sessionRepositoryStub struct {
	mu          sync.Mutex
	sessions    map[string]persistence.Session
	createErr   error
	deleteErr   error
	deleteCalls []time.Time
}

func newSessionRepositoryStub() *sessionRepositoryStub {
	return &sessionRepositoryStub{sessions: make(map[string]persistence.Session)}
}

func (s *sessionRepositoryStub) CreateSession(_ context.Context, session persistence.Session) (persistence.Session, error) {
	if s.createErr != nil {
		return persistence.Session{}, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return session, nil
}

func (s *sessionRepositoryStub) GetSession(_ context.Context, token string) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *sessionRepositoryStub) RevokeSession(_ context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return persistence.Session{}, persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[token] = session
	return session, nil
}

func (s *sessionRepositoryStub) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls = append(s.deleteCalls, reference)
	for token, session := range s.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}
