package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/household-roster/internal/persistence"
	"github.com/example/household-roster/internal/schedule"
)

// LeadService derives the daily call list from client housekeeping state.
// A client qualifies when housekeeping is configured, the predicted due date
// is today or earlier, and no appointment after today is already on file.
type LeadService struct {
	clients persistence.ClientRepository
	now     func() time.Time
	cache   *leadCache
	logger  *slog.Logger
}

// NewLeadService wires dependencies for lead selection. cacheTTL bounds how
// long a computed list may be served before the roster is rescanned; zero or
// negative selects a default.
func NewLeadService(clients persistence.ClientRepository, now func() time.Time, cacheTTL time.Duration) *LeadService {
	return NewLeadServiceWithLogger(clients, now, cacheTTL, nil)
}

// NewLeadServiceWithLogger constructs a LeadService with a specified logger.
func NewLeadServiceWithLogger(clients persistence.ClientRepository, now func() time.Time, cacheTTL time.Duration, logger *slog.Logger) *LeadService {
	if now == nil {
		now = time.Now
	}
	return &LeadService{
		clients: clients,
		now:     now,
		cache:   newLeadCache(cacheTTL, now),
		logger:  defaultLogger(logger),
	}
}

// ListLeads returns overdue clients ordered soonest due first. The reference
// day is always passed in by the caller so the selection is reproducible.
func (s *LeadService) ListLeads(ctx context.Context, today schedule.Date) ([]Lead, error) {
	if s == nil || s.clients == nil {
		return nil, fmt.Errorf("client repository not configured")
	}

	key := today.String()
	if leads, ok := s.cache.Get(key); ok {
		return leads, nil
	}

	stored, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	clients := make([]Client, 0, len(stored))
	for _, record := range stored {
		client, err := toApplicationClient(record)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	selected := schedule.SelectLeads(clients, func(c Client) schedule.HousekeepingDetails {
		return c.Details
	}, today)

	leads := make([]Lead, 0, len(selected))
	for _, client := range selected {
		leads = append(leads, Lead{Client: client, DueDate: client.Details.NextDueDate()})
	}

	s.cache.Store(key, leads)
	serviceLogger(ctx, s.logger, "LeadService", "ListLeads", "today", key, "count", len(leads)).
		DebugContext(ctx, "lead list computed")
	return leads, nil
}

// Today reports the current calendar day from the injected clock.
func (s *LeadService) Today() schedule.Date {
	return schedule.DateOf(s.now())
}

// InvalidateCache drops any cached lead lists. Callers that mutate client
// housekeeping state can use it to make the next listing recompute.
func (s *LeadService) InvalidateCache() {
	s.cache.Invalidate()
}
