package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/household-roster/internal/persistence"
	"github.com/example/household-roster/internal/schedule"
)

// ClientService orchestrates validation and persistence for clients and
// their housekeeping recurrence state. Every mutation follows the same
// shape: load the stored entity, derive a full replacement value, and write
// it back wholesale.
type ClientService struct {
	clients     persistence.ClientRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewClientService wires dependencies for client operations.
func NewClientService(clients persistence.ClientRepository, idGenerator func() string, now func() time.Time) *ClientService {
	return NewClientServiceWithLogger(clients, idGenerator, now, nil)
}

// NewClientServiceWithLogger constructs a ClientService with a specified logger.
func NewClientServiceWithLogger(clients persistence.ClientRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ClientService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ClientService{
		clients:     clients,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *ClientService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ClientService", operation, attrs...)
}

// CreateClient validates contact fields and persists a new client with no
// housekeeping configured.
func (s *ClientService) CreateClient(ctx context.Context, input ClientInput) (Client, error) {
	if s == nil || s.clients == nil {
		return Client{}, fmt.Errorf("client repository not configured")
	}

	input = normalizeContactInput(input)
	if vErr := validateContactInput(input.Name, input.Email); vErr.HasErrors() {
		return Client{}, vErr
	}

	now := s.now()
	client := Client{
		ID:        s.idGenerator(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		Details:   schedule.Empty(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clients.CreateClient(ctx, toPersistenceClient(client)); err != nil {
		return Client{}, mapRepoError(err)
	}

	s.loggerWith(ctx, "CreateClient", "client_id", client.ID).InfoContext(ctx, "client created")
	return client, nil
}

// UpdateClient replaces a client's contact fields, leaving its housekeeping
// state untouched.
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, input ClientInput) (Client, error) {
	input = normalizeContactInput(input)
	if vErr := validateContactInput(input.Name, input.Email); vErr.HasErrors() {
		return Client{}, vErr
	}

	return s.replaceClient(ctx, clientID, func(existing Client) (Client, error) {
		updated := existing
		updated.Name = input.Name
		updated.Phone = input.Phone
		updated.Email = input.Email
		updated.Address = input.Address
		return updated, nil
	})
}

// GetClient retrieves a client by ID.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (Client, error) {
	if s == nil || s.clients == nil {
		return Client{}, fmt.Errorf("client repository not configured")
	}

	stored, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return Client{}, mapRepoError(err)
	}
	return toApplicationClient(stored)
}

// ListClients returns all clients in stored order.
func (s *ClientService) ListClients(ctx context.Context) ([]Client, error) {
	if s == nil || s.clients == nil {
		return nil, fmt.Errorf("client repository not configured")
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
	return clients, nil
}

// DeleteClient removes a client. Only administrators may delete.
func (s *ClientService) DeleteClient(ctx context.Context, principal Principal, clientID string) error {
	if s == nil || s.clients == nil {
		return fmt.Errorf("client repository not configured")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}

	if err := s.clients.DeleteClient(ctx, clientID); err != nil {
		return mapRepoError(err)
	}

	s.loggerWith(ctx, "DeleteClient", "client_id", clientID).InfoContext(ctx, "client deleted")
	return nil
}

// SetHousekeepingDetails parses the operator-typed recurrence entry
// ("YYYY-MM-DD <number> <unit>") and replaces the client's housekeeping
// state with it. Deferment resets to zero and any booking is dropped.
func (s *ClientService) SetHousekeepingDetails(ctx context.Context, clientID, userText string) (Client, error) {
	details, err := schedule.ParseDetailsUserInput(userText)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("housekeeping", err.Error())
		return Client{}, vErr
	}

	return s.replaceClient(ctx, clientID, func(existing Client) (Client, error) {
		updated := existing
		updated.Details = details
		return updated, nil
	})
}

// ClearHousekeepingDetails resets the client to the no-recurrence state.
func (s *ClientService) ClearHousekeepingDetails(ctx context.Context, clientID string) (Client, error) {
	return s.replaceClient(ctx, clientID, func(existing Client) (Client, error) {
		updated := existing
		updated.Details = schedule.Empty()
		return updated, nil
	})
}

// DeferHousekeeping accumulates an extra delay onto the client's predicted
// due date. The unit vocabulary matches the recurrence entry form.
func (s *ClientService) DeferHousekeeping(ctx context.Context, clientID string, count int, unit string) (Client, error) {
	period, err := schedule.PeriodOf(count, unit)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("deferment", err.Error())
		return Client{}, vErr
	}

	return s.replaceClient(ctx, clientID, func(existing Client) (Client, error) {
		if !existing.Details.HasDetails() {
			vErr := &ValidationError{}
			vErr.add("housekeeping", "no housekeeping details configured")
			return Client{}, vErr
		}
		updated := existing
		updated.Details = existing.Details.Deferred(period)
		return updated, nil
	})
}

// SetClientBooking attaches the client's single upcoming appointment.
func (s *ClientService) SetClientBooking(ctx context.Context, clientID, bookingText string) (Client, error) {
	booking, err := schedule.ParseBooking(bookingText)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("booking", err.Error())
		return Client{}, vErr
	}

	return s.replaceClient(ctx, clientID, func(existing Client) (Client, error) {
		if !existing.Details.HasDetails() {
			vErr := &ValidationError{}
			vErr.add("housekeeping", "no housekeeping details configured")
			return Client{}, vErr
		}
		updated := existing
		updated.Details = existing.Details.WithBooking(booking)
		return updated, nil
	})
}

// ClearClientBooking removes the client's upcoming appointment, if any.
func (s *ClientService) ClearClientBooking(ctx context.Context, clientID string) (Client, error) {
	return s.replaceClient(ctx, clientID, func(existing Client) (Client, error) {
		updated := existing
		updated.Details = existing.Details.WithoutBooking()
		return updated, nil
	})
}

// replaceClient implements the read-copy-compute-replace round shared by
// every client mutation.
func (s *ClientService) replaceClient(ctx context.Context, clientID string, derive func(Client) (Client, error)) (Client, error) {
	if s == nil || s.clients == nil {
		return Client{}, fmt.Errorf("client repository not configured")
	}

	stored, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return Client{}, mapRepoError(err)
	}

	existing, err := toApplicationClient(stored)
	if err != nil {
		return Client{}, err
	}

	updated, err := derive(existing)
	if err != nil {
		return Client{}, err
	}
	updated.UpdatedAt = s.now()

	if err := s.clients.ReplaceClient(ctx, toPersistenceClient(updated)); err != nil {
		return Client{}, mapRepoError(err)
	}
	return updated, nil
}

func toPersistenceClient(client Client) persistence.Client {
	return persistence.Client{
		ID:                  client.ID,
		Name:                client.Name,
		Phone:               client.Phone,
		Email:               client.Email,
		Address:             client.Address,
		HousekeepingDetails: client.Details.StorageText(),
		CreatedAt:           client.CreatedAt,
		UpdatedAt:           client.UpdatedAt,
	}
}

func toApplicationClient(record persistence.Client) (Client, error) {
	details, err := schedule.ParseDetailsStorageForm(record.HousekeepingDetails)
	if err != nil {
		// Corrupt storage is surfaced, never silently repaired.
		return Client{}, fmt.Errorf("client %s: %w", record.ID, err)
	}

	return Client{
		ID:        record.ID,
		Name:      record.Name,
		Phone:     record.Phone,
		Email:     record.Email,
		Address:   record.Address,
		Details:   details,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func normalizeContactInput(input ClientInput) ClientInput {
	return ClientInput{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}
}

func validateContactInput(name, email string) *ValidationError {
	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			vErr.add("email", "email is invalid")
		}
	}
	return vErr
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrConstraintViolation):
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return vErr
	default:
		return err
	}
}
