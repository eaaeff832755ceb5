package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/household-roster/internal/persistence"
	"github.com/example/household-roster/internal/schedule"
)

// HousekeeperService orchestrates housekeeper records and their booking
// lists. Booking mutations always operate on the stored list and write the
// whole entity back, so the persisted list is the single source of truth.
type HousekeeperService struct {
	housekeepers persistence.HousekeeperRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewHousekeeperService wires dependencies for housekeeper operations.
func NewHousekeeperService(housekeepers persistence.HousekeeperRepository, idGenerator func() string, now func() time.Time) *HousekeeperService {
	return NewHousekeeperServiceWithLogger(housekeepers, idGenerator, now, nil)
}

// NewHousekeeperServiceWithLogger constructs a HousekeeperService with a
// specified logger.
func NewHousekeeperServiceWithLogger(housekeepers persistence.HousekeeperRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *HousekeeperService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &HousekeeperService{
		housekeepers: housekeepers,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *HousekeeperService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "HousekeeperService", operation, attrs...)
}

// CreateHousekeeper validates contact fields and persists a new housekeeper
// with an empty booking list.
func (s *HousekeeperService) CreateHousekeeper(ctx context.Context, input HousekeeperInput) (Housekeeper, error) {
	if s == nil || s.housekeepers == nil {
		return Housekeeper{}, fmt.Errorf("housekeeper repository not configured")
	}

	input = normalizeHousekeeperInput(input)
	if vErr := validateContactInput(input.Name, input.Email); vErr.HasErrors() {
		return Housekeeper{}, vErr
	}

	now := s.now()
	housekeeper := Housekeeper{
		ID:        s.idGenerator(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Area:      input.Area,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.housekeepers.CreateHousekeeper(ctx, toPersistenceHousekeeper(housekeeper)); err != nil {
		return Housekeeper{}, mapRepoError(err)
	}

	s.loggerWith(ctx, "CreateHousekeeper", "housekeeper_id", housekeeper.ID).InfoContext(ctx, "housekeeper created")
	return housekeeper, nil
}

// UpdateHousekeeper replaces contact fields, preserving the booking list.
func (s *HousekeeperService) UpdateHousekeeper(ctx context.Context, housekeeperID string, input HousekeeperInput) (Housekeeper, error) {
	input = normalizeHousekeeperInput(input)
	if vErr := validateContactInput(input.Name, input.Email); vErr.HasErrors() {
		return Housekeeper{}, vErr
	}

	return s.replaceHousekeeper(ctx, housekeeperID, func(existing Housekeeper) (Housekeeper, error) {
		updated := existing
		updated.Name = input.Name
		updated.Phone = input.Phone
		updated.Email = input.Email
		updated.Area = input.Area
		return updated, nil
	})
}

// GetHousekeeper retrieves a housekeeper by ID.
func (s *HousekeeperService) GetHousekeeper(ctx context.Context, housekeeperID string) (Housekeeper, error) {
	if s == nil || s.housekeepers == nil {
		return Housekeeper{}, fmt.Errorf("housekeeper repository not configured")
	}

	stored, err := s.housekeepers.GetHousekeeper(ctx, housekeeperID)
	if err != nil {
		return Housekeeper{}, mapRepoError(err)
	}
	return toApplicationHousekeeper(stored)
}

// ListHousekeepers returns all housekeepers in stored order.
func (s *HousekeeperService) ListHousekeepers(ctx context.Context) ([]Housekeeper, error) {
	if s == nil || s.housekeepers == nil {
		return nil, fmt.Errorf("housekeeper repository not configured")
	}

	stored, err := s.housekeepers.ListHousekeepers(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	housekeepers := make([]Housekeeper, 0, len(stored))
	for _, record := range stored {
		housekeeper, err := toApplicationHousekeeper(record)
		if err != nil {
			return nil, err
		}
		housekeepers = append(housekeepers, housekeeper)
	}
	return housekeepers, nil
}

// DeleteHousekeeper removes a housekeeper. Only administrators may delete.
func (s *HousekeeperService) DeleteHousekeeper(ctx context.Context, principal Principal, housekeeperID string) error {
	if s == nil || s.housekeepers == nil {
		return fmt.Errorf("housekeeper repository not configured")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}

	if err := s.housekeepers.DeleteHousekeeper(ctx, housekeeperID); err != nil {
		return mapRepoError(err)
	}

	s.loggerWith(ctx, "DeleteHousekeeper", "housekeeper_id", housekeeperID).InfoContext(ctx, "housekeeper deleted")
	return nil
}

// AddBooking parses the booking text and appends it to the housekeeper's
// list. A date-and-slot already present in the list is rejected with an
// error naming the housekeeper.
func (s *HousekeeperService) AddBooking(ctx context.Context, housekeeperID, bookingText string) (Housekeeper, schedule.Booking, error) {
	var added schedule.Booking
	updated, err := s.replaceHousekeeper(ctx, housekeeperID, func(existing Housekeeper) (Housekeeper, error) {
		bookings, booking, err := existing.Bookings.Add(bookingText)
		if err != nil {
			if errors.Is(err, schedule.ErrDuplicateBooking) {
				return Housekeeper{}, fmt.Errorf("%s is already booked for %s: %w", existing.Name, bookingText, schedule.ErrDuplicateBooking)
			}
			vErr := &ValidationError{}
			vErr.add("booking", err.Error())
			return Housekeeper{}, vErr
		}
		added = booking
		next := existing
		next.Bookings = bookings
		return next, nil
	})
	if err != nil {
		return Housekeeper{}, schedule.Booking{}, err
	}

	s.loggerWith(ctx, "AddBooking", "housekeeper_id", housekeeperID, "booking", added.Format()).InfoContext(ctx, "booking added")
	return updated, added, nil
}

// DeleteBooking removes the booking at the given one-based position in the
// housekeeper's stored list.
func (s *HousekeeperService) DeleteBooking(ctx context.Context, housekeeperID string, position int) (Housekeeper, schedule.Booking, error) {
	var removed schedule.Booking
	updated, err := s.replaceHousekeeper(ctx, housekeeperID, func(existing Housekeeper) (Housekeeper, error) {
		bookings, booking, err := existing.Bookings.DeleteAt(position)
		if err != nil {
			vErr := &ValidationError{}
			vErr.add("position", fmt.Sprintf("position %d is out of range", position))
			return Housekeeper{}, vErr
		}
		removed = booking
		next := existing
		next.Bookings = bookings
		return next, nil
	})
	if err != nil {
		return Housekeeper{}, schedule.Booking{}, err
	}

	s.loggerWith(ctx, "DeleteBooking", "housekeeper_id", housekeeperID, "booking", removed.Format()).InfoContext(ctx, "booking deleted")
	return updated, removed, nil
}

// ListBookings returns the housekeeper's bookings in chronological order.
// The stored list keeps its insertion order; sorting happens on read only.
func (s *HousekeeperService) ListBookings(ctx context.Context, housekeeperID string) ([]schedule.Booking, error) {
	housekeeper, err := s.GetHousekeeper(ctx, housekeeperID)
	if err != nil {
		return nil, err
	}
	return housekeeper.Bookings.Sorted(), nil
}

// replaceHousekeeper implements the read-copy-compute-replace round shared
// by every housekeeper mutation.
func (s *HousekeeperService) replaceHousekeeper(ctx context.Context, housekeeperID string, derive func(Housekeeper) (Housekeeper, error)) (Housekeeper, error) {
	if s == nil || s.housekeepers == nil {
		return Housekeeper{}, fmt.Errorf("housekeeper repository not configured")
	}

	stored, err := s.housekeepers.GetHousekeeper(ctx, housekeeperID)
	if err != nil {
		return Housekeeper{}, mapRepoError(err)
	}

	existing, err := toApplicationHousekeeper(stored)
	if err != nil {
		return Housekeeper{}, err
	}

	updated, err := derive(existing)
	if err != nil {
		return Housekeeper{}, err
	}
	updated.UpdatedAt = s.now()

	if err := s.housekeepers.ReplaceHousekeeper(ctx, toPersistenceHousekeeper(updated)); err != nil {
		return Housekeeper{}, mapRepoError(err)
	}
	return updated, nil
}

func toPersistenceHousekeeper(housekeeper Housekeeper) persistence.Housekeeper {
	entries := housekeeper.Bookings.Entries()
	texts := make([]string, 0, len(entries))
	for _, booking := range entries {
		texts = append(texts, booking.Format())
	}
	return persistence.Housekeeper{
		ID:        housekeeper.ID,
		Name:      housekeeper.Name,
		Phone:     housekeeper.Phone,
		Email:     housekeeper.Email,
		Area:      housekeeper.Area,
		Bookings:  texts,
		CreatedAt: housekeeper.CreatedAt,
		UpdatedAt: housekeeper.UpdatedAt,
	}
}

func toApplicationHousekeeper(record persistence.Housekeeper) (Housekeeper, error) {
	bookings := make([]schedule.Booking, 0, len(record.Bookings))
	for _, text := range record.Bookings {
		booking, err := schedule.ParseBooking(text)
		if err != nil {
			// Corrupt storage is surfaced, never silently repaired.
			return Housekeeper{}, fmt.Errorf("housekeeper %s: stored booking %q: %w", record.ID, text, err)
		}
		bookings = append(bookings, booking)
	}

	list, err := schedule.NewBookingList(bookings...)
	if err != nil {
		return Housekeeper{}, fmt.Errorf("housekeeper %s: %w", record.ID, err)
	}

	return Housekeeper{
		ID:        record.ID,
		Name:      record.Name,
		Phone:     record.Phone,
		Email:     record.Email,
		Area:      record.Area,
		Bookings:  list,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func normalizeHousekeeperInput(input HousekeeperInput) HousekeeperInput {
	return HousekeeperInput{
		Name:  strings.TrimSpace(input.Name),
		Phone: strings.TrimSpace(input.Phone),
		Email: strings.TrimSpace(input.Email),
		Area:  strings.TrimSpace(input.Area),
	}
}
