package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/household-roster/internal/application"
	"github.com/example/household-roster/internal/schedule"
)

type housekeeperService interface {
	CreateHousekeeper(ctx context.Context, input application.HousekeeperInput) (application.Housekeeper, error)
	UpdateHousekeeper(ctx context.Context, housekeeperID string, input application.HousekeeperInput) (application.Housekeeper, error)
	GetHousekeeper(ctx context.Context, housekeeperID string) (application.Housekeeper, error)
	ListHousekeepers(ctx context.Context) ([]application.Housekeeper, error)
	DeleteHousekeeper(ctx context.Context, principal application.Principal, housekeeperID string) error
	AddBooking(ctx context.Context, housekeeperID, bookingText string) (application.Housekeeper, schedule.Booking, error)
	DeleteBooking(ctx context.Context, housekeeperID string, position int) (application.Housekeeper, schedule.Booking, error)
	ListBookings(ctx context.Context, housekeeperID string) ([]schedule.Booking, error)
}

type HousekeeperHandler struct {
	service   housekeeperService
	responder responder
	logger    *slog.Logger
}

func NewHousekeeperHandler(service housekeeperService, logger *slog.Logger) *HousekeeperHandler {
	base := defaultLogger(logger)
	return &HousekeeperHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *HousekeeperHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "HousekeeperHandler", operation, attrs...)
}

func (h *HousekeeperHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req housekeeperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode housekeeper request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	housekeeper, err := h.service.CreateHousekeeper(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "housekeeper creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("housekeeper_id", housekeeper.ID).InfoContext(r.Context(), "housekeeper created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, housekeeperResponse{Housekeeper: toHousekeeperDTO(housekeeper)})
}

func (h *HousekeeperHandler) Update(w http.ResponseWriter, r *http.Request) {
	housekeeperID, ok := h.housekeeperID(w, r, "Update")
	if !ok {
		return
	}

	var req housekeeperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "housekeeper_id", housekeeperID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode housekeeper update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "housekeeper_id", housekeeperID)
	housekeeper, err := h.service.UpdateHousekeeper(r.Context(), housekeeperID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "housekeeper update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "housekeeper updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, housekeeperResponse{Housekeeper: toHousekeeperDTO(housekeeper)})
}

func (h *HousekeeperHandler) Get(w http.ResponseWriter, r *http.Request) {
	housekeeperID, ok := h.housekeeperID(w, r, "Get")
	if !ok {
		return
	}

	housekeeper, err := h.service.GetHousekeeper(r.Context(), housekeeperID)
	if err != nil {
		h.log(r.Context(), "Get", "housekeeper_id", housekeeperID).ErrorContext(r.Context(), "housekeeper fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, housekeeperResponse{Housekeeper: toHousekeeperDTO(housekeeper)})
}

func (h *HousekeeperHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	housekeepers, err := h.service.ListHousekeepers(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "housekeeper list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(housekeepers)).InfoContext(r.Context(), "housekeepers listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHousekeepersResponse{Housekeepers: toHousekeeperDTOs(housekeepers)})
}

func (h *HousekeeperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	housekeeperID, ok := h.housekeeperID(w, r, "Delete")
	if !ok {
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.AccountID, "housekeeper_id", housekeeperID)
	if err := h.service.DeleteHousekeeper(r.Context(), principal, housekeeperID); err != nil {
		logger.ErrorContext(r.Context(), "housekeeper delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "housekeeper deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// ListBookings returns the housekeeper's schedule sorted chronologically.
func (h *HousekeeperHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	housekeeperID, ok := h.housekeeperID(w, r, "ListBookings")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "ListBookings", "housekeeper_id", housekeeperID)
	bookings, err := h.service.ListBookings(r.Context(), housekeeperID)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: toBookingTexts(bookings)})
}

// AddBooking appends a booking to the housekeeper's stored list.
func (h *HousekeeperHandler) AddBooking(w http.ResponseWriter, r *http.Request) {
	housekeeperID, ok := h.housekeeperID(w, r, "AddBooking")
	if !ok {
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddBooking", "housekeeper_id", housekeeperID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddBooking", "housekeeper_id", housekeeperID, "booking", req.Booking)
	housekeeper, added, err := h.service.AddBooking(r.Context(), housekeeperID, strings.TrimSpace(req.Booking))
	if err != nil {
		logger.ErrorContext(r.Context(), "booking add failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking added")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingMutationResponse{
		Booking:     added.Format(),
		Housekeeper: toHousekeeperDTO(housekeeper),
	})
}

// DeleteBooking removes the booking at the given one-based stored position.
func (h *HousekeeperHandler) DeleteBooking(w http.ResponseWriter, r *http.Request, rawPosition string) {
	housekeeperID, ok := h.housekeeperID(w, r, "DeleteBooking")
	if !ok {
		return
	}

	position, err := strconv.Atoi(strings.TrimSpace(rawPosition))
	if err != nil || position < 1 {
		h.log(r.Context(), "DeleteBooking", "housekeeper_id", housekeeperID, "error_kind", "bad_request").ErrorContext(r.Context(), "invalid booking position", "position", rawPosition)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPositionFormat)
		return
	}

	logger := h.log(r.Context(), "DeleteBooking", "housekeeper_id", housekeeperID, "position", position)
	housekeeper, removed, err := h.service.DeleteBooking(r.Context(), housekeeperID, position)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingMutationResponse{
		Booking:     removed.Format(),
		Housekeeper: toHousekeeperDTO(housekeeper),
	})
}

func (h *HousekeeperHandler) housekeeperID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return "", false
	}
	housekeeperID, ok := HousekeeperIDFromContext(r.Context())
	if !ok || strings.TrimSpace(housekeeperID) == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing housekeeper id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidHousekeeperID)
		return "", false
	}
	return housekeeperID, true
}

type housekeeperRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Area  string `json:"area"`
}

func (r housekeeperRequest) toInput() application.HousekeeperInput {
	return application.HousekeeperInput{
		Name:  strings.TrimSpace(r.Name),
		Phone: strings.TrimSpace(r.Phone),
		Email: strings.TrimSpace(r.Email),
		Area:  strings.TrimSpace(r.Area),
	}
}

type bookingRequest struct {
	Booking string `json:"booking"`
}

type housekeeperResponse struct {
	Housekeeper housekeeperDTO `json:"housekeeper"`
}

type listHousekeepersResponse struct {
	Housekeepers []housekeeperDTO `json:"housekeepers"`
}

type listBookingsResponse struct {
	Bookings []string `json:"bookings"`
}

type bookingMutationResponse struct {
	Booking     string         `json:"booking"`
	Housekeeper housekeeperDTO `json:"housekeeper"`
}

type housekeeperDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Area      string   `json:"area,omitempty"`
	Bookings  []string `json:"bookings"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func toHousekeeperDTO(housekeeper application.Housekeeper) housekeeperDTO {
	texts := make([]string, 0, housekeeper.Bookings.Len())
	for _, booking := range housekeeper.Bookings.Entries() {
		texts = append(texts, booking.Format())
	}
	return housekeeperDTO{
		ID:        housekeeper.ID,
		Name:      housekeeper.Name,
		Phone:     housekeeper.Phone,
		Email:     housekeeper.Email,
		Area:      housekeeper.Area,
		Bookings:  texts,
		CreatedAt: housekeeper.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: housekeeper.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toHousekeeperDTOs(housekeepers []application.Housekeeper) []housekeeperDTO {
	if len(housekeepers) == 0 {
		return nil
	}
	out := make([]housekeeperDTO, 0, len(housekeepers))
	for _, housekeeper := range housekeepers {
		out = append(out, toHousekeeperDTO(housekeeper))
	}
	return out
}

func toBookingTexts(bookings []schedule.Booking) []string {
	if len(bookings) == 0 {
		return nil
	}
	out := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, booking.Format())
	}
	return out
}
