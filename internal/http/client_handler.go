package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/household-roster/internal/application"
)

type clientService interface {
	CreateClient(ctx context.Context, input application.ClientInput) (application.Client, error)
	UpdateClient(ctx context.Context, clientID string, input application.ClientInput) (application.Client, error)
	GetClient(ctx context.Context, clientID string) (application.Client, error)
	ListClients(ctx context.Context) ([]application.Client, error)
	DeleteClient(ctx context.Context, principal application.Principal, clientID string) error
	SetHousekeepingDetails(ctx context.Context, clientID, userText string) (application.Client, error)
	ClearHousekeepingDetails(ctx context.Context, clientID string) (application.Client, error)
	DeferHousekeeping(ctx context.Context, clientID string, count int, unit string) (application.Client, error)
	SetClientBooking(ctx context.Context, clientID, bookingText string) (application.Client, error)
	ClearClientBooking(ctx context.Context, clientID string) (application.Client, error)
}

type ClientHandler struct {
	service   clientService
	responder responder
	logger    *slog.Logger
}

func NewClientHandler(service clientService, logger *slog.Logger) *ClientHandler {
	base := defaultLogger(logger)
	return &ClientHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ClientHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ClientHandler", operation, attrs...)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode client request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	client, err := h.service.CreateClient(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "client creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("client_id", client.ID).InfoContext(r.Context(), "client created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "Update")
	if !ok {
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "client_id", clientID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode client update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "client_id", clientID)
	client, err := h.service.UpdateClient(r.Context(), clientID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "client update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "client updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "Get")
	if !ok {
		return
	}

	client, err := h.service.GetClient(r.Context(), clientID)
	if err != nil {
		h.log(r.Context(), "Get", "client_id", clientID).ErrorContext(r.Context(), "client fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "client list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(clients)).InfoContext(r.Context(), "clients listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listClientsResponse{Clients: toClientDTOs(clients)})
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "Delete")
	if !ok {
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.AccountID, "client_id", clientID)
	if err := h.service.DeleteClient(r.Context(), principal, clientID); err != nil {
		logger.ErrorContext(r.Context(), "client delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "client deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ClientHandler) SetHousekeeping(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "SetHousekeeping")
	if !ok {
		return
	}

	var req housekeepingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetHousekeeping", "client_id", clientID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode housekeeping entry", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetHousekeeping", "client_id", clientID)
	client, err := h.service.SetHousekeepingDetails(r.Context(), clientID, strings.TrimSpace(req.Entry))
	if err != nil {
		logger.ErrorContext(r.Context(), "housekeeping update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "housekeeping details set")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) ClearHousekeeping(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "ClearHousekeeping")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "ClearHousekeeping", "client_id", clientID)
	client, err := h.service.ClearHousekeepingDetails(r.Context(), clientID)
	if err != nil {
		logger.ErrorContext(r.Context(), "housekeeping clear failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "housekeeping details cleared")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) Defer(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "Defer")
	if !ok {
		return
	}

	var req defermentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Defer", "client_id", clientID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode deferment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Defer", "client_id", clientID, "count", req.Count, "unit", req.Unit)
	client, err := h.service.DeferHousekeeping(r.Context(), clientID, req.Count, strings.TrimSpace(req.Unit))
	if err != nil {
		logger.ErrorContext(r.Context(), "housekeeping deferment failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "housekeeping deferred")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) SetBooking(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "SetBooking")
	if !ok {
		return
	}

	var req clientBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetBooking", "client_id", clientID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetBooking", "client_id", clientID, "booking", req.Booking)
	client, err := h.service.SetClientBooking(r.Context(), clientID, strings.TrimSpace(req.Booking))
	if err != nil {
		logger.ErrorContext(r.Context(), "client booking failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "client booking set")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) ClearBooking(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "ClearBooking")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "ClearBooking", "client_id", clientID)
	client, err := h.service.ClearClientBooking(r.Context(), clientID)
	if err != nil {
		logger.ErrorContext(r.Context(), "client booking clear failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "client booking cleared")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientResponse{Client: toClientDTO(client)})
}

func (h *ClientHandler) clientID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return "", false
	}
	clientID, ok := ClientIDFromContext(r.Context())
	if !ok || strings.TrimSpace(clientID) == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing client id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidClientID)
		return "", false
	}
	return clientID, true
}

type clientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (r clientRequest) toInput() application.ClientInput {
	return application.ClientInput{
		Name:    strings.TrimSpace(r.Name),
		Phone:   strings.TrimSpace(r.Phone),
		Email:   strings.TrimSpace(r.Email),
		Address: strings.TrimSpace(r.Address),
	}
}

type housekeepingRequest struct {
	Entry string `json:"entry"`
}

type defermentRequest struct {
	Count int    `json:"count"`
	Unit  string `json:"unit"`
}

type clientBookingRequest struct {
	Booking string `json:"booking"`
}

type clientResponse struct {
	Client clientDTO `json:"client"`
}

type listClientsResponse struct {
	Clients []clientDTO `json:"clients"`
}

type clientDTO struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Address      string           `json:"address,omitempty"`
	Housekeeping *housekeepingDTO `json:"housekeeping,omitempty"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

type housekeepingDTO struct {
	LastServiceDate string  `json:"last_service_date"`
	Interval        string  `json:"interval"`
	Deferment       string  `json:"deferment"`
	NextDueDate     string  `json:"next_due_date"`
	Booking         *string `json:"booking,omitempty"`
	Description     string  `json:"description"`
}

func toClientDTO(client application.Client) clientDTO {
	dto := clientDTO{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Email:     client.Email,
		Address:   client.Address,
		CreatedAt: client.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: client.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	details := client.Details
	if details.HasDetails() {
		hk := &housekeepingDTO{
			NextDueDate: details.NextDueDate().String(),
			Description: details.DescribeWithDeferment(),
		}
		if last, ok := details.LastServiceDate(); ok {
			hk.LastServiceDate = last.String()
		}
		if interval, ok := details.Interval(); ok {
			hk.Interval = interval.String()
		}
		if deferment, ok := details.Deferment(); ok {
			hk.Deferment = deferment.String()
		}
		if booking, ok := details.Booking(); ok {
			text := booking.Format()
			hk.Booking = &text
		}
		dto.Housekeeping = hk
	}

	return dto
}

func toClientDTOs(clients []application.Client) []clientDTO {
	if len(clients) == 0 {
		return nil
	}
	out := make([]clientDTO, 0, len(clients))
	for _, client := range clients {
		out = append(out, toClientDTO(client))
	}
	return out
}
