package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/household-roster/internal/application"
	"github.com/example/household-roster/internal/schedule"
)

type leadService interface {
	ListLeads(ctx context.Context, today schedule.Date) ([]application.Lead, error)
	Today() schedule.Date
}

type LeadHandler struct {
	service   leadService
	responder responder
	logger    *slog.Logger
}

func NewLeadHandler(service leadService, logger *slog.Logger) *LeadHandler {
	base := defaultLogger(logger)
	return &LeadHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *LeadHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "LeadHandler", operation, attrs...)
}

// List returns the overdue-client call list for today, or for an explicit
// reference day passed as ?date=YYYY-MM-DD.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	today := h.service.Today()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := schedule.ParseDate(raw)
		if err != nil {
			h.log(r.Context(), "List", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid reference date", "date", raw)
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
		today = parsed
	}

	logger := h.log(r.Context(), "List", "today", today.String())
	leads, err := h.service.ListLeads(r.Context(), today)
	if err != nil {
		logger.ErrorContext(r.Context(), "lead list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(leads)).InfoContext(r.Context(), "leads listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listLeadsResponse{
		Date:  today.String(),
		Leads: toLeadDTOs(leads),
	})
}

type listLeadsResponse struct {
	Date  string    `json:"date"`
	Leads []leadDTO `json:"leads"`
}

type leadDTO struct {
	Client  clientDTO `json:"client"`
	DueDate string    `json:"due_date"`
}

func toLeadDTOs(leads []application.Lead) []leadDTO {
	if len(leads) == 0 {
		return nil
	}
	out := make([]leadDTO, 0, len(leads))
	for _, lead := range leads {
		out = append(out, leadDTO{
			Client:  toClientDTO(lead.Client),
			DueDate: lead.DueDate.String(),
		})
	}
	return out
}
