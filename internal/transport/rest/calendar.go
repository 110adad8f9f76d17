package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/calendar"
	"github.com/foyerapp/foyer-backend/pkg/ctxutil"
)

// calendarService defines the minimal interface needed by CalendarHandler.
type calendarService interface {
	CreateEvent(ctx context.Context, foyerID, userID uuid.UUID, input calendar.CreateEventInput) (*domain.CalendarEvent, error)
	ListEvents(ctx context.Context, foyerID uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error)
	GetEvent(ctx context.Context, foyerID, id uuid.UUID) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, foyerID, id uuid.UUID, input calendar.UpdateEventInput) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, foyerID, id uuid.UUID) error
	CreatePlanning(ctx context.Context, foyerID, userID uuid.UUID, input calendar.PlanningInput) ([]domain.CalendarEvent, error)
}

// CalendarHandler serves calendar REST endpoints.
type CalendarHandler struct {
	svc calendarService
	log *slog.Logger
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{svc: svc, log: logger.With("handler", "calendar")}
}

type createEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Recurrence  string  `json:"recurrence"`
}

type updateEventRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	Recurrence    *string `json:"recurrence"`
	CompletedByID *string `json:"completedById"`
}

type planningRequest struct {
	Title      string                      `json:"title"`
	Recurrence string                      `json:"recurrence"`
	Schedule   map[string]planningDayTimes `json:"schedule"`
	Month      int                         `json:"month"`
	Year       int                         `json:"year"`
}

type planningDayTimes struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Create handles POST /api/calendar.
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := parseTimestamp(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := parseTimestamp(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	recurrence := domain.RecurrenceNone
	if req.Recurrence != "" {
		recurrence = domain.Recurrence(req.Recurrence)
	}

	event, err := h.svc.CreateEvent(r.Context(), foyerID, userID, calendar.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartAt:     start,
		EndAt:       end,
		Recurrence:  recurrence,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Event created",
		"event":   toEventResponse(event),
	})
}

// List handles GET /api/calendar?from=...&to=...
// Recurring templates come back expanded into concrete occurrences.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	from, err := parseOptionalTimestamp(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}
	to, err := parseOptionalTimestamp(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}

	events, err := h.svc.ListEvents(r.Context(), foyerID, from, to)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"events":  toEventResponses(events),
	})
}

// Get handles GET /api/calendar/{eventID}.
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.svc.GetEvent(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"event":   toEventResponse(event),
	})
}

// Update handles PATCH /api/calendar/{eventID}.
func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := calendar.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.StartDate != nil {
		start, err := parseTimestamp(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid startDate")
			return
		}
		input.StartAt = &start
	}
	if req.EndDate != nil {
		end, err := parseTimestamp(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid endDate")
			return
		}
		input.EndAt = &end
	}
	if req.Recurrence != nil {
		rec := domain.Recurrence(*req.Recurrence)
		input.Recurrence = &rec
	}
	if req.CompletedByID != nil {
		completedBy, err := uuid.Parse(*req.CompletedByID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid completedById")
			return
		}
		input.CompletedByID = &completedBy
	}

	event, err := h.svc.UpdateEvent(r.Context(), foyerID, id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Event updated",
		"event":   toEventResponse(event),
	})
}

// Delete handles DELETE /api/calendar/{eventID}.
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), foyerID, id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

// Planning handles POST /api/calendar/planning.
func (h *CalendarHandler) Planning(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req planningRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule := make(map[string]calendar.DayTimes, len(req.Schedule))
	for day, times := range req.Schedule {
		schedule[day] = calendar.DayTimes{Start: times.Start, End: times.End}
	}

	events, err := h.svc.CreatePlanning(r.Context(), foyerID, userID, calendar.PlanningInput{
		Title:    req.Title,
		Mode:     req.Recurrence,
		Schedule: schedule,
		Month:    req.Month,
		Year:     req.Year,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Planning created",
		"events":  toEventResponses(events),
	})
}

// scopeFromCtx pulls the authenticated user and active foyer out of the
// request context, writing the error response itself when either is gone.
func scopeFromCtx(w http.ResponseWriter, r *http.Request) (foyerID, userID uuid.UUID, ok bool) {
	userID, okUser := ctxutil.UserIDFromCtx(r.Context())
	if !okUser {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	foyerID, okFoyer := ctxutil.FoyerIDFromCtx(r.Context())
	if !okFoyer {
		writeError(w, http.StatusForbidden, "no foyer membership")
		return uuid.Nil, uuid.Nil, false
	}
	return foyerID, userID, true
}

// parseTimestamp accepts RFC 3339 or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseOptionalTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
