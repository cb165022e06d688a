// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/evlist/event-signup/internal/model"
	"github.com/evlist/event-signup/internal/repository"
	"github.com/evlist/event-signup/internal/service"
)

// EventServicer is the event service surface the handlers call.
type EventServicer interface {
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, upd model.EventUpdate) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// RegistrationServicer is the registration service surface.
type RegistrationServicer interface {
	Register(ctx context.Context, eventID string, req model.RegisterRequest) (int, error)
	ListRegistrations(ctx context.Context, eventID string) ([]model.Registration, error)
}

// SurveyServicer is the survey service surface.
type SurveyServicer interface {
	Submit(ctx context.Context, eventID, userID string, answers []int) error
	Stats(ctx context.Context, eventID string) ([]model.SurveyQuestionStats, error)
}

// EventHandler holds all HTTP handlers for the event signup API.
type EventHandler struct {
	events        EventServicer
	registrations RegistrationServicer
	surveys       SurveyServicer
	log           *zap.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events EventServicer, registrations RegistrationServicer, surveys SurveyServicer, log *zap.Logger) *EventHandler {
	return &EventHandler{
		events:        events,
		registrations: registrations,
		surveys:       surveys,
		log:           log,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	return json.NewDecoder(r.Body).Decode(dst)
}

// ─── Events ───────────────────────────────────────────────────────────────────

// CreateEvent handles POST /api/events.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("create event", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /api/events.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		h.log.Error("list events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error("get event", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /api/events/{id}. The body is a partial update;
// absent fields keep their current values.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd model.EventUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.UpdateEvent(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("update event", zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update event")
		}
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/{id}. The event's registrations
// and survey responses go with it.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.events.DeleteEvent(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("delete event", zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete event")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─── Registrations ────────────────────────────────────────────────────────────

// Register handles POST /api/events/{id}/register.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	count, err := h.registrations.Register(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyRegistered):
			writeJSON(w, http.StatusBadRequest, model.RegisterResponse{
				Success: false,
				Message: "您已经报名过该活动",
			})
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("register", zap.String("event_id", id), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, model.RegisterResponse{
				Success: false,
				Message: "报名失败，请稍后重试",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, model.RegisterResponse{
		Success:         true,
		RegisteredCount: count,
	})
}

// ListRegistrations handles GET /api/events/{id}/registrations.
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	regs, err := h.registrations.ListRegistrations(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error("list registrations", zap.String("event_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}

	if regs == nil {
		regs = []model.Registration{}
	}

	writeJSON(w, http.StatusOK, regs)
}

// ─── Surveys ──────────────────────────────────────────────────────────────────

// SubmitSurvey handles POST /api/events/{id}/survey.
func (h *EventHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.SubmitSurveyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.surveys.Submit(r.Context(), id, req.UserID, req.Answers); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("submit survey", zap.String("event_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to submit survey")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SurveyStats handles GET /api/events/{id}/survey-stats.
func (h *EventHandler) SurveyStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stats, err := h.surveys.Stats(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error("survey stats", zap.String("event_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute survey stats")
		return
	}

	if stats == nil {
		stats = []model.SurveyQuestionStats{}
	}

	writeJSON(w, http.StatusOK, model.SurveyStatsResponse{Stats: stats})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
