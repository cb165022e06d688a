// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evlist/event-signup/internal/model"
	"github.com/evlist/event-signup/internal/repository"
)

// ErrValidation marks a request rejected before any storage call. Handlers
// map it to a 400.
var ErrValidation = errors.New("invalid request")

// EventService orchestrates event CRUD.
type EventService struct {
	events EventStore
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// CreateEvent validates the request and delegates to the store.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" || req.StartTime == "" || req.Location == "" || req.SignupDeadline == "" {
		return nil, fmt.Errorf("%w: title, startTime, location and signupDeadline are required", ErrValidation)
	}
	for _, q := range req.SurveyQuestions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: survey questions need text and at least two options", ErrValidation)
		}
	}
	return s.events.Create(ctx, req)
}

// ListEvents returns all events, newest first.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrValidation)
	}
	return s.events.GetByID(ctx, id)
}

// UpdateEvent applies a partial update. Fields not present in the update are
// left unchanged; unknown fields were already dropped at decode time.
func (s *EventService) UpdateEvent(ctx context.Context, id string, upd model.EventUpdate) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrValidation)
	}
	if upd == (model.EventUpdate{}) {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	event, err := s.events.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes an event and everything attached to it.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: event id is required", ErrValidation)
	}
	return s.events.Delete(ctx, id)
}
