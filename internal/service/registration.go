package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evlist/event-signup/internal/model"
	"github.com/evlist/event-signup/internal/repository"
)

// RegistrationService orchestrates event signups.
type RegistrationService struct {
	events        EventStore
	registrations RegistrationStore
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(events EventStore, registrations RegistrationStore) *RegistrationService {
	return &RegistrationService{events: events, registrations: registrations}
}

// Register validates the signup and delegates the transactional insert and
// counter update to the store. On success it returns the updated
// registeredCount for the event.
func (s *RegistrationService) Register(ctx context.Context, eventID string, req model.RegisterRequest) (int, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Department = strings.TrimSpace(req.Department)
	if req.Name == "" || req.Department == "" {
		return 0, fmt.Errorf("%w: name and department are required", ErrValidation)
	}
	if eventID == "" {
		return 0, fmt.Errorf("%w: event id is required", ErrValidation)
	}

	count, err := s.registrations.Register(ctx, eventID, req.Name, req.Department)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, repository.ErrAlreadyRegistered) {
			return 0, err
		}
		return 0, fmt.Errorf("register for event: %w", err)
	}
	return count, nil
}

// ListRegistrations returns all registrations for an event, most recent
// first.
func (s *RegistrationService) ListRegistrations(ctx context.Context, eventID string) ([]model.Registration, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("check event: %w", err)
	}
	return s.registrations.ListByEvent(ctx, eventID)
}
