package service

import (
	"context"

	"github.com/evlist/event-signup/internal/model"
)

// EventStore is the persistence surface the services need for events.
// Implemented by repository.EventRepository.
type EventStore interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, id string, upd model.EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationStore is the persistence surface for registrations.
// Implemented by repository.RegistrationRepository.
type RegistrationStore interface {
	Register(ctx context.Context, eventID, name, department string) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
}

// SurveyStore is the persistence surface for survey responses.
// Implemented by repository.SurveyRepository.
type SurveyStore interface {
	Upsert(ctx context.Context, eventID, userID string, answers []int) error
	ListByEvent(ctx context.Context, eventID string) ([]model.SurveyResponse, error)
}
