package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/evlist/event-signup/internal/model"
)

// MockEventStore is a mock implementation of EventStore.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventStore) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventStore) Update(ctx context.Context, id string, upd model.EventUpdate) (*model.Event, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRegistrationStore is a mock implementation of RegistrationStore.
type MockRegistrationStore struct {
	mock.Mock
}

func (m *MockRegistrationStore) Register(ctx context.Context, eventID, name, department string) (int, error) {
	args := m.Called(ctx, eventID, name, department)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationStore) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Registration), args.Error(1)
}

// MockSurveyStore is a mock implementation of SurveyStore.
type MockSurveyStore struct {
	mock.Mock
}

func (m *MockSurveyStore) Upsert(ctx context.Context, eventID, userID string, answers []int) error {
	args := m.Called(ctx, eventID, userID, answers)
	return args.Error(0)
}

func (m *MockSurveyStore) ListByEvent(ctx context.Context, eventID string) ([]model.SurveyResponse, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveyResponse), args.Error(1)
}
