package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/evlist/event-signup/internal/model"
	"github.com/evlist/event-signup/internal/repository"
)

func validCreateRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Title:          "Go Workshop",
		StartTime:      "2026-09-15T09:00:00Z",
		Location:       "Building A",
		SignupDeadline: "2026-09-14T18:00:00Z",
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	req := validCreateRequest()
	events.On("Create", mock.Anything, mock.AnythingOfType("model.CreateEventRequest")).
		Return(&model.Event{ID: "1700000000000", Title: req.Title}, nil)

	event, err := svc.CreateEvent(context.Background(), req)

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	events.AssertExpectations(t)
}

func TestEventService_CreateEvent_MissingFields(t *testing.T) {
	mutations := map[string]func(*model.CreateEventRequest){
		"no title":    func(r *model.CreateEventRequest) { r.Title = " " },
		"no start":    func(r *model.CreateEventRequest) { r.StartTime = "" },
		"no location": func(r *model.CreateEventRequest) { r.Location = "" },
		"no deadline": func(r *model.CreateEventRequest) { r.SignupDeadline = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			events := new(MockEventStore)
			svc := NewEventService(events)

			req := validCreateRequest()
			mutate(&req)

			_, err := svc.CreateEvent(context.Background(), req)

			assert.ErrorIs(t, err, ErrValidation)
			events.AssertNotCalled(t, "Create")
		})
	}
}

func TestEventService_CreateEvent_BadSurveyQuestion(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	req := validCreateRequest()
	req.SurveyQuestions = []model.SurveyQuestion{
		{ID: 1, Question: "Only one option?", Options: []string{"yes"}},
	}

	_, err := svc.CreateEvent(context.Background(), req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestEventService_UpdateEvent_RejectsEmptyUpdate(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	_, err := svc.UpdateEvent(context.Background(), "42", model.EventUpdate{})

	assert.ErrorIs(t, err, ErrValidation)
	events.AssertNotCalled(t, "Update")
}

func TestEventService_UpdateEvent_RejectsEmptyTitle(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	empty := "  "
	_, err := svc.UpdateEvent(context.Background(), "42", model.EventUpdate{Title: &empty})

	assert.ErrorIs(t, err, ErrValidation)
	events.AssertNotCalled(t, "Update")
}

func TestEventService_UpdateEvent_MetadataOnly(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	difficulty := "advanced"
	upd := model.EventUpdate{Difficulty: &difficulty}
	events.On("Update", mock.Anything, "42", upd).
		Return(&model.Event{ID: "42", Difficulty: "advanced"}, nil)

	event, err := svc.UpdateEvent(context.Background(), "42", upd)

	require.NoError(t, err)
	assert.Equal(t, "advanced", event.Difficulty)
	events.AssertExpectations(t)
}

func TestEventService_UpdateEvent_NotFound(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	title := "New title"
	events.On("Update", mock.Anything, "nope", mock.AnythingOfType("model.EventUpdate")).
		Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateEvent(context.Background(), "nope", model.EventUpdate{Title: &title})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventService_DeleteEvent_NotFound(t *testing.T) {
	events := new(MockEventStore)
	svc := NewEventService(events)

	events.On("Delete", mock.Anything, "nope").Return(repository.ErrNotFound)

	err := svc.DeleteEvent(context.Background(), "nope")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
