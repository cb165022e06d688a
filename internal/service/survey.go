package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/evlist/event-signup/internal/model"
	"github.com/evlist/event-signup/internal/repository"
)

// SurveyService records survey responses and derives per-question answer
// distributions.
type SurveyService struct {
	events  EventStore
	surveys SurveyStore
}

// NewSurveyService constructs a SurveyService.
func NewSurveyService(events EventStore, surveys SurveyStore) *SurveyService {
	return &SurveyService{events: events, surveys: surveys}
}

// Submit stores one user's answer vector for an event. A second submission
// by the same user replaces the first. When the event defines survey
// questions, the vector must have one in-range option index per question;
// questionless events accept any vector, including an empty one.
func (s *SurveyService) Submit(ctx context.Context, eventID, userID string, answers []int) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("check event: %w", err)
	}

	if qs := event.SurveyQuestions; len(qs) > 0 {
		if len(answers) != len(qs) {
			return fmt.Errorf("%w: expected %d answers, got %d", ErrValidation, len(qs), len(answers))
		}
		for i, a := range answers {
			if a < 0 || a >= len(qs[i].Options) {
				return fmt.Errorf("%w: answer %d is out of range for question %d", ErrValidation, a, i)
			}
		}
	}

	// The answers column is NOT NULL; store an empty vector, not null.
	if answers == nil {
		answers = []int{}
	}
	return s.surveys.Upsert(ctx, eventID, userID, answers)
}

// Stats loads all responses for an event and returns the percentage
// distribution of answers for every question.
func (s *SurveyService) Stats(ctx context.Context, eventID string) ([]model.SurveyQuestionStats, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("check event: %w", err)
	}

	responses, err := s.surveys.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load survey responses: %w", err)
	}

	return computeStats(event.SurveyQuestions, responses), nil
}

// computeStats tallies answer vectors into per-question percentage
// distributions. The option count for each question comes from the event's
// question list; when the event defines no questions (legacy rows), both
// the question count and the option counts are inferred from the responses
// themselves.
//
// A response only enters the denominator of questions it actually answered,
// so short vectors degrade individual questions instead of the whole
// result. Stored out-of-range indices count toward the denominator but are
// not tallied. Percentages are rounded independently per option and may not
// sum to exactly 100.
func computeStats(questions []model.SurveyQuestion, responses []model.SurveyResponse) []model.SurveyQuestionStats {
	optionCounts := make([]int, len(questions))
	for i, q := range questions {
		optionCounts[i] = len(q.Options)
	}
	if len(questions) == 0 {
		for _, resp := range responses {
			if len(resp.Answers) > len(optionCounts) {
				grown := make([]int, len(resp.Answers))
				copy(grown, optionCounts)
				optionCounts = grown
			}
			for i, a := range resp.Answers {
				if a >= optionCounts[i] {
					optionCounts[i] = a + 1
				}
			}
		}
	}

	stats := make([]model.SurveyQuestionStats, len(optionCounts))
	for i, numOptions := range optionCounts {
		tally := make([]int, numOptions)
		total := 0
		for _, resp := range responses {
			if len(resp.Answers) <= i {
				continue
			}
			total++
			if a := resp.Answers[i]; a >= 0 && a < numOptions {
				tally[a]++
			}
		}

		percents := make([]int, numOptions)
		if total > 0 {
			for j, n := range tally {
				percents[j] = int(math.Round(100 * float64(n) / float64(total)))
			}
		}
		stats[i] = model.SurveyQuestionStats{
			QuestionIndex:  i,
			TotalResponses: total,
			Stats:          percents,
		}
	}
	return stats
}
