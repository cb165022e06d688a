package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evlist/event-signup/internal/model"
)

// SurveyRepository handles persistence for survey responses.
type SurveyRepository struct {
	db *pgxpool.Pool
}

// NewSurveyRepository constructs a SurveyRepository.
func NewSurveyRepository(db *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// Upsert stores a response keyed by (event_id, user_id). A resubmission by
// the same user replaces the previous answers.
func (r *SurveyRepository) Upsert(ctx context.Context, eventID, userID string, answers []int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO survey_responses (event_id, user_id, answers, submitted_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (event_id, user_id)
		 DO UPDATE SET answers = EXCLUDED.answers, submitted_at = EXCLUDED.submitted_at`,
		eventID, userID, answers, time.Now().UTC(),
	)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return ErrNotFound
		}
		return fmt.Errorf("upsert survey response: %w", err)
	}
	return nil
}

// ListByEvent returns all stored responses for an event.
func (r *SurveyRepository) ListByEvent(ctx context.Context, eventID string) ([]model.SurveyResponse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT event_id, user_id, answers, submitted_at
		 FROM survey_responses
		 WHERE event_id = $1`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	defer rows.Close()

	var resps []model.SurveyResponse
	for rows.Next() {
		var resp model.SurveyResponse
		if err := rows.Scan(&resp.EventID, &resp.UserID, &resp.Answers, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}
		resps = append(resps, resp)
	}
	return resps, rows.Err()
}
