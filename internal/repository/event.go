// Package repository implements all database queries for the event signup
// system. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evlist/event-signup/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when the same name+department registers
// twice for one event.
var ErrAlreadyRegistered = errors.New("already registered for this event")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

const eventColumns = `id, title, start_time, end_time, location, signup_deadline,
	highlights, prizes, registered_count, max_participants, banner_url,
	replay_url, description, agenda, target_audience, requirements,
	speakers, organizer, tags, difficulty, benefits, survey_questions`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e       model.Event
		endTime *string
		banner  *string
		replay  *string
		desc    *string
		diff    *string
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.StartTime, &endTime, &e.Location, &e.SignupDeadline,
		&e.Highlights, &e.Prizes, &e.RegisteredCount, &e.MaxParticipants,
		&banner, &replay, &desc, &e.Agenda, &e.TargetAudience, &e.Requirements,
		&e.Speakers, &e.Organizer, &e.Tags, &diff, &e.Benefits,
		&e.SurveyQuestions,
	)
	if err != nil {
		return nil, err
	}
	if endTime != nil {
		e.EndTime = *endTime
	}
	if banner != nil {
		e.BannerURL = *banner
	}
	if replay != nil {
		e.ReplayURL = *replay
	}
	if desc != nil {
		e.Description = *desc
	}
	if diff != nil {
		e.Difficulty = *diff
	}
	// The client expects arrays, never null, for these fields.
	if e.Highlights == nil {
		e.Highlights = []string{}
	}
	if e.Prizes == nil {
		e.Prizes = []model.Prize{}
	}
	if e.SurveyQuestions == nil {
		e.SurveyQuestions = []model.SurveyQuestion{}
	}
	return &e, nil
}

// Create inserts a new event. The ID is assigned here as a millisecond
// timestamp token, matching the IDs already in production data.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	id := strconv.FormatInt(time.Now().UnixMilli(), 10)

	highlights := req.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	prizes := req.Prizes
	if prizes == nil {
		prizes = []model.Prize{}
	}
	questions := req.SurveyQuestions
	if questions == nil {
		questions = []model.SurveyQuestion{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, start_time, end_time, location, signup_deadline,
			highlights, prizes, registered_count, max_participants, banner_url,
			replay_url, description, survey_questions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, $11, $12, $13)`,
		id, req.Title, req.StartTime, nullable(req.EndTime), req.Location,
		req.SignupDeadline, highlights, prizes, req.MaxParticipants,
		nullable(req.BannerURL), nullable(req.ReplayURL),
		nullable(req.Description), questions,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return r.GetByID(ctx, id)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// List returns all events, newest first.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// buildEventUpdate maps set EventUpdate fields to their columns. Anything
// not in this list (id, registered_count in particular) can never be
// rewritten.
func buildEventUpdate(upd model.EventUpdate) (setClause string, args []any) {
	type col struct {
		name  string
		value any
		set   bool
	}
	cols := []col{
		{"title", deref(upd.Title), upd.Title != nil},
		{"start_time", deref(upd.StartTime), upd.StartTime != nil},
		{"end_time", deref(upd.EndTime), upd.EndTime != nil},
		{"location", deref(upd.Location), upd.Location != nil},
		{"signup_deadline", deref(upd.SignupDeadline), upd.SignupDeadline != nil},
		{"highlights", deref(upd.Highlights), upd.Highlights != nil},
		{"prizes", deref(upd.Prizes), upd.Prizes != nil},
		{"max_participants", deref(upd.MaxParticipants), upd.MaxParticipants != nil},
		{"banner_url", deref(upd.BannerURL), upd.BannerURL != nil},
		{"replay_url", deref(upd.ReplayURL), upd.ReplayURL != nil},
		{"description", deref(upd.Description), upd.Description != nil},
		{"agenda", deref(upd.Agenda), upd.Agenda != nil},
		{"target_audience", deref(upd.TargetAudience), upd.TargetAudience != nil},
		{"requirements", deref(upd.Requirements), upd.Requirements != nil},
		{"speakers", deref(upd.Speakers), upd.Speakers != nil},
		{"organizer", deref(upd.Organizer), upd.Organizer != nil},
		{"tags", deref(upd.Tags), upd.Tags != nil},
		{"difficulty", deref(upd.Difficulty), upd.Difficulty != nil},
		{"benefits", deref(upd.Benefits), upd.Benefits != nil},
		{"survey_questions", deref(upd.SurveyQuestions), upd.SurveyQuestions != nil},
	}

	for _, c := range cols {
		if !c.set {
			continue
		}
		args = append(args, c.value)
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = $%d", c.name, len(args))
	}
	return setClause, args
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Update applies a partial update and returns the updated event. Returns
// ErrNotFound if the event does not exist, and an error when no field is set.
func (r *EventRepository) Update(ctx context.Context, id string, upd model.EventUpdate) (*model.Event, error) {
	setClause, args := buildEventUpdate(upd)
	if len(args) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	args = append(args, id)

	tag, err := r.db.Exec(ctx,
		fmt.Sprintf("UPDATE events SET %s WHERE id = $%d", setClause, len(args)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes an event together with its registrations and survey
// responses in one transaction. Returns ErrNotFound, with nothing deleted,
// if the event does not exist.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	if _, err = tx.Exec(ctx,
		`DELETE FROM survey_responses WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete survey responses: %w", err)
	}

	var tag pgconn.CommandTag
	tag, err = tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
