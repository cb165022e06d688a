package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evlist/event-signup/internal/model"
)

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register inserts a registration row and bumps the event's counter in one
// transaction, returning the updated count.
//
// The duplicate check is NOT a read: the UNIQUE(event_id, name, department)
// constraint is the race guard. Two identical registrations racing each
// other both attempt the insert, the storage layer admits exactly one, and
// the loser's transaction rolls back with nothing written. The counter
// update takes a row-level lock on the event, so concurrent increments for
// the same event serialize and none are lost.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, name, department string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, name, department, registered_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), eventID, name, department, time.Now().UTC(),
	)
	if err != nil {
		err = translateRegistrationError(err)
		return 0, err
	}

	var count int
	err = tx.QueryRow(ctx,
		`UPDATE events SET registered_count = registered_count + 1
		 WHERE id = $1
		 RETURNING registered_count`,
		eventID,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return 0, err
		}
		return 0, fmt.Errorf("increment registered_count: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return count, nil
}

// translateRegistrationError maps storage errors from the registration
// insert to the domain taxonomy: the unique constraint means a duplicate
// signup, the foreign key means the event does not exist.
func translateRegistrationError(err error) error {
	switch {
	case isPgError(err, pgUniqueViolation):
		return ErrAlreadyRegistered
	case isPgError(err, pgForeignKeyViolation):
		return ErrNotFound
	default:
		return fmt.Errorf("insert registration: %w", err)
	}
}

// ListByEvent returns all registrations for an event, most recent first.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, name, department, registered_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY registered_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Department, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
