package repository

// Opt-in integration tests against a real PostgreSQL instance. Set
// TEST_DATABASE_DSN to run them, e.g.
//
//	TEST_DATABASE_DSN="host=localhost user=postgres password=postgres dbname=eventsignup_test sslmode=disable" go test ./internal/repository/
//
// They cover the storage-side guarantees the unit tests cannot: the unique
// constraint as the duplicate race guard, the counter staying equal to the
// number of registration rows, and the cascade delete.

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evlist/event-signup/internal/database"
	"github.com/evlist/event-signup/internal/model"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func createTestEvent(t *testing.T, pool *pgxpool.Pool) *model.Event {
	t.Helper()
	events := NewEventRepository(pool)

	// Event ids are millisecond timestamps; space creations out so two
	// test events never share one.
	time.Sleep(2 * time.Millisecond)
	event, err := events.Create(context.Background(), model.CreateEventRequest{
		Title:          "Integration test event",
		StartTime:      "2026-09-15T09:00:00Z",
		Location:       "Test lab",
		SignupDeadline: "2026-09-14T18:00:00Z",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = events.Delete(context.Background(), event.ID)
	})
	return event
}

func TestIntegration_RegisterDuplicate(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	event := createTestEvent(t, pool)
	events := NewEventRepository(pool)
	regs := NewRegistrationRepository(pool)

	count, err := regs.Register(ctx, event.ID, "Alice", "Eng")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = regs.Register(ctx, event.ID, "Alice", "Eng")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// The failed attempt must leave no trace: counter unchanged, one row.
	got, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RegisteredCount)

	rows, err := regs.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestIntegration_RegisterMissingEvent(t *testing.T) {
	pool := testPool(t)
	regs := NewRegistrationRepository(pool)

	_, err := regs.Register(context.Background(), "does-not-exist", "Alice", "Eng")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIntegration_ConcurrentRegistrations(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	event := createTestEvent(t, pool)
	events := NewEventRepository(pool)
	regs := NewRegistrationRepository(pool)

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = regs.Register(ctx, event.ID, fmt.Sprintf("User %d", i), "Eng")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "registration %d", i)
	}

	// No lost updates, no double counts.
	got, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.RegisteredCount)

	rows, err := regs.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, rows, n)
}

func TestIntegration_DeleteCascades(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	event := createTestEvent(t, pool)
	events := NewEventRepository(pool)
	regs := NewRegistrationRepository(pool)
	surveys := NewSurveyRepository(pool)

	_, err := regs.Register(ctx, event.ID, "Alice", "Eng")
	require.NoError(t, err)
	_, err = regs.Register(ctx, event.ID, "Bob", "Sales")
	require.NoError(t, err)
	require.NoError(t, surveys.Upsert(ctx, event.ID, "user-1", []int{0}))

	require.NoError(t, events.Delete(ctx, event.ID))

	_, err = events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := regs.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	resps, err := surveys.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, resps)

	assert.ErrorIs(t, events.Delete(ctx, event.ID), ErrNotFound)
}
