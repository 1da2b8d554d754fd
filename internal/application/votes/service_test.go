package votes

import (
	"context"
	"sync"
	"testing"

	"vibemarket-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type countingCache struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return nil
}

func setupVotesTest(t *testing.T) (*Service, *gorm.DB, *countingCache) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Vibe{}))
	c := &countingCache{}
	return &Service{DB: db, Cache: c}, db, c
}

func seedVibe(t *testing.T, db *gorm.DB, status domain.Status, votes int64) domain.Vibe {
	v := domain.Vibe{
		Title: "Invoice Ninja", Description: "d", LiveURL: "https://example.com",
		Tool: domain.ToolCursor, Plan: domain.PlanFree, Status: status, Votes: votes, UserID: "u-1",
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func TestIncrement_AddsOne(t *testing.T) {
	svc, db, c := setupVotesTest(t)
	v := seedVibe(t, db, domain.StatusApproved, 41)

	require.NoError(t, svc.Increment(context.Background(), v.ID))

	n, err := svc.Count(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, 1, c.calls)
}

func TestIncrement_ConcurrentCallsAreNotLost(t *testing.T) {
	svc, db, _ := setupVotesTest(t)
	v := seedVibe(t, db, domain.StatusApproved, 0)

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Increment(context.Background(), v.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := svc.Count(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), n)
}

func TestIncrement_UnknownID(t *testing.T) {
	svc, _, c := setupVotesTest(t)
	assert.ErrorIs(t, svc.Increment(context.Background(), uuid.New()), ErrNotFound)
	assert.Zero(t, c.calls)
}

func TestIncrement_OnlyApproved(t *testing.T) {
	svc, db, _ := setupVotesTest(t)
	pending := seedVibe(t, db, domain.StatusPending, 0)
	rejected := seedVibe(t, db, domain.StatusRejected, 0)

	assert.ErrorIs(t, svc.Increment(context.Background(), pending.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Increment(context.Background(), rejected.ID), ErrNotFound)

	var stored domain.Vibe
	require.NoError(t, db.Where("id = ?", pending.ID).First(&stored).Error)
	assert.Zero(t, stored.Votes)
}
