package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResolutionRepo(db)

	_, err := repo.Get(context.Background(), "2024-01-15")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolutionRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResolutionRepo(db)
	ctx := context.Background()

	res := &domain.CarryOverResolution{
		Date:       "2024-01-15",
		Outcome:    domain.OutcomeDismissed,
		ResolvedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, res))

	fetched, err := repo.Get(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDismissed, fetched.Outcome)
	assert.Equal(t, 0, fetched.MovedCount)
}

func TestResolutionRepo_UpsertOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResolutionRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.CarryOverResolution{
		Date:       "2024-01-15",
		Outcome:    domain.OutcomeDismissed,
		ResolvedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.CarryOverResolution{
		Date:       "2024-01-15",
		Outcome:    domain.OutcomeMoved,
		MovedCount: 2,
		ResolvedAt: time.Now().UTC(),
	}))

	fetched, err := repo.Get(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeMoved, fetched.Outcome)
	assert.Equal(t, 2, fetched.MovedCount)
}
