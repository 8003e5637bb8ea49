package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceDurationRepo_UpsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReferenceDurationRepo(db)
	ctx := context.Background()

	sqft := 1500.0
	minDays, maxDays := 4, 12
	scaling := 0.8
	require.NoError(t, repo.Upsert(ctx, &domain.ReferenceDuration{
		StepID:            "fondation",
		BaseDays:          6,
		BaseSquareFootage: &sqft,
		MinDays:           &minDays,
		MaxDays:           &maxDays,
		ScalingFactor:     &scaling,
		Notes:             "semelles et murs",
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.ReferenceDuration{StepID: "excavation", BaseDays: 3}))

	refs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "excavation", refs[0].StepID)
	assert.Nil(t, refs[0].BaseSquareFootage)
	assert.Nil(t, refs[0].MinDays)
	assert.Nil(t, refs[0].ScalingFactor)

	f := refs[1]
	assert.Equal(t, "fondation", f.StepID)
	assert.Equal(t, 6, f.BaseDays)
	require.NotNil(t, f.BaseSquareFootage)
	assert.Equal(t, 1500.0, *f.BaseSquareFootage)
	require.NotNil(t, f.MaxDays)
	assert.Equal(t, 12, *f.MaxDays)
	assert.Equal(t, 0.8, f.ResolvedScalingFactor())
	assert.Equal(t, "semelles et murs", f.Notes)
}

func TestReferenceDurationRepo_UpsertReplaces(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReferenceDurationRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.ReferenceDuration{StepID: "gypse", BaseDays: 8}))
	require.NoError(t, repo.Upsert(ctx, &domain.ReferenceDuration{StepID: "gypse", BaseDays: 10}))

	refs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, 10, refs[0].BaseDays)
}

func TestReferenceDurationRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReferenceDurationRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.ReferenceDuration{StepID: "gypse", BaseDays: 8}))
	require.NoError(t, repo.Delete(ctx, "gypse"))
	assert.ErrorIs(t, repo.Delete(ctx, "gypse"), ErrNotFound)
}
