package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceService(f *fixture) ReferenceService {
	return NewReferenceService(catalog.Default(), f.refs, testutil.NewTestUoW(f.db))
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReferenceService_SetListDelete(t *testing.T) {
	f := newFixture(t)
	svc := newReferenceService(f)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, &domain.ReferenceDuration{StepID: "gypse", BaseDays: 8}))
	require.NoError(t, svc.Set(ctx, &domain.ReferenceDuration{StepID: "peinture", BaseDays: 6, Notes: "2 couches"}))

	refs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "gypse", refs[0].StepID)
	assert.Equal(t, "2 couches", refs[1].Notes)

	require.NoError(t, svc.Delete(ctx, "gypse"))
	err = svc.Delete(ctx, "gypse")
	assert.Equal(t, app.ErrCodeNotFound, app.CodeOf(err))
}

func TestReferenceService_SetRejectsBadRows(t *testing.T) {
	f := newFixture(t)
	svc := newReferenceService(f)
	ctx := context.Background()

	err := svc.Set(ctx, &domain.ReferenceDuration{StepID: "piscine", BaseDays: 3})
	assert.Equal(t, app.ErrCodeUnknownStep, app.CodeOf(err))

	err = svc.Set(ctx, &domain.ReferenceDuration{StepID: "gypse", BaseDays: 0})
	assert.Equal(t, app.ErrCodeInvalidInput, app.CodeOf(err))

	refs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestReferenceService_ImportYAML(t *testing.T) {
	f := newFixture(t)
	svc := newReferenceService(f)
	ctx := context.Background()

	path := writeFile(t, "refs.yaml", `
references:
  - step: gypse
    base_days: 8
    base_square_footage: 2000
    max_days: 14
  - step: peinture
    base_days: 6
    scaling_factor: 0.5
`)
	n, err := svc.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	refs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	require.NotNil(t, refs[0].MaxDays)
	assert.Equal(t, 14, *refs[0].MaxDays)
	require.NotNil(t, refs[1].ScalingFactor)
	assert.Equal(t, 0.5, *refs[1].ScalingFactor)
}

func TestReferenceService_ImportRejectsWholeFile(t *testing.T) {
	f := newFixture(t)
	svc := newReferenceService(f)
	ctx := context.Background()

	unknown := writeFile(t, "refs.yaml", `
references:
  - step: gypse
    base_days: 8
  - step: piscine
    base_days: 4
`)
	_, err := svc.Import(ctx, unknown)
	assert.Equal(t, app.ErrCodeUnknownStep, app.CodeOf(err))

	malformed := writeFile(t, "bad.yaml", "references: [")
	_, err = svc.Import(ctx, malformed)
	assert.Equal(t, app.ErrCodeInvalidInput, app.CodeOf(err))

	refs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs, "nothing is written when any row is rejected")
}
