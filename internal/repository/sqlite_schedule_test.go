package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedProject(t *testing.T, ctx context.Context, repo *SQLiteProjectRepo) *domain.Project {
	t.Helper()
	proj := testutil.NewTestProject("Maison")
	require.NoError(t, repo.Create(ctx, proj))
	return proj
}

func TestScheduleEntryRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteScheduleEntryRepo(db)

	e := testutil.NewTestEntry(proj.ID, "fondation",
		testutil.WithPosition(6),
		testutil.WithEstimatedDays(6),
		testutil.WithDates(day(2025, 6, 6), day(2025, 6, 16)),
		testutil.WithLeadDays(14, 0),
	)
	e.Trade = "beton"
	e.TradeColor = "#a89984"
	e.MeasurementRequired = true
	e.MeasurementAfterStepID = "excavation"
	require.NoError(t, repo.UpsertMany(ctx, []*domain.ScheduleEntry{e}))

	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "fondation", fetched.StepID)
	assert.Equal(t, 6, fetched.Position)
	assert.Equal(t, "beton", fetched.Trade)
	assert.Equal(t, 6, fetched.EstimatedDays)
	assert.Nil(t, fetched.ActualDays)
	require.True(t, fetched.HasDates())
	assert.True(t, fetched.StartDate.Equal(day(2025, 6, 6)))
	assert.True(t, fetched.EndDate.Equal(day(2025, 6, 16)))
	assert.Equal(t, domain.EntryScheduled, fetched.Status)
	assert.Equal(t, 14, fetched.SupplierLeadDays)
	assert.True(t, fetched.MeasurementRequired)
	assert.Equal(t, "excavation", fetched.MeasurementAfterStepID)
	assert.Equal(t, 1, fetched.Version)

	byStep, err := repo.GetByStep(ctx, proj.ID, "fondation")
	require.NoError(t, err)
	assert.Equal(t, e.ID, byStep.ID)
}

func TestScheduleEntryRepo_UpsertIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteScheduleEntryRepo(db)

	first := testutil.NewTestEntry(proj.ID, "toiture", testutil.WithDates(day(2025, 7, 21), day(2025, 7, 25)))
	require.NoError(t, repo.UpsertMany(ctx, []*domain.ScheduleEntry{first}))

	// Same step under a fresh id: the stored row keeps its id and is overwritten.
	second := testutil.NewTestEntry(proj.ID, "toiture",
		testutil.WithEstimatedDays(4),
		testutil.WithDates(day(2025, 7, 22), day(2025, 7, 28)))
	require.NoError(t, repo.UpsertMany(ctx, []*domain.ScheduleEntry{second}))

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, 4, list[0].EstimatedDays)
	assert.True(t, list[0].StartDate.Equal(day(2025, 7, 22)))
	assert.Equal(t, 2, list[0].Version)
}

func TestScheduleEntryRepo_ListOrdersByPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteScheduleEntryRepo(db)

	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry(proj.ID, "gypse", testutil.WithPosition(14)),
		testutil.NewTestEntry(proj.ID, "custom"),
		testutil.NewTestEntry(proj.ID, "excavation", testutil.WithPosition(5)),
	}
	require.NoError(t, repo.UpsertMany(ctx, entries))

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "excavation", list[0].StepID)
	assert.Equal(t, "gypse", list[1].StepID)
	assert.Equal(t, "custom", list[2].StepID, "unpositioned entries sort last")
}

func TestScheduleEntryRepo_UpdateCompareAndSwap(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteScheduleEntryRepo(db)

	e := testutil.NewTestEntry(proj.ID, "peinture", testutil.WithDates(day(2025, 9, 10), day(2025, 9, 15)))
	require.NoError(t, repo.UpsertMany(ctx, []*domain.ScheduleEntry{e}))

	a, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	b, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)

	require.NoError(t, a.Lock(time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, a))
	assert.Equal(t, 2, a.Version)

	b.Notes = "late writer"
	err = repo.Update(ctx, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleWrite)

	stored, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsManualDate)
	assert.Empty(t, stored.Notes)
}

func TestScheduleEntryRepo_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleEntryRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestEntry("p", "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleEntryRepo_CompletedRequiresActualDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteScheduleEntryRepo(db)

	e := testutil.NewTestEntry(proj.ID, "excavation")
	e.Status = domain.EntryCompleted
	assert.Error(t, repo.UpsertMany(ctx, []*domain.ScheduleEntry{e}))

	ok := testutil.NewTestEntry(proj.ID, "excavation",
		testutil.WithDates(day(2025, 6, 2), day(2025, 6, 5)),
		testutil.WithCompleted(3))
	require.NoError(t, repo.UpsertMany(ctx, []*domain.ScheduleEntry{ok}))

	fetched, err := repo.GetByStep(ctx, proj.ID, "excavation")
	require.NoError(t, err)
	require.NotNil(t, fetched.ActualDays)
	assert.Equal(t, 3, *fetched.ActualDays)
	assert.Equal(t, 3, fetched.EffectiveDays())
}

func TestScheduleEntryRepo_GetByStepNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleEntryRepo(db)

	_, err := repo.GetByStep(context.Background(), "p", "gypse")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleEntryRepo_DeleteCascadesAlerts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	entries := NewSQLiteScheduleEntryRepo(db)
	alerts := NewSQLiteAlertRepo(db)

	e := testutil.NewTestEntry(proj.ID, "armoires")
	require.NoError(t, entries.UpsertMany(ctx, []*domain.ScheduleEntry{e}))
	a := testutil.NewTestAlert(proj.ID, e.ID, domain.AlertFabricationStart, day(2025, 8, 1))
	require.NoError(t, alerts.InsertMany(ctx, []domain.ScheduleAlert{a}))

	require.NoError(t, entries.Delete(ctx, e.ID))

	_, err := alerts.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound, "alert should be cascade-deleted with its entry")
}

func TestProjectDelete_CascadesEntriesAndAlerts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	proj := seedProject(t, ctx, projects)
	entries := NewSQLiteScheduleEntryRepo(db)
	alerts := NewSQLiteAlertRepo(db)

	e := testutil.NewTestEntry(proj.ID, "structure")
	require.NoError(t, entries.UpsertMany(ctx, []*domain.ScheduleEntry{e}))
	require.NoError(t, alerts.InsertMany(ctx, []domain.ScheduleAlert{
		testutil.NewTestAlert(proj.ID, e.ID, domain.AlertSupplierCall, day(2025, 6, 13)),
	}))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	list, err := entries.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	remaining, err := alerts.ListByProject(ctx, proj.ID, true)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
