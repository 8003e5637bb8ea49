package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertService_ListAndDismiss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAlertService(f.projects, f.alerts)
	p := f.seedProject(t)
	f.generate(t, p)

	active, err := svc.ListAlerts(ctx, p.ShortID, false)
	require.NoError(t, err)
	require.NotEmpty(t, active)
	for i := 1; i < len(active); i++ {
		assert.False(t, active[i].TriggerDate.Before(active[i-1].TriggerDate), "ordered by trigger date")
	}

	structure := f.entry(t, p, "structure")
	var fab *domain.ScheduleAlert
	for i := range active {
		if active[i].EntryID == structure.ID && active[i].Type == domain.AlertFabricationStart {
			fab = &active[i]
		}
	}
	require.NotNil(t, fab)
	assert.Equal(t, "2025-06-19", fab.TriggerDate.Format("2006-01-02"), "15 calendar days before 2025-07-04")

	require.NoError(t, svc.Dismiss(ctx, fab.ID))

	after, err := svc.ListAlerts(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Len(t, after, len(active)-1)
	all, err := svc.ListAlerts(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, len(active))

	// Regenerating leaves the dismissed alert alone.
	f.generate(t, p)
	again, err := svc.ListAlerts(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Len(t, again, len(active)-1)
}

func TestAlertService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAlertService(f.projects, f.alerts)

	_, err := svc.ListAlerts(ctx, "NOPE01", false)
	assert.Equal(t, app.ErrCodeNotFound, app.CodeOf(err))

	err = svc.Dismiss(ctx, "missing-alert")
	assert.Equal(t, app.ErrCodeNotFound, app.CodeOf(err))
}
