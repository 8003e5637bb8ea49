package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects   service.ProjectService
	Schedule   service.ScheduleService
	Alerts     service.AlertService
	Estimates  service.EstimateService
	References service.ReferenceService
	Catalog    *catalog.Catalog

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool

	today string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// now returns the --today override, or nil to let services use the clock.
func (a *App) now() (*time.Time, error) {
	if a.today == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(a.today)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q: %w", a.today, err)
	}
	return &d, nil
}

// NewRootCmd creates the top-level "chantier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "chantier",
		Short:         "Construction schedule planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.today, "today", "", "Treat this date as today (YYYY-MM-DD)")

	root.AddCommand(
		newProjectCmd(app),
		newScheduleCmd(app),
		newAlertCmd(app),
		newEstimateCmd(app),
		newReferenceCmd(app),
		newCatalogCmd(app),
	)

	return root
}
