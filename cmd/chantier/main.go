package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/cli"
	"github.com/alexanderramin/chantier/internal/config"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/scheduler"
	"github.com/alexanderramin/chantier/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	entryRepo := repository.NewSQLiteScheduleEntryRepo(database)
	alertRepo := repository.NewSQLiteAlertRepo(database)
	refRepo := repository.NewSQLiteReferenceDurationRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	engine := scheduler.NewEngine(cat)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel))
	}

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, cat, uow, observers...),
		Schedule:   service.NewScheduleService(engine, projectRepo, entryRepo, uow, observers...),
		Alerts:     service.NewAlertService(projectRepo, alertRepo, observers...),
		Estimates:  service.NewEstimateService(engine, projectRepo, refRepo),
		References: service.NewReferenceService(cat, refRepo, uow, observers...),
		Catalog:    cat,
	}

	// Prompts only run on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
