package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage construction projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, shortID, stage, target string
	var sqft float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ShortID:      strings.ToUpper(shortID),
				Name:         name,
				CurrentStage: stage,
			}
			if cmd.Flags().Changed("sqft") {
				p.SquareFootage = &sqft
			}
			t, err := parseOptionalDate("target", target)
			if err != nil {
				return err
			}
			p.TargetStartDate = t

			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. MAISON01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Float64Var(&sqft, "sqft", 0, "Heated floor area in square feet")
	cmd.Flags().StringVar(&stage, "stage", "", "Current stage (first step not yet done)")
	cmd.Flags().StringVar(&target, "target", "", "Target construction start (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Projects.Get(ctx, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Schedule.List(ctx, p.ID)
			if err != nil {
				return err
			}
			alerts, err := app.Alerts.ListAlerts(ctx, p.ID, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(formatter.ProjectInspectData{
				Project:      p,
				Entries:      entries,
				ActiveAlerts: len(alerts),
			}))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, stage, target string
	var sqft float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Projects.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("stage") {
				p.CurrentStage = stage
			}
			if cmd.Flags().Changed("sqft") {
				p.SquareFootage = &sqft
			}
			if cmd.Flags().Changed("target") {
				t, err := parseOptionalDate("target", target)
				if err != nil {
					return err
				}
				p.TargetStartDate = t
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Float64Var(&sqft, "sqft", 0, "Heated floor area in square feet")
	cmd.Flags().StringVar(&stage, "stage", "", "Current stage (empty for the first step)")
	cmd.Flags().StringVar(&target, "target", "", "Target construction start (YYYY-MM-DD, empty to clear)")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project",
		Long:  "Delete a project. A project with a schedule is only removed with --force, which also deletes its entries and alerts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Delete(cmd.Context(), args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete the schedule and alerts too")

	return cmd
}
