package cli

import (
	"fmt"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEstimateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Duration and date calculations without touching a schedule",
	}
	cmd.AddCommand(
		newEstimateDurationCmd(a),
		newEstimatePrepStartCmd(a),
		newEstimateEndDateCmd(a),
	)
	return cmd
}

func newEstimateDurationCmd(a *App) *cobra.Command {
	var stage, project string

	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Total business days from a stage, prorated by project size when --project is set",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.EstimateRequest{ProjectRef: project}
			if cmd.Flags().Changed("stage") {
				req.Stage = &stage
			}
			est, err := a.Estimates.EstimateDuration(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEstimate(est))
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "First step still to do (default: all steps, or the project's stage)")
	cmd.Flags().StringVar(&project, "project", "", "Project ID for size proration")

	return cmd
}

func newEstimatePrepStartCmd(a *App) *cobra.Command {
	var target, stage string

	cmd := &cobra.Command{
		Use:   "prep-start",
		Short: "Latest day preparation can begin for construction to start on target",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := calendar.ParseDate(target)
			if err != nil {
				return fmt.Errorf("invalid --target %q: use YYYY-MM-DD", target)
			}
			d, err := a.Estimates.PreparationStart(t, stage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Start preparation by %s\n", formatter.Bold(calendar.Format(d)))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Target construction start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&stage, "stage", "", "First step still to do")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newEstimateEndDateCmd(a *App) *cobra.Command {
	var start string
	var days int

	cmd := &cobra.Command{
		Use:   "end-date",
		Short: "End date of a step of N business days",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := calendar.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid --start %q: use YYYY-MM-DD", start)
			}
			end, err := a.Estimates.EndDate(s, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calendar.Format(end))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "Duration in business days")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}
