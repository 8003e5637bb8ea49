package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAlertCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Supplier, fabrication and subcontractor reminders",
	}
	cmd.AddCommand(newAlertListCmd(a), newAlertDismissCmd(a))
	return cmd
}

func newAlertListCmd(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list ID",
		Short: "List a project's alerts by trigger date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			alerts, err := a.Alerts.ListAlerts(ctx, args[0], all)
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No alerts.")
				return nil
			}
			entries, err := a.Schedule.List(ctx, args[0])
			if err != nil {
				return err
			}
			stepOf := make(map[string]string, len(entries))
			for _, e := range entries {
				stepOf[e.ID] = e.StepID
			}

			now, err := a.now()
			if err != nil {
				return err
			}
			today := time.Now().UTC()
			if now != nil {
				today = *now
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAlerts(alerts, stepOf, today))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include dismissed alerts")

	return cmd
}

func newAlertDismissCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss ALERT_ID",
		Short: "Hide an alert; regeneration will not bring it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Alerts.Dismiss(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dismissed alert %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}
