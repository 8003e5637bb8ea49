package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and recalculate project schedules",
	}

	cmd.AddCommand(
		newScheduleGenerateCmd(a),
		newScheduleShowCmd(a),
		newScheduleCompleteCmd(a),
		newScheduleStepCmd(a, "uncomplete", "Reopen a completed step and replay the schedule", "Reopened", a.Schedule.Uncomplete),
		newScheduleEditCmd(a),
		newScheduleStepCmd(a, "lock", "Pin a step to its current dates", "Locked", a.Schedule.Lock),
		newScheduleStepCmd(a, "unlock", "Release a pinned step; its dates stay until the next cascade", "Unlocked", a.Schedule.Unlock),
		newScheduleStepCmd(a, "reset", "Return a step to calculated dates and recalculate", "Reset", a.Schedule.Reset),
		newScheduleAddCmd(a),
		newScheduleRemoveCmd(a),
		newScheduleConflictsCmd(a),
	)

	return cmd
}

func newScheduleGenerateCmd(a *App) *cobra.Command {
	var start, stage string

	cmd := &cobra.Command{
		Use:   "generate ID",
		Short: "Build the schedule from the project's stage and target start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now, err := a.now()
			if err != nil {
				return err
			}

			if start == "" && !cmd.Flags().Changed("start") && a.interactive() {
				p, err := a.Projects.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if p.TargetStartDate == nil {
					if err := startDateForm(&start).Run(); err != nil {
						return err
					}
				}
			}

			req := app.GenerateRequest{ProjectRef: args[0], Now: now}
			if req.TargetStart, err = parseOptionalDate("start", start); err != nil {
				return err
			}
			if cmd.Flags().Changed("stage") {
				req.Stage = &stage
			}

			resp, err := a.Schedule.Generate(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerate(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Target construction start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&stage, "stage", "", "Override the project's current stage")

	return cmd
}

func newScheduleShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the schedule in catalog order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.Schedule.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No schedule yet. Run: chantier schedule generate", args[0])
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(entries))
			return nil
		},
	}
}

func newScheduleCompleteCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "complete ID STEP",
		Short: "Mark a step done and shift the rest of the schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := a.now()
			if err != nil {
				return err
			}
			req := app.CompleteRequest{StepRequest: app.StepRequest{ProjectRef: args[0], StepID: args[1], Now: now}}

			switch {
			case cmd.Flags().Changed("days"):
				req.ActualDays = &days
			case a.interactive():
				var input string
				if err := actualDaysForm(args[1], &input).Run(); err != nil {
					return err
				}
				if input != "" {
					n, _ := strconv.Atoi(input)
					req.ActualDays = &n
				}
			}

			resp, err := a.Schedule.Complete(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecalc("Completed", resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Actual business days taken (defaults to the estimate)")

	return cmd
}

func newScheduleEditCmd(a *App) *cobra.Command {
	var start, end string
	var days int

	cmd := &cobra.Command{
		Use:   "edit ID STEP",
		Short: "Set a step's dates by hand; the step becomes locked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := a.now()
			if err != nil {
				return err
			}
			req := app.EditRequest{StepRequest: app.StepRequest{ProjectRef: args[0], StepID: args[1], Now: now}}
			if req.Start, err = parseOptionalDate("start", start); err != nil {
				return err
			}
			if req.End, err = parseOptionalDate("end", end); err != nil {
				return err
			}
			if cmd.Flags().Changed("days") {
				req.Days = &days
			}

			resp, err := a.Schedule.EditDates(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecalc("Edited", resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "New duration in business days")
	cmd.MarkFlagsOneRequired("start", "end", "days")
	cmd.MarkFlagsMutuallyExclusive("end", "days")

	return cmd
}

// newScheduleStepCmd builds the commands that take only a project and a step.
func newScheduleStepCmd(a *App, use, short, verb string, run func(ctx context.Context, req app.StepRequest) (*app.RecalcResponse, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID STEP",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := a.now()
			if err != nil {
				return err
			}
			resp, err := run(cmd.Context(), app.StepRequest{ProjectRef: args[0], StepID: args[1], Now: now})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecalc(verb, resp))
			return nil
		},
	}
}

func newScheduleAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add ID STEP",
		Short: "Add a pending entry for a catalog step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := a.now()
			if err != nil {
				return err
			}
			e, err := a.Schedule.AddEntry(cmd.Context(), app.StepRequest{ProjectRef: args[0], StepID: args[1], Now: now})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s)\n", e.StepID, e.Trade, formatter.DayCount(e.EstimatedDays))
			return nil
		},
	}
}

func newScheduleRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID STEP",
		Short: "Delete a step's entry and its alerts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !a.interactive() {
					return fmt.Errorf("refusing to remove %s without --yes", args[1])
				}
				if err := confirmForm(fmt.Sprintf("Remove %s from %s?", args[1], args[0]), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := a.Schedule.RemoveEntry(cmd.Context(), app.StepRequest{ProjectRef: args[0], StepID: args[1]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newScheduleConflictsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts ID",
		Short: "List days where a trade is booked twice, and locked-date warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conflicts, warnings, err := a.Schedule.Conflicts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConflicts(conflicts, warnings))
			return nil
		},
	}
}
