package cli

import (
	"fmt"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/spf13/cobra"
)

func newReferenceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Maintain reference durations used to prorate steps by project size",
	}
	cmd.AddCommand(
		newReferenceListCmd(a),
		newReferenceSetCmd(a),
		newReferenceRemoveCmd(a),
		newReferenceImportCmd(a),
	)
	return cmd
}

func newReferenceListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reference durations",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := a.References.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reference durations; catalog defaults apply.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReferences(refs))
			return nil
		},
	}
}

func newReferenceSetCmd(a *App) *cobra.Command {
	var baseDays, minDays, maxDays int
	var baseSqft, scaling float64
	var notes string

	cmd := &cobra.Command{
		Use:   "set STEP",
		Short: "Create or replace the reference duration of a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := &domain.ReferenceDuration{StepID: args[0], BaseDays: baseDays, Notes: notes}
			flags := cmd.Flags()
			if flags.Changed("base-sqft") {
				ref.BaseSquareFootage = &baseSqft
			}
			if flags.Changed("min-days") {
				ref.MinDays = &minDays
			}
			if flags.Changed("max-days") {
				ref.MaxDays = &maxDays
			}
			if flags.Changed("scaling") {
				ref.ScalingFactor = &scaling
			}
			if err := a.References.Set(cmd.Context(), ref); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set reference for %s: %s at %.0f pi²\n",
				ref.StepID, formatter.DayCount(ref.BaseDays), ref.ResolvedBaseSquareFootage())
			return nil
		},
	}

	cmd.Flags().IntVar(&baseDays, "base-days", 0, "Business days at the base size")
	cmd.Flags().Float64Var(&baseSqft, "base-sqft", domain.DefaultBaseSquareFootage, "Size the base days refer to")
	cmd.Flags().IntVar(&minDays, "min-days", 1, "Lower clamp")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "Upper clamp (default 3x base days)")
	cmd.Flags().Float64Var(&scaling, "scaling", 1, "How strongly size affects duration (0 disables)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("base-days")

	return cmd
}

func newReferenceRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STEP",
		Short: "Delete a reference duration; the catalog default applies again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.References.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed reference for %s\n", args[0])
			return nil
		},
	}
}

func newReferenceImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load reference durations from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.References.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d reference durations\n", n)
			return nil
		},
	}
}
