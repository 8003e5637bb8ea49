package cli

import (
	"fmt"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the construction step catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "steps",
		Short: "List every step in schedule order",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := a.Catalog.Steps()
			rows := make([]formatter.CatalogRow, 0, len(steps))
			for _, s := range steps {
				trade, color := a.Catalog.Trade(s.ID)
				rows = append(rows, formatter.CatalogRow{Step: s, Trade: trade, TradeColor: color})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(rows))
			return nil
		},
	})
	return cmd
}
