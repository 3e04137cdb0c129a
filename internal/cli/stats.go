package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"petstore-pos/internal/receipt"
)

func newStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Today's sales and datastore totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := app.Ledger.StatsForToday(cmd.Context())
			if err != nil {
				return err
			}
			counts, err := app.Backup.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "today: %d orders, %s revenue, %d items sold\n",
				today.OrderCount, receipt.FormatVND(today.TotalRevenue), today.ItemsSold)
			fmt.Fprintf(out, "store: %d products, %d orders, %d categories\n",
				counts.Products, counts.Orders, counts.Categories)
			return nil
		},
	}
}
