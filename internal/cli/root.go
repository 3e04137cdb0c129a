// Package cli is the interactive surface over the POS core. Commands only
// translate flags to usecase calls and print plain results; all business
// rules live below.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"petstore-pos/internal/backup"
	"petstore-pos/internal/catalog"
	"petstore-pos/internal/ledger"
)

// App bundles the constructed usecases for the commands.
type App struct {
	Logger  *zap.Logger
	Catalog catalog.UseCase
	Ledger  ledger.UseCase
	Backup  *backup.Coordinator
}

func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "petpos",
		Short:         "Pet Store POS",
		Long:          "Offline point-of-sale for a small shop: catalog, checkout, receipts, backups.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newProductCommand(app))
	cmd.AddCommand(newCategoryCommand(app))
	cmd.AddCommand(newOrderCommand(app))
	cmd.AddCommand(newStatsCommand(app))
	cmd.AddCommand(newBackupCommand(app))
	cmd.AddCommand(newClearCommand(app))

	return cmd
}
