package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"petstore-pos/internal/ledger"
	"petstore-pos/internal/ledger/dto"
	"petstore-pos/internal/receipt"
)

func newOrderCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Checkout and order history",
	}
	cmd.AddCommand(newOrderCreateCommand(app))
	cmd.AddCommand(newOrderListCommand(app))
	cmd.AddCommand(newOrderShowCommand(app))
	cmd.AddCommand(newOrderDeleteCommand(app))
	return cmd
}

func newOrderCreateCommand(app *App) *cobra.Command {
	var lines []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Check out a cart and print the receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &dto.CheckoutInput{}
			for _, line := range lines {
				item, err := parseItem(line)
				if err != nil {
					return err
				}
				input.Items = append(input.Items, item)
			}

			o, err := app.Ledger.Checkout(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), receipt.Render(o))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&lines, "item", nil, "cart line as <product-id>:<quantity> (repeatable)")
	cmd.MarkFlagRequired("item")
	return cmd
}

// parseItem splits "<product-id>:<quantity>"; quantity defaults to 1.
func parseItem(line string) (dto.CheckoutItem, error) {
	id, qtyStr, found := strings.Cut(line, ":")
	if !found {
		return dto.CheckoutItem{ProductID: id, Quantity: 1}, nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return dto.CheckoutItem{}, fmt.Errorf("bad cart line %q: %w", line, err)
	}
	return dto.CheckoutItem{ProductID: id, Quantity: qty}, nil
}

func newOrderListCommand(app *App) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.Ledger.OrdersForPeriod(cmd.Context(), ledger.Period(period))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NUMBER\tDATE\tITEMS\tTOTAL\tID")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					o.OrderNumber,
					o.CreatedAt.Format("02/01/2006 15:04"),
					o.ItemCount(),
					receipt.FormatVND(o.Total),
					o.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&period, "period", string(ledger.PeriodToday), "today|week|month|all")
	return cmd
}

func newOrderShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the receipt of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Ledger.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if o == nil {
				return fmt.Errorf("order %s not found", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), receipt.Render(o))
			return nil
		},
	}
}

func newOrderDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order (for correction of mistakes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Ledger.DeleteOrder(cmd.Context(), args[0])
		},
	}
}
