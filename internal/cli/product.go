package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"petstore-pos/internal/catalog/dto"
	"petstore-pos/internal/model"
	"petstore-pos/internal/receipt"
)

func newProductCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(newProductAddCommand(app))
	cmd.AddCommand(newProductListCommand(app))
	cmd.AddCommand(newProductSearchCommand(app))
	cmd.AddCommand(newProductDeleteCommand(app))
	cmd.AddCommand(newProductImportCommand(app))
	cmd.AddCommand(newProductLowStockCommand(app))
	return cmd
}

func newProductAddCommand(app *App) *cobra.Command {
	input := &dto.CreateProductInput{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.AddProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Barcode, "barcode", "", "barcode (required)")
	cmd.Flags().StringVar(&input.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&input.Category, "category", "", "category name")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "selling price")
	cmd.Flags().Float64Var(&input.Cost, "cost", 0, "cost price")
	cmd.Flags().IntVar(&input.Stock, "stock", 0, "stock on hand")
	cmd.Flags().StringVar(&input.Unit, "unit", "", "unit of sale")
	cmd.MarkFlagRequired("barcode")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProductListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.GetAllProducts(cmd.Context())
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
}

func newProductSearchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search by name, barcode or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.SearchProducts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
}

func newProductDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Catalog.DeleteProduct(cmd.Context(), args[0])
		},
	}
}

func newProductImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <rows.json>",
		Short: "Bulk import products (upsert by barcode)",
		Long:  "Reads a JSON array of rows {barcode, name, category, price, cost, stock, unit}, as produced by the spreadsheet converter.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var rows []dto.ImportRow
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("malformed import file: %w", err)
			}

			report, err := app.Catalog.ImportProducts(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d, skipped %d\n",
				report.Created, report.Updated, report.Skipped)
			for _, out := range report.Outcomes {
				if out.Status == dto.RowSkipped {
					fmt.Fprintf(cmd.OutOrStdout(), "  row %d: %s\n", out.Row, out.Reason)
				}
			}
			return nil
		},
	}
}

func newProductLowStockCommand(app *App) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below the stock threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.LowStockProducts(cmd.Context(), threshold)
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 5, "stock threshold")
	return cmd
}

func printProducts(cmd *cobra.Command, products []model.Product) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BARCODE\tNAME\tCATEGORY\tPRICE\tSTOCK\tUNIT\tID")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			p.Barcode, p.Name, p.CategoryName(), receipt.FormatVND(p.Price), p.Stock, p.Unit, p.ID)
	}
	w.Flush()
}
