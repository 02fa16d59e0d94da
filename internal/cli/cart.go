package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Cart.Load(cmd.Context()); err != nil {
				return err
			}
			for _, item := range app.Cart.Items() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tx%d\t%.2f€\n",
					item.ID, item.Name, item.Quantity, item.Subtotal())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %.2f€ (%d artículos)\n",
				app.Cart.Subtotal(), app.Cart.Count())
			return nil
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.Cart.Add(cmd.Context(), productID, quantity); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Añadido al carrito (%d artículos)\n", app.Cart.Count())
			return nil
		},
	}
	add.Flags().IntVar(&quantity, "quantity", 1, "units to add")

	set := &cobra.Command{
		Use:   "set <item-id> <quantity>",
		Short: "Change an item's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return app.Cart.SetQuantity(cmd.Context(), itemID, qty)
		},
	}

	remove := &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return app.Cart.Remove(cmd.Context(), itemID)
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cart.Clear(cmd.Context())
		},
	}

	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Turn the cart into an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := app.Orders.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido creado: %d (%.2f€)\n", order.ID, order.Total)
			return nil
		},
	}

	cmd.AddCommand(list, add, set, remove, clear, checkout)
	return cmd
}
