package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vendeya/internal/domain/entity"
	"vendeya/internal/usecase"
)

func newOrdersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Review purchases and manage sales",
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List your own purchases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Orders.LoadHistory(cmd.Context()); err != nil {
				return err
			}
			for _, order := range app.Orders.Orders() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.2f€\n",
					order.ID, order.CreatedAt.Format("02/01/2006"), order.Status, order.Total)
			}
			return nil
		},
	}

	var limit int
	var recent bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders received as a seller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := usecase.LoadOrdersOptions{Limit: limit, SortByRecent: recent}
			if err := app.SellerOrders.Load(cmd.Context(), opts); err != nil {
				return err
			}
			for _, order := range app.SellerOrders.Orders() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					order.ID, order.BuyerName, order.CreatedAt.Format("02/01/2006"), order.Status)
				for _, item := range order.Items {
					fmt.Fprintf(cmd.OutOrStdout(), "\t%s x%d\t%.2f€\n",
						item.Name, item.Quantity, item.UnitPrice)
				}
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "show at most N orders")
	list.Flags().BoolVar(&recent, "recent", false, "most recent first")

	status := &cobra.Command{
		Use:   "status <order-id> <estado>",
		Short: "Update the status of a received order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			next := entity.OrderStatus(args[1])
			if err := app.SellerOrders.UpdateStatus(cmd.Context(), orderID, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido %d ahora %s\n", orderID, next)
			return nil
		},
	}

	cmd.AddCommand(history, list, status)
	return cmd
}
