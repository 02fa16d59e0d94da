package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the vendeya command tree. Commands are thin
// rendering glue: all behavior lives in the usecases.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vendeya",
		Short:         "VendeYa marketplace client",
		Long:          "Terminal client for the VendeYa marketplace: products, cart, orders, messaging and ratings.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newRegisterCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newWhoamiCommand(app))
	cmd.AddCommand(newThemeCommand(app))
	cmd.AddCommand(newProductsCommand(app))
	cmd.AddCommand(newCartCommand(app))
	cmd.AddCommand(newChatCommand(app))
	cmd.AddCommand(newOrdersCommand(app))
	cmd.AddCommand(newRatingsCommand(app))
	cmd.AddCommand(newCategoriesCommand(app))

	return cmd
}
