package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vendeya/internal/usecase"
)

func newRatingsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Read and write product ratings",
	}

	list := &cobra.Command{
		Use:   "list <product-id>",
		Short: "Show a product's ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.Ratings.Load(cmd.Context(), productID); err != nil {
				return err
			}
			stats := app.Ratings.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f de media · %d valoraciones\n", stats.Average, stats.Total)
			if own := app.Ratings.OwnRating(); own != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Tu valoración: %d★ %s\n", own.Score, own.Comment)
			}
			for _, rating := range app.Ratings.Ratings() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d★\t%s\t%s\n", rating.Score, rating.UserName, rating.Comment)
			}
			return nil
		},
	}

	var comment string
	add := &cobra.Command{
		Use:   "add <product-id> <score>",
		Short: "Rate a product you bought",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			if err := app.Ratings.Load(cmd.Context(), productID); err != nil {
				return err
			}
			input := usecase.RateInput{Score: score, Comment: comment}
			if app.Ratings.OwnRating() != nil {
				return app.Ratings.Update(cmd.Context(), input)
			}
			return app.Ratings.Create(cmd.Context(), input)
		},
	}
	add.Flags().StringVar(&comment, "comment", "", "optional comment")

	remove := &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Delete your rating for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.Ratings.Load(cmd.Context(), productID); err != nil {
				return err
			}
			return app.Ratings.Delete(cmd.Context())
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
