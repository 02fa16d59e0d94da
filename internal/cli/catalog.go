package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"vendeya/internal/domain/repository"
	"vendeya/internal/usecase"
)

func newProductsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage products",
	}

	var search string
	var categoryID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.ProductFilter{Search: search, CategoryID: categoryID}
			if err := app.Catalog.List(cmd.Context(), filter); err != nil {
				return err
			}
			for _, product := range app.Catalog.Products() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f€\tstock %d\t%s\n",
					product.ID, product.Name, product.Price, product.Stock, product.SellerName)
			}
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by name")
	list.Flags().IntVar(&categoryID, "category", 0, "filter by category id")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			product, err := app.Catalog.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%.2f€ · stock %d\n%s\n",
				product.Name, product.Price, product.Stock, product.Description)
			return nil
		},
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your own products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.ListMine(cmd.Context()); err != nil {
				return err
			}
			for _, product := range app.Catalog.Products() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f€\tstock %d\n",
					product.ID, product.Name, product.Price, product.Stock)
			}
			return nil
		},
	}

	var input usecase.ProductInput
	var imagePath string
	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagePath != "" {
				raw, err := os.ReadFile(imagePath)
				if err != nil {
					return err
				}
				input.Image = raw
				input.ImageName = filepath.Base(imagePath)
			}
			product, err := app.Catalog.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto publicado: %d\n", product.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Name, "name", "", "product name")
	create.Flags().StringVar(&input.Description, "description", "", "description")
	create.Flags().Float64Var(&input.Price, "price", 0, "unit price")
	create.Flags().IntVar(&input.Stock, "stock", 0, "units in stock")
	create.Flags().IntVar(&input.CategoryID, "category", 0, "category id")
	create.Flags().StringVar(&imagePath, "image", "", "image file")

	remove := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete one of your products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Producto eliminado")
			return nil
		},
	}

	cmd.AddCommand(list, get, mine, create, remove)
	return cmd
}

func newCategoriesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse and administer categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Categories.Load(cmd.Context()); err != nil {
				return err
			}
			for _, row := range app.Categories.Flatten() {
				for i := 0; i < row.Depth; i++ {
					fmt.Fprint(cmd.OutOrStdout(), "  ")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", row.ID, row.Name)
			}
			return nil
		},
	}

	var parentID int
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := app.Categories.Create(cmd.Context(), args[0], parentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categoría creada: %d\n", category.ID)
			return nil
		},
	}
	add.Flags().IntVar(&parentID, "parent", 0, "parent category id")

	cmd.AddCommand(list, add)
	return cmd
}
