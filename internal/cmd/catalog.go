package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
)

func newCatalogCommand(r *root) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the wishlist and gift catalog",
		Long: `Browse wishlist categories and products, the gift catalog, present
categories and gift orders. Deleting catalog entries and updating order
delivery status requires content moderation rights.`,
	}

	catalogCmd.AddCommand(
		newCatalogListCommand(r, "categories", "List wishlist categories", func(cmd *cobra.Command, app *App) (any, error) {
			cats, err := app.Client.ListWishlistCategories(cmd.Context())
			return categoriesView(cats), err
		}),
		newCatalogProductsCommand(r),
		newCatalogGiftsCommand(r),
		newCatalogListCommand(r, "presents", "List present categories", func(cmd *cobra.Command, app *App) (any, error) {
			cats, err := app.Client.ListPresentCategories(cmd.Context())
			return presentCategoriesView(cats), err
		}),
		newCatalogOrdersCommand(r),
		newCatalogDeleteCommand(r, "delete-product", "wishlist product", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.DeleteWishlistProduct(cmd.Context(), id)
		}),
		newCatalogDeleteCommand(r, "delete-gift", "gift", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.DeleteGift(cmd.Context(), id)
		}),
		newCatalogDeleteCommand(r, "delete-present-category", "present category", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.DeletePresentCategory(cmd.Context(), id)
		}),
		newCatalogOrderStatusCommand(r),
	)
	return catalogCmd
}

// newCatalogListCommand builds a read-only listing open to every operator.
func newCatalogListCommand(r *root, use, short string, list func(cmd *cobra.Command, app *App) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			if _, err := app.RequireSession(cmd.Context()); err != nil {
				return err
			}
			view, err := list(cmd, app)
			if err != nil {
				return err
			}
			return app.Render(view)
		}),
	}
}

func newCatalogProductsCommand(r *root) *cobra.Command {
	var category string
	cmd := newCatalogListCommand(r, "products", "List wishlist products", func(cmd *cobra.Command, app *App) (any, error) {
		products, err := app.Client.ListWishlistProducts(cmd.Context(), category)
		return productsView(products), err
	})
	cmd.Flags().StringVar(&category, "category", "", "only products in this category id")
	return cmd
}

func newCatalogGiftsCommand(r *root) *cobra.Command {
	var all bool
	cmd := newCatalogListCommand(r, "gifts", "List the gift catalog", func(cmd *cobra.Command, app *App) (any, error) {
		gifts, err := app.Client.ListGifts(cmd.Context(), all)
		return giftsView(gifts), err
	})
	cmd.Flags().BoolVar(&all, "all", false, "include inactive gifts")
	return cmd
}

func newCatalogOrdersCommand(r *root) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List gift orders",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			s, err := backend.ParseOrderStatus(status, true)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(cmd.Context()); err != nil {
				return err
			}
			orders, err := app.Client.ListGiftOrders(cmd.Context(), s)
			if err != nil {
				return err
			}
			return app.Render(ordersView(orders))
		}),
	}
	cmd.Flags().StringVar(&status, "status", "all", "status: all, pending, processing, delivered or cancelled")
	return cmd
}

func newCatalogDeleteCommand(r *root, use, noun string, remove func(app *App, cmd *cobra.Command, id string) error) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			ctx := cmd.Context()
			if _, err := app.Require(ctx, authz.PermManageContent); err != nil {
				return err
			}
			if err := app.Confirm(ctx, yes, fmt.Sprintf("Delete %s %s?", noun, args[0])); err != nil {
				return err
			}
			if err := remove(app, cmd, args[0]); err != nil {
				return err
			}
			app.Logger.Info("catalog entry deleted", "kind", noun, "id", args[0])
			return app.Notice(fmt.Sprintf("Deleted %s %s", noun, args[0]), map[string]string{"id": args[0], "deleted": "true"})
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newCatalogOrderStatusCommand(r *root) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "set-order-status <order-id>",
		Short:   "Update the delivery status of a gift order",
		Example: `  adminctl catalog set-order-status order-1 --status delivered`,
		Args:    cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			s, err := backend.ParseOrderStatus(status, false)
			if err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermManageContent); err != nil {
				return err
			}
			if err := app.Client.SetGiftOrderStatus(cmd.Context(), args[0], s); err != nil {
				return err
			}
			return app.Notice(fmt.Sprintf("Order %s is now %s", args[0], s), map[string]string{"id": args[0], "status": string(s)})
		}),
	}
	cmd.Flags().StringVar(&status, "status", "", "status: pending, processing, delivered or cancelled")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
