package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
)

var productsCmd = &cobra.Command{
	Use:   "products [id]",
	Short: "Browse the catalog",
	Long: `Browse the catalog. With no arguments the full listing is shown;
pass an item id for detail including reviews. Use --category or
--search to narrow the listing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProducts,
}

func init() {
	productsCmd.Flags().String("category", "", "Only items in this category")
	productsCmd.Flags().String("search", "", "Only items matching this text")
}

func runProducts(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		return showProduct(cmd, env, id)
	}

	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")

	var items []api.Item
	switch {
	case search != "":
		items, err = env.client.SearchItems(cmd.Context(), search)
	case category != "":
		items, err = env.client.ItemsByCategory(cmd.Context(), category)
	default:
		items, err = env.client.Items(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			it.ID, it.Name, money.Format(it.CostCents()), it.Quantity, it.Category)
	}
	return w.Flush()
}

func showProduct(cmd *cobra.Command, env *env, id int64) error {
	item, err := env.client.Item(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetch item %d: %w", id, err)
	}

	fmt.Printf("%s\n", item.Name)
	fmt.Printf("  Price:    %s\n", money.Format(item.CostCents()))
	fmt.Printf("  Stock:    %d\n", item.Quantity)
	fmt.Printf("  Category: %s\n", item.Category)
	fmt.Printf("  Image:    %s\n", env.client.ImageURL(item.ImageName))
	if item.Description != "" {
		fmt.Printf("  %s\n", item.Description)
	}

	reviews, err := env.client.ItemReviews(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetch reviews: %w", err)
	}
	if len(reviews) > 0 {
		fmt.Printf("\nReviews:\n")
		for _, r := range reviews {
			fmt.Printf("  [%d/5] %s: %s\n", r.Rating, r.Username, r.ReviewText)
		}
	}
	return nil
}
