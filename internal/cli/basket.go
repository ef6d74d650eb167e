package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/session"
)

var basketCmd = &cobra.Command{
	Use:   "basket",
	Short: "Show and edit your basket",
	RunE:  runBasketShow,
}

var basketAddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Add an item to the basket",
	Args:  cobra.ExactArgs(1),
	RunE:  runBasketAdd,
}

var basketSetCmd = &cobra.Command{
	Use:   "set <item-id> <quantity>",
	Short: "Set the quantity of a basket line",
	Long: `Set the quantity of a basket line. Quantity is clamped to the
stock recorded when the item was added; zero removes the line.`,
	Args: cobra.ExactArgs(2),
	RunE: runBasketSet,
}

var basketRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line from the basket",
	Args:  cobra.ExactArgs(1),
	RunE:  runBasketRemove,
}

var basketClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the basket",
	RunE:  runBasketClear,
}

func init() {
	basketAddCmd.Flags().Int("quantity", 1, "Quantity to add")

	basketCmd.AddCommand(basketAddCmd)
	basketCmd.AddCommand(basketSetCmd)
	basketCmd.AddCommand(basketRemoveCmd)
	basketCmd.AddCommand(basketClearCmd)
}

func runBasketShow(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	lines, err := env.baskets.Lines()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Println("Basket is empty")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			l.ProductID, l.ProductName,
			money.Format(l.UnitPriceCents), l.Quantity,
			money.Format(l.SubtotalCents()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total, err := env.baskets.Total()
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal: %s\n", money.Format(total))
	return nil
}

func runBasketAdd(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	qty, _ := cmd.Flags().GetInt("quantity")

	// Snapshot price and stock at add time; later edits clamp against
	// this stock, not a fresh fetch.
	item, err := env.client.Item(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetch item %d: %w", id, err)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%s is out of stock", item.Name)
	}

	product := basket.Product{
		ID:             strconv.FormatInt(item.ID, 10),
		Name:           item.Name,
		UnitPriceCents: item.CostCents(),
		Stock:          item.Quantity,
	}
	if err := env.baskets.Add(product, qty); err != nil {
		return err
	}

	_ = env.logger.Append(log.LogEvent{Event: log.EventBasketAdd, ProductID: product.ID, Quantity: qty})
	fmt.Printf("Added %s\n", item.Name)
	return nil
}

func runBasketSet(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	if err := env.baskets.SetQuantity(args[0], qty); err != nil {
		return err
	}

	_ = env.logger.Append(log.LogEvent{Event: log.EventBasketSetQty, ProductID: args[0], Quantity: qty})
	return nil
}

func runBasketRemove(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	if err := env.baskets.Remove(args[0]); err != nil {
		return err
	}

	_ = env.logger.Append(log.LogEvent{Event: log.EventBasketRemove, ProductID: args[0]})
	return nil
}

func runBasketClear(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	if err := env.baskets.Clear(); err != nil {
		return err
	}

	_ = env.logger.Append(log.LogEvent{Event: log.EventBasketClear})
	fmt.Println("Basket cleared")
	return nil
}
