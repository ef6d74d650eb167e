package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/session"
)

var ordersCmd = &cobra.Command{
	Use:   "orders [id]",
	Short: "Show your order history",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOrders,
}

func runOrders(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	if len(args) == 1 {
		order, err := env.client.Order(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch order %s: %w", args[0], err)
		}
		fmt.Printf("Order %s\n", order.ID)
		fmt.Printf("  Item:    %s x%d\n", order.ItemName, order.Quantity)
		fmt.Printf("  Total:   %s\n", money.Format(money.FromFloat(order.Total)))
		fmt.Printf("  Payment: %s\n", order.PaymentID)
		fmt.Printf("  Status:  %s\n", order.Status)
		fmt.Printf("  Placed:  %s\n", order.CreatedAt)
		return nil
	}

	orders, err := env.client.MyOrders(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch orders: %w", err)
	}
	return printOrders(cmd, orders)
}

func printOrders(cmd *cobra.Command, orders []api.Order) error {
	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tQTY\tTOTAL\tSTATUS\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID, o.ItemName, o.Quantity,
			money.Format(money.FromFloat(o.Total)), o.Status, o.CreatedAt)
	}
	return w.Flush()
}
