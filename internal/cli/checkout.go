package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/checkout"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/session"
	"github.com/shopverse-dev/shopverse/internal/ui"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Pay for the basket",
	Long: `Pay for the basket. Each line becomes its own payment: the remote
order is created, the gateway prompts for the receipt, and the payment
is verified. A failed line never blocks the others. The basket is
cleared once every order has been created, whether or not the payments
are confirmed yet.`,
	RunE: runCheckout,
}

func runCheckout(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	gateway := checkout.NewHostedGateway(env.cfg.Checkout.GatewayKey, os.Stdin, cmd.OutOrStdout())
	orch := checkout.New(env.client, gateway, env.baskets, nil, env.logger, 0)

	// The gateway owns stdin for receipt prompts, so the progress
	// display runs in transcript mode.
	progress := ui.NewProgressDisplay(false)
	orch.OnUpdate(progress.Observe)
	progress.Start()

	if _, err := orch.Run(cmd.Context()); err != nil {
		return err
	}

	// Orders exist now; block for the receipts so the summary can show
	// each line's final state. Skipped prompts stay awaiting the gateway.
	gateway.Wait()
	progress.Finish()

	attempts := orch.Attempts()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nITEM\tQTY\tAMOUNT\tSTATUS\tDETAIL")
	for _, a := range attempts {
		detail := a.Reason
		if a.Status == checkout.StatusConfirmed {
			detail = "payment " + a.PaymentRef
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			a.ProductName, a.Quantity, money.Format(a.SubtotalCents), a.Status, detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nBasket cleared; see your purchases with: shopverse orders")
	return nil
}
