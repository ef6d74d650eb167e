package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/session"
)

var reviewsCmd = &cobra.Command{
	Use:   "review <item-id> <rating> <text...>",
	Short: "Review a product you bought",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireRole(session.RoleShopper); err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be 1 to 5")
	}

	req := api.AddReviewRequest{
		ItemID:     itemID,
		Rating:     rating,
		ReviewText: strings.Join(args[2:], " "),
	}
	if err := env.client.AddReview(cmd.Context(), req); err != nil {
		return fmt.Errorf("post review: %w", err)
	}

	fmt.Println("Review posted")
	return nil
}
