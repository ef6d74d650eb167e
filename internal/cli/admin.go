// admin.go groups the store management commands. Every subcommand runs
// the route guard for the admin role first.
package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/session"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Store management",
}

var adminItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the catalog as the store sees it",
	RunE:  runAdminItems,
}

var adminItemAddCmd = &cobra.Command{
	Use:   "add-item",
	Short: "Create a catalog item",
	RunE:  runAdminItemAdd,
}

var adminItemUpdateCmd = &cobra.Command{
	Use:   "update-item <item-id>",
	Short: "Replace a catalog item's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminItemUpdate,
}

var adminItemDeleteCmd = &cobra.Command{
	Use:   "delete-item <item-id>",
	Short: "Remove a catalog item",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminItemDelete,
}

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List every order placed in the store",
	RunE:  runAdminOrders,
}

var adminReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List every review",
	RunE:  runAdminReviews,
}

var adminReviewDeleteCmd = &cobra.Command{
	Use:   "delete-review <review-id>",
	Short: "Remove a review",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminReviewDelete,
}

var adminContactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contact form submissions",
	RunE:  runAdminContacts,
}

var adminContactDeleteCmd = &cobra.Command{
	Use:   "delete-contact <contact-id>",
	Short: "Remove a contact form submission",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminContactDelete,
}

var adminProfileUpdateCmd = &cobra.Command{
	Use:   "update-profile",
	Short: "Update the admin profile",
	RunE:  runAdminProfileUpdate,
}

func init() {
	addItemFlags(adminItemAddCmd)
	addItemFlags(adminItemUpdateCmd)
	_ = adminItemAddCmd.MarkFlagRequired("name")
	_ = adminItemAddCmd.MarkFlagRequired("cost")

	adminProfileUpdateCmd.Flags().String("username", "", "New display name")
	adminProfileUpdateCmd.Flags().String("email", "", "New email")

	adminCmd.AddCommand(adminItemsCmd)
	adminCmd.AddCommand(adminItemAddCmd)
	adminCmd.AddCommand(adminItemUpdateCmd)
	adminCmd.AddCommand(adminItemDeleteCmd)
	adminCmd.AddCommand(adminOrdersCmd)
	adminCmd.AddCommand(adminReviewsCmd)
	adminCmd.AddCommand(adminReviewDeleteCmd)
	adminCmd.AddCommand(adminContactsCmd)
	adminCmd.AddCommand(adminContactDeleteCmd)
	adminCmd.AddCommand(adminProfileUpdateCmd)
}

func addItemFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Item name")
	cmd.Flags().String("description", "", "Item description")
	cmd.Flags().String("cost", "", "Unit price, e.g. 19.99")
	cmd.Flags().Int("stock", 0, "Units in stock")
	cmd.Flags().String("category", "", "Item category")
	cmd.Flags().String("image", "", "Path to a local image file")
}

// adminEnv builds the environment and runs the admin guard in one step.
func adminEnv() (*env, error) {
	e, err := newEnv()
	if err != nil {
		return nil, err
	}
	if err := e.requireRole(session.RoleAdmin); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func runAdminItems(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	items, err := env.client.AdminItems(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tIMAGE")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.Name, money.Format(it.CostCents()), it.Quantity, it.Category, it.ImageName)
	}
	return w.Flush()
}

func itemInputFromFlags(cmd *cobra.Command) (api.ItemInput, error) {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	cost, _ := cmd.Flags().GetString("cost")
	stock, _ := cmd.Flags().GetInt("stock")
	category, _ := cmd.Flags().GetString("category")
	image, _ := cmd.Flags().GetString("image")

	cents, err := money.Parse(cost)
	if err != nil {
		return api.ItemInput{}, fmt.Errorf("invalid cost %q: %w", cost, err)
	}
	return api.ItemInput{
		Name:        name,
		Description: description,
		CostCents:   cents,
		Quantity:    stock,
		Category:    category,
		ImagePath:   image,
	}, nil
}

func runAdminItemAdd(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	in, err := itemInputFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := env.client.AddItem(cmd.Context(), in); err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	fmt.Printf("Added %s\n", in.Name)
	return nil
}

func runAdminItemUpdate(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	in, err := itemInputFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := env.client.UpdateItem(cmd.Context(), id, in); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	fmt.Printf("Updated item %d\n", id)
	return nil
}

func runAdminItemDelete(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	if err := env.client.DeleteItem(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	fmt.Printf("Deleted item %d\n", id)
	return nil
}

func runAdminOrders(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	orders, err := env.client.AllOrders(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch orders: %w", err)
	}
	return printOrders(cmd, orders)
}

func runAdminReviews(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	reviews, err := env.client.AllReviews(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch reviews: %w", err)
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tRATING\tUSER\tTEXT")
	for _, r := range reviews {
		fmt.Fprintf(w, "%d\t%d\t%d/5\t%s\t%s\n", r.ID, r.ItemID, r.Rating, r.Username, r.ReviewText)
	}
	return w.Flush()
}

func runAdminReviewDelete(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid review id %q", args[0])
	}
	if err := env.client.DeleteReview(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	fmt.Printf("Deleted review %d\n", id)
	return nil
}

func runAdminContacts(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	messages, err := env.client.ContactMessages(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch contacts: %w", err)
	}
	if len(messages) == 0 {
		fmt.Println("No messages")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tMESSAGE")
	for _, m := range messages {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.Message)
	}
	return w.Flush()
}

func runAdminContactDelete(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id %q", args[0])
	}
	if err := env.client.DeleteContactMessage(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	fmt.Printf("Deleted message %d\n", id)
	return nil
}

func runAdminProfileUpdate(cmd *cobra.Command, args []string) error {
	env, err := adminEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	if username == "" && email == "" {
		return fmt.Errorf("nothing to update; pass --username or --email")
	}

	current, err := env.client.AdminProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	if username == "" {
		username = current.Username
	}
	if email == "" {
		email = current.Email
	}

	if err := env.client.UpdateAdminProfile(cmd.Context(), api.Profile{Username: username, Email: email}); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	fmt.Println("Profile updated")
	return nil
}
