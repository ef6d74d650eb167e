package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/cleanup"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show or prune the local event log",
	Long: `Show the locally recorded activity: logins, basket changes, and
checkout progress. --prune-days and --keep rewrite the log, dropping
older entries.`,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().Int("limit", 20, "Events to show, newest last")
	activityCmd.Flags().Int("prune-days", 0, "Drop events older than this many days")
	activityCmd.Flags().Int("keep", 0, "Keep only this many newest events")
	activityCmd.Flags().Bool("dry-run", false, "Report what pruning would drop without writing")
}

func runActivity(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	pruneDays, _ := cmd.Flags().GetInt("prune-days")
	keep, _ := cmd.Flags().GetInt("keep")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if pruneDays > 0 {
		removed, err := cleanup.PruneByAge(env.logger.Path(), pruneDays, dryRun)
		if err != nil {
			return err
		}
		reportPrune(removed, dryRun)
		return nil
	}
	if keep > 0 {
		removed, err := cleanup.PruneKeepRecent(env.logger.Path(), keep, dryRun)
		if err != nil {
			return err
		}
		reportPrune(removed, dryRun)
		return nil
	}

	events, err := env.logger.ReadAll()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No recorded activity")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tEVENT\tDETAIL")
	for _, ev := range events {
		detail := ev.ProductName
		switch {
		case ev.Error != "":
			detail = ev.Error
		case ev.Identity != "":
			detail = ev.Identity
		case detail == "" && ev.ProductID != "":
			detail = ev.ProductID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ev.Time.Local().Format("2006-01-02 15:04:05"), ev.Event, detail)
	}
	return w.Flush()
}

func reportPrune(removed int, dryRun bool) {
	if dryRun {
		fmt.Printf("Would remove %d events\n", removed)
		return
	}
	fmt.Printf("Removed %d events\n", removed)
}
