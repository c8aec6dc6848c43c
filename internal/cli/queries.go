package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revq/revq/internal/review"
)

// Query builders are separated from the commands so the exact query
// strings stay unit-testable.

func ownedQuery(user string) string {
	return "status:open owner:" + user
}

func ownedTitle(user string) string {
	if user == "self" {
		return "Own reviews"
	}
	return "Reviews owned by " + user
}

func incomingQuery(user string) string {
	return "reviewer:" + user + " status:open"
}

func mergedQuery(user string, days int) string {
	return fmt.Sprintf("status:merged -age:%dd owner:%s", days, user)
}

var ownedCmd = &cobra.Command{
	Use:     "owned",
	Aliases: []string{"o"},
	Short:   "Changes originated from current user (implicit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(review.ViewOwned,
			func(a *app) string { return ownedQuery(a.user) },
			func(a *app) string { return ownedTitle(a.user) })
	},
}

var incomingCmd = &cobra.Command{
	Use:     "incoming",
	Aliases: []string{"i"},
	Short:   "Incoming reviews (not mine)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(review.ViewIncoming,
			func(a *app) string { return incomingQuery(a.user) },
			func(a *app) string { return "Incoming reviews" })
	},
}

var flagMergedAge int

var mergedCmd = &cobra.Command{
	Use:     "merged",
	Aliases: []string{"m"},
	Short:   "Merged in the last number of days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(review.ViewMerged,
			func(a *app) string { return mergedQuery(a.user, flagMergedAge) },
			func(a *app) string { return fmt.Sprintf("Merged reviews (%dd)", flagMergedAge) })
	},
}

func init() {
	mergedCmd.Flags().IntVar(&flagMergedAge, "age", 1, "Number of days to look back, adds -age:NUM")
}
