package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently updated conversations",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "maximum number of conversations (default 10)")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Recent(context.Background(), recentLimit)
	if err != nil {
		return fmt.Errorf("listing recent conversations: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("Archive is empty.")
		return nil
	}

	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.ExternalID
		}
		cmd.Printf("  %-6d %s  %s (%s, %d messages)\n",
			r.ID, r.UpdatedAt.Format("2006-01-02 15:04"), title, r.Source, r.MessageCount)
	}
	return nil
}
