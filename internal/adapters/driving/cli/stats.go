package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	stats, err := searchService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	cmd.Printf("Conversations: %d\n", stats.TotalConversations)
	cmd.Printf("Messages:      %d\n", stats.TotalMessages)
	if stats.EarliestCreatedAt != nil && stats.LatestCreatedAt != nil {
		cmd.Printf("Range:         %s to %s\n",
			stats.EarliestCreatedAt.Format("2006-01-02"),
			stats.LatestCreatedAt.Format("2006-01-02"))
	}

	if len(stats.BySource) > 0 {
		cmd.Println()
		cmd.Println("By source:")
		sources := make([]string, 0, len(stats.BySource))
		for source := range stats.BySource {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		for _, source := range sources {
			cmd.Printf("  %-12s %d\n", source, stats.BySource[source])
		}
	}
	return nil
}
