package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
)

var (
	searchSource string
	searchFrom   string
	searchTo     string
	searchLimit  int
	searchOffset int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived conversations",
	Long: `Performs a full-text search over conversation titles and message
text. Matches are returned newest first with a highlighted snippet.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchSource, "source", "", "only match conversations from this source")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "only match conversations created at or after this time")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "only match conversations created at or before this time")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default 20)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	limit := searchLimit
	if limit == 0 && configStore != nil {
		limit = configStore.GetInt("search_limit")
	}

	opts := domain.SearchOptions{
		Source:      searchSource,
		CreatedFrom: searchFrom,
		CreatedTo:   searchTo,
		Limit:       limit,
		Offset:      searchOffset,
	}

	page, err := searchService.Search(context.Background(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, page)
	}
	return outputSearchTable(cmd, page)
}

func outputSearchJSON(cmd *cobra.Command, page *domain.SearchPage) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, page *domain.SearchPage) error {
	if len(page.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results %d-%d of %d:\n", page.Offset+1, page.Offset+len(page.Results), page.TotalCount)
	cmd.Println()
	for i, r := range page.Results {
		title := r.Title
		if title == "" {
			title = r.ExternalID
		}
		cmd.Printf("  [%d] %s (%s, %d messages)\n", page.Offset+i+1, title, r.Source, r.MessageCount)
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Printf("      id=%d updated=%s\n", r.ID, r.UpdatedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}
