package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a conversation with its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output the conversation as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid conversation id %q", args[0])
	}

	conv, err := searchService.Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("getting conversation: %w", err)
	}

	if getJSON {
		data, err := json.MarshalIndent(conv, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	title := conv.Title
	if title == "" {
		title = conv.ExternalID
	}
	cmd.Printf("%s (%s)\n", title, conv.Source)
	cmd.Printf("created %s, updated %s, %d messages\n",
		conv.CreatedAt.Format("2006-01-02 15:04"),
		conv.UpdatedAt.Format("2006-01-02 15:04"),
		conv.MessageCount)
	cmd.Println()

	for _, msg := range conv.Messages {
		cmd.Printf("[%s] %s\n", msg.Role, msg.Content)
	}
	return nil
}
