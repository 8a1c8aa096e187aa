package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keepsake-labs/chatvault/internal/core/domain"
)

var importSource string

// importFile is the JSON shape accepted by the import command.
type importFile struct {
	Conversations []domain.ConversationPayload `json:"conversations"`
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import conversations from a JSON export",
	Long: `Imports conversations from a JSON file of the form
{"conversations": [...]}. Re-importing a conversation updates it in
place; its messages are replaced with the imported set.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importSource, "source", "s", "", "override the source recorded for every conversation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	var in importFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}

	report, err := ingestService.Import(context.Background(), importSource, in.Conversations)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Batch %s: %d imported, %d failed\n", report.BatchID, report.Imported, report.Failed)
	if report.Failed > 0 {
		cmd.Println("Run with --verbose to see why conversations were skipped.")
	}
	return nil
}
