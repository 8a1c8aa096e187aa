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

var checkJSON bool

// checkFile is the JSON shape accepted by the check command.
type checkFile struct {
	Conversations []domain.SyncCandidate `json:"conversations"`
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Decide which conversations need re-syncing",
	Long: `Reads a JSON file of the form {"conversations": [...]} listing
remote conversations and their updated_at timestamps, compares each
against the local archive and prints the ones that should be fetched
again. When freshness cannot be established the conversation is
included, so nothing is silently missed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the plan as JSON")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if syncPlanner == nil {
		return errors.New("sync planner not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading candidates file: %w", err)
	}

	var in checkFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parsing candidates file: %w", err)
	}

	plan, err := syncPlanner.Plan(context.Background(), in.Conversations)
	if err != nil {
		return fmt.Errorf("planning sync: %w", err)
	}

	if checkJSON {
		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Checked %d conversations, %d need sync\n", plan.TotalChecked, plan.TotalNeedsSync)
	for _, id := range plan.NeedsSync {
		cmd.Printf("  %s\n", id)
	}
	return nil
}
