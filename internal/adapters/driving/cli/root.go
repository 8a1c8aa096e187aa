// Package cli implements the command-line interface for chatvault.
// Commands are thin adapters: they parse flags and files, call the
// driving port services, and format output.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keepsake-labs/chatvault/internal/adapters/driven/config/file"
	"github.com/keepsake-labs/chatvault/internal/adapters/driven/storage/sqlite"
	"github.com/keepsake-labs/chatvault/internal/core/ports/driving"
	"github.com/keepsake-labs/chatvault/internal/core/services"
	"github.com/keepsake-labs/chatvault/internal/logger"
)

var (
	verbose bool
	dataDir string

	// Wired in initServices, shared by all subcommands.
	store         *sqlite.Store
	configStore   *file.ConfigStore
	ingestService driving.Ingestor
	syncPlanner   driving.SyncPlanner
	searchService driving.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "chatvault",
	Short: "Archive and search AI chat conversations",
	Long: `chatvault imports conversation transcripts exported from AI chat
services, stores them in a local SQLite database and makes them
searchable with full-text queries.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.chatvault/data)")
}

// initServices opens the store and wires the core services.
// Runs once before any subcommand.
func initServices(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg

	dir := dataDir
	if dir == "" {
		dir = configStore.GetString("data_dir")
	}

	s, err := sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	store = s
	logger.Debug("Store opened at %s", store.Path())

	convStore := store.ConversationStore()
	searchStore := store.SearchStore()

	ingestService = services.NewIngestService(convStore)
	syncPlanner = services.NewPlannerService(convStore)
	searchService = services.NewSearchService(convStore, searchStore)

	return nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if store != nil {
			store.Close() //nolint:errcheck // best effort on shutdown
		}
	}()
	return rootCmd.Execute()
}
