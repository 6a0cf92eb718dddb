package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/notedex/notedex-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index state and embedding backend health",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Config:    %s\n", configStore.Path())
	cmd.Printf("Embedding: %s (%d dimensions)\n", embedder.ModelName(), embedder.Dimensions())

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := embedder.Ping(ctx); err != nil {
		cmd.Printf("Backend:   unreachable (%v)\n", err)
	} else {
		cmd.Printf("Backend:   ok\n")
	}

	state := indexService.State()
	cmd.Printf("Index:     %s\n", state)

	if state == domain.IndexStateEmpty {
		return nil
	}
	snapshot, err := indexService.Snapshot()
	if err != nil {
		// Building with no prior snapshot published yet.
		return nil
	}
	cmd.Printf("           %d entries from %d documents, dimension %d, built %s\n",
		snapshot.Len(), snapshot.Documents, snapshot.Dimension,
		snapshot.BuiltAt.Format(time.RFC3339))
	return nil
}
