package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/notedex/notedex-cli/internal/adapters/driven/walker"
	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/logger"
)

var (
	indexWatch bool
	indexExts  []string
)

var indexCmd = &cobra.Command{
	Use:   "index [directory]",
	Short: "Build the semantic index from a directory",
	Long: `Scans the directory for text files (.md preferred, .txt as fallback),
chunks and embeds their content and builds the in-memory index.

With --watch the command keeps running and rebuilds the index whenever a
matching file is created, changed or removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "rebuild on file changes")
	indexCmd.Flags().StringSliceVar(&indexExts, "ext", nil, "extension preference order (default .md,.txt)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx := cmd.Context()

	if len(indexExts) > 0 {
		overrideExtensions(indexExts)
	}

	summary, err := indexService.Rebuild(ctx, dir)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	cmd.Printf("%s\n", summary)

	if !indexWatch {
		return nil
	}
	return watchAndRebuild(ctx, cmd, dir)
}

// watchAndRebuild blocks, rebuilding the index after each debounced batch
// of file changes, until interrupted.
func watchAndRebuild(ctx context.Context, cmd *cobra.Command, dir string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w, err := walker.NewWatcher(watchExtensions())
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	changes, err := w.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", dir)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case path, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Change detected: %s", path)
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					<-timerC
				}
				timer.Reset(debounceInterval)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			summary, err := indexService.Rebuild(ctx, dir)
			if err != nil {
				// A rebuild already running means the changes are
				// stale against an index that is being replaced
				// anyway; everything else is worth reporting.
				if errors.Is(err, domain.ErrRebuildInProgress) {
					continue
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", err)
				continue
			}
			cmd.Printf("%s\n", summary)
		}
	}
}
