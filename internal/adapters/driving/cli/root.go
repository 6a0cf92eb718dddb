// Package cli provides the command-line interface for notedex.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/notedex/notedex-cli/internal/adapters/driven/chunker"
	configfile "github.com/notedex/notedex-cli/internal/adapters/driven/config/file"
	"github.com/notedex/notedex-cli/internal/adapters/driven/embedding/ollama"
	"github.com/notedex/notedex-cli/internal/adapters/driven/embedding/openai"
	"github.com/notedex/notedex-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/notedex/notedex-cli/internal/adapters/driven/walker"
	"github.com/notedex/notedex-cli/internal/core/ports/driven"
	"github.com/notedex/notedex-cli/internal/core/services"
	"github.com/notedex/notedex-cli/internal/logger"
)

// version is the application version, overridable at build time with
// -ldflags "-X .../cli.version=...".
var version = "0.1.0"

// Shared services wired once in initServices and used by all commands.
var (
	configStore  driven.ConfigStore
	embedder     driven.EmbeddingService
	vectorStore  driven.VectorStore
	extensions   []string
	indexService *services.IndexManager
	queryService *services.QueryEngine
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "notedex",
	Short: "Semantic search over a local notes directory",
	Long: `notedex builds an in-memory semantic index over the text files
(.md, .txt) in a directory and answers free-text queries against it.

The index lives in process memory only. Long-running usage goes through
"notedex mcp serve" or "notedex index --watch"; one-shot queries can pass
--dir to index and query in a single invocation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		// The version command must work without a config file or a
		// reachable embedding backend.
		if cmd.Name() == "version" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices builds the adapter and service graph from configuration.
func initServices() error {
	if indexService != nil {
		return nil
	}

	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = store

	embedder, err = newEmbedder(store)
	if err != nil {
		return err
	}

	extensions = store.GetStringSlice("index.extensions")

	vectorStore = memory.NewStore()
	wireServices()

	return nil
}

// wireServices (re)builds the service graph for the current extension
// list. Safe to call again before any rebuild has run.
func wireServices() {
	chunkSize := configStore.GetInt("chunk.size")
	chunkOverlap := chunker.DefaultOverlap
	if v, ok := configStore.Get("chunk.overlap"); ok {
		if n, isInt := v.(int64); isInt {
			chunkOverlap = int(n)
		}
	}

	indexService = services.NewIndexManager(
		walker.NewDirectoryWalker(),
		chunker.NewWindowChunker(chunkSize, chunkOverlap),
		embedder,
		vectorStore,
		extensions,
	)
	queryService = services.NewQueryEngine(indexService, embedder, vectorStore)
}

// overrideExtensions replaces the configured extension order for this
// invocation.
func overrideExtensions(exts []string) {
	extensions = exts
	wireServices()
}

// newEmbedder creates the embedding service named by embedding.provider.
// Unset defaults to ollama, matching local-first usage.
func newEmbedder(store driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := store.GetString("embedding.provider")
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           store.GetString("embedding.base_url"),
			Model:             store.GetString("embedding.model"),
			Dimensions:        store.GetInt("embedding.dimensions"),
			RequestsPerSecond: float64(store.GetInt("embedding.requests_per_second")),
		}), nil

	case "openai":
		apiKey := store.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     apiKey,
			BaseURL:    store.GetString("embedding.base_url"),
			Model:      store.GetString("embedding.model"),
			Dimensions: store.GetInt("embedding.dimensions"),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embedder: %w", err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider %q (want ollama or openai)", provider)
	}
}

// watchExtensions returns the active extension order, falling back to
// the index defaults.
func watchExtensions() []string {
	if len(extensions) > 0 {
		return extensions
	}
	return services.DefaultExtensions
}

// debounceInterval batches watch events before triggering a rebuild, so
// an editor save burst causes one rebuild instead of many.
const debounceInterval = 2 * time.Second
