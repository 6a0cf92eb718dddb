package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/notedex/notedex-cli/internal/core/domain"
	"github.com/notedex/notedex-cli/internal/core/services"
	"github.com/notedex/notedex-cli/internal/logger"
)

var (
	queryLimit int
	queryJSON  bool
	queryDir   string
)

// Query output styles.
var (
	sourceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the indexed notes",
	Long: `Embeds the query text and returns the most similar indexed snippets,
ranked by cosine similarity.

The index lives in process memory, so a plain "notedex query" only works
inside a long-running process such as "notedex mcp serve". For one-shot
use, pass --dir to index a directory and query it in the same run.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "maximum number of results (default from config, then 3)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().StringVar(&queryDir, "dir", "", "index this directory before querying")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx := cmd.Context()

	if queryDir != "" {
		summary, err := indexService.Rebuild(ctx, queryDir)
		if err != nil {
			return fmt.Errorf("index failed: %w", err)
		}
		logger.Info("%s", summary)
	}

	limit := queryLimit
	if limit <= 0 {
		limit = configStore.GetInt("query.limit")
	}
	if limit <= 0 {
		limit = services.DefaultLimit
	}

	results, err := queryService.Query(ctx, text, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotIndexed) {
			return errors.New("no index built yet; run \"notedex index <dir>\" in a long-running session or pass --dir")
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}
	return outputQueryText(cmd, results)
}

func outputQueryJSON(cmd *cobra.Command, results []domain.QueryResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, results []domain.QueryResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range results {
		header := fmt.Sprintf("[%d] %s", i+1, results[i].Source)
		score := fmt.Sprintf("(%.4f)", results[i].Score)
		cmd.Printf("%s %s\n", sourceStyle.Render(header), scoreStyle.Render(score))
		cmd.Printf("    %s\n\n", results[i].Snippet)
	}
	return nil
}
