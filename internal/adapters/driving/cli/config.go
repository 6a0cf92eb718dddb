package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change notedex configuration.

Keys use dot notation, e.g.:
  embedding.provider   ollama or openai
  embedding.model      embedding model name
  chunk.size           chunk window size in characters
  chunk.overlap        overlap between consecutive chunks
  query.limit          default number of query results`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Config file: %s\n\n", configStore.Path())
	for _, key := range []string{
		"embedding.provider",
		"embedding.model",
		"embedding.base_url",
		"embedding.dimensions",
		"chunk.size",
		"chunk.overlap",
		"index.extensions",
		"query.limit",
	} {
		if val, ok := configStore.Get(key); ok {
			cmd.Printf("  %-24s %v\n", key, val)
		} else {
			cmd.Printf("  %-24s (default)\n", key)
		}
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	// Store integers as integers so GetInt works on reload.
	var value any = raw
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}
