package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/notedex/notedex-cli/internal/adapters/driven/config/file"
	"github.com/notedex/notedex-cli/internal/core/services"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"index", "query", "status", "config", "mcp", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestNewEmbedder_DefaultsToOllama(t *testing.T) {
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	svc, err := newEmbedder(store)

	require.NoError(t, err)
	assert.Equal(t, "all-minilm", svc.ModelName())
}

func TestNewEmbedder_UnknownProvider(t *testing.T) {
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.provider", "carrier-pigeon"))

	_, err = newEmbedder(store)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestNewEmbedder_OpenAIRequiresKey(t *testing.T) {
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.provider", "openai"))
	t.Setenv("OPENAI_API_KEY", "")

	_, err = newEmbedder(store)

	assert.Error(t, err)
}

func TestWatchExtensions_Defaults(t *testing.T) {
	original := extensions
	defer func() { extensions = original }()

	extensions = nil
	assert.Equal(t, services.DefaultExtensions, watchExtensions())

	extensions = []string{".rst"}
	assert.Equal(t, []string{".rst"}, watchExtensions())
}
