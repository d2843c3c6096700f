package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersSubcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
}

func TestBootstrapAppliesFlagOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("LOG_LEVEL", "info")
	logLevel, logFormat = "debug", "console"
	t.Cleanup(func() { logLevel, logFormat = "", "" })

	cfg, _, err := bootstrap()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestServeFlags(t *testing.T) {
	f := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, f)
	assert.Equal(t, "true", f.DefValue)
	assert.NotNil(t, serveCmd.Flags().Lookup("port"))
}
