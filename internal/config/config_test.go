package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstate/internal/config"
)

func flags(args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	fs.String("reference-handling", "", "")
	fs.String("settings", "", "")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.ReferenceHandling)
	assert.Empty(t, cfg.Settings)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("GRAPHSTATE_LOG_LEVEL", "debug")
	t.Setenv("GRAPHSTATE_REFERENCE_HANDLING", "references")

	cfg, err := config.Load(t.TempDir(), flags())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "references", cfg.ReferenceHandling)
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("GRAPHSTATE_LOG_FORMAT", "json")

	cfg, err := config.Load(t.TempDir(), flags("--log-format", "console", "--settings", "graph.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "graph.yaml", cfg.Settings)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GRAPHSTATE_SETTINGS=from-dotenv.yaml\n"), 0o600))

	// godotenv sets the variable for the whole process
	t.Cleanup(func() { _ = os.Unsetenv("GRAPHSTATE_SETTINGS") })

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.yaml", cfg.Settings)
}
