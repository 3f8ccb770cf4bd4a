package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzakany23/ncsh-agent/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Model)
	assert.Equal(t, int64(1024), cfg.MaxTokens)
	assert.Equal(t, 10, cfg.MaxTurns)
	assert.Equal(t, 0, cfg.TokenBudget)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ncsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"model: test-model\nmax_turns: 3\ndata_file: data/x.parquet\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-model", cfg.Model)
	assert.Equal(t, 3, cfg.MaxTurns)
	assert.Equal(t, "data/x.parquet", cfg.DataFile)
	assert.Equal(t, int64(1024), cfg.MaxTokens)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ncsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: file-model\ntoken_budget: 100\n"), 0o644))

	t.Setenv("NCSH_MODEL", "env-model")
	t.Setenv("NCSH_TOKEN_BUDGET", "9000")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, 9000, cfg.TokenBudget)
}

func TestInvalidTokenBudget(t *testing.T) {
	t.Setenv("NCSH_TOKEN_BUDGET", "lots")
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ncsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestRequireAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	require.Error(t, config.RequireAPIKey())
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	require.NoError(t, config.RequireAPIKey())
}
