// Package config resolves runtime settings from an optional ncsh.yaml file
// and NCSH_* environment variables. Precedence is flags > env > file >
// defaults; flags are applied by the command layer on top of Load's result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mzakany23/ncsh-agent/internal/provider"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "ncsh.yaml"

// Config carries everything a command needs to run a session.
type Config struct {
	Model       string `yaml:"model"`
	MaxTokens   int64  `yaml:"max_tokens"`
	MaxTurns    int    `yaml:"max_turns"`
	DataFile    string `yaml:"data_file"`
	TokenBudget int    `yaml:"token_budget"`
}

func defaults() Config {
	return Config{
		Model:     string(provider.DefaultModel),
		MaxTokens: 1024,
		MaxTurns:  10,
	}
}

// Load builds the effective configuration. A missing config file is fine;
// a malformed one is not. `.env` is loaded best-effort so local setups can
// keep ANTHROPIC_API_KEY out of the shell profile.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path == "" {
		path = DefaultFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// optional
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("NCSH_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NCSH_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("NCSH_TOKEN_BUDGET"); v != "" {
		budget, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NCSH_TOKEN_BUDGET %q: %w", v, err)
		}
		cfg.TokenBudget = budget
	}
	if v := os.Getenv("NCSH_MAX_TURNS"); v != "" {
		turns, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NCSH_MAX_TURNS %q: %w", v, err)
		}
		cfg.MaxTurns = turns
	}

	return cfg, nil
}

// RequireAPIKey fails fast before any request is attempted. The SDK reads the
// key itself; this only improves the error message.
func RequireAPIKey() error {
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return fmt.Errorf("missing ANTHROPIC_API_KEY; export it before running")
	}
	return nil
}
