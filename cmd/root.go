// Package cmd wires the ncsh commands: one-shot questions, an interactive
// chat session, and the deterministic dataset utilities.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/config"
)

func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	configFile string
	dataFile   string
	model      string
	maxTokens  int64
	maxTurns   int
	budget     int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ncsh",
		Short:         "Ask questions about a soccer match dataset in plain language",
		Long:          "ncsh answers natural-language questions about a Parquet match dataset by letting Claude drive a small set of DuckDB-backed tools: schema introspection, validated SQL, fuzzy team matching and dataset builds.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ncsh.yaml in the working directory)")
	flags.StringVarP(&opts.dataFile, "data", "d", "", "Parquet data file (overrides NCSH_DATA_FILE)")
	flags.StringVar(&opts.model, "model", "", "Anthropic model to use")
	flags.Int64VarP(&opts.maxTokens, "max-tokens", "m", 0, "max output tokens per model response")
	flags.IntVar(&opts.maxTurns, "max-turns", 0, "maximum tool-loop turns per question")
	flags.IntVar(&opts.budget, "token-budget", 0, "input token budget for conversation windowing (0 = unlimited)")

	rootCmd.AddCommand(
		newQueryCmd(opts),
		newChatCmd(opts),
		newSQLCmd(opts),
		newTeamCmd(opts),
		newCompactCmd(opts),
		newDatasetsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig resolves file and env settings, then lets explicit flags win.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataFile = o.dataFile
	}
	if flags.Changed("model") {
		cfg.Model = o.model
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = o.maxTokens
	}
	if flags.Changed("max-turns") {
		cfg.MaxTurns = o.maxTurns
	}
	if flags.Changed("token-budget") {
		cfg.TokenBudget = o.budget
	}
	return cfg, nil
}
