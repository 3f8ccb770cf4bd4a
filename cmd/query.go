package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/config"
	"github.com/mzakany23/ncsh-agent/internal/datasets"
	"github.com/mzakany23/ncsh-agent/internal/duckdb"
	"github.com/mzakany23/ncsh-agent/internal/prompts"
	"github.com/mzakany23/ncsh-agent/internal/provider"
	"github.com/mzakany23/ncsh-agent/internal/runner"
	"github.com/mzakany23/ncsh-agent/tools"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <question>",
		Short: "Answer a single question about the dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.RequireAPIKey(); err != nil {
				return err
			}

			question := strings.Join(args, " ")
			dataFile := datasets.DataFile(cfg.DataFile)

			a, err := duckdb.Open(dataFile)
			if err != nil {
				return err
			}
			schema, err := a.CompactSchema(cmd.Context())
			a.Close()
			if err != nil {
				return err
			}

			r := runner.New(provider.NewAnthropicClient(), tools.Registry(), cfg)
			r.System = prompts.Batch
			r.Quiet = true

			initial := prompts.InitialMessage(question, dataFile, schema, time.Now())
			answer, err := r.RunQuestion(cmd.Context(), initial)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return err
		},
	}
}
