package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/datasets"
	"github.com/mzakany23/ncsh-agent/internal/duckdb"
	"github.com/mzakany23/ncsh-agent/internal/metrics"
	"github.com/mzakany23/ncsh-agent/internal/render"
)

func newCompactCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Render the dataset in a token-efficient text format",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !render.ValidFormat(format) {
				return fmt.Errorf("unknown format %q: want compact, table or csv", format)
			}

			a, err := duckdb.Open(datasets.DataFile(cfg.DataFile))
			if err != nil {
				return err
			}
			defer a.Close()

			games, err := a.AllGames(cmd.Context())
			if err != nil {
				return err
			}
			out, err := render.Games(games, format)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
				return err
			}

			// Stats go to stderr so piped output stays clean.
			baseline, _ := json.Marshal(games)
			fmt.Fprintf(cmd.ErrOrStderr(), "rows=%d est_tokens=%d json_tokens=%d\n",
				len(games), metrics.EstimateTokens(out), metrics.EstimateTokens(string(baseline)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatCompact, "output format: compact, table or csv")
	return cmd
}
