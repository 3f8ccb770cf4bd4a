package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/datasets"
	"github.com/mzakany23/ncsh-agent/internal/duckdb"
	"github.com/mzakany23/ncsh-agent/internal/render"
)

func newSQLCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sql <query>",
		Short: "Run SQL directly against the dataset",
		Long:  "Executes a DuckDB query against the 'matches' table and prints the rows as a table. No API calls involved.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := duckdb.Open(datasets.DataFile(cfg.DataFile))
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			render.Result(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
