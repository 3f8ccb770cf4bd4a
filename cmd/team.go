package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/datasets"
	"github.com/mzakany23/ncsh-agent/internal/duckdb"
	"github.com/mzakany23/ncsh-agent/internal/fuzzy"
)

func newTeamCmd(opts *rootOptions) *cobra.Command {
	var (
		outFile   string
		matchOnly bool
		unique    bool
	)

	cmd := &cobra.Command{
		Use:   "team <name>",
		Short: "Resolve a team name and build its match dataset",
		Long:  "Fuzzy-matches the given name against the teams in the dataset, prints the candidates, and extracts the best match's games into a new Parquet file. No API calls involved.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")

			a, err := duckdb.Open(datasets.DataFile(cfg.DataFile))
			if err != nil {
				return err
			}
			defer a.Close()

			teams, err := a.TeamNames(cmd.Context())
			if err != nil {
				return err
			}
			matches := fuzzy.MatchTeams(name, teams, 0)
			if len(matches) == 0 {
				return fmt.Errorf("no team matching %q found in the dataset", name)
			}

			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintf(out, "%-40s confidence=%.2f\n", m.Name, m.Confidence)
			}
			if matchOnly {
				return nil
			}

			best := matches[0].Name
			target := outFile
			switch {
			case target != "":
				// keep as given
			case unique:
				target = datasets.UniqueName(best, time.Now())
			default:
				target = datasets.DefaultName(best)
			}
			path, err := datasets.ResolveOutput(target)
			if err != nil {
				return err
			}

			rows, err := a.BuildTeamDataset(cmd.Context(), best, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %d matches for %q to %s\n", rows, best, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file name relative to the dataset directory")
	cmd.Flags().BoolVar(&matchOnly, "match-only", false, "print candidates without building a dataset")
	cmd.Flags().BoolVar(&unique, "unique", false, "timestamp the output file name instead of overwriting")
	return cmd
}
