package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/datasets"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the Parquet files in the dataset directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := datasets.Root()
			if err != nil {
				return err
			}
			infos, err := datasets.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintf(out, "no datasets in %s\n", root)
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(out, "%-40s %8d bytes  %s\n",
					info.Name, info.Bytes, info.ModTime.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
