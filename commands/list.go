package commands

import (
	"github.com/penwyp/go-stampwatch/internal/presentation/formatter"
	"github.com/penwyp/go-stampwatch/internal/util"
	"github.com/spf13/cobra"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print recorded timestamps, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter.New(output)
			if err != nil {
				return err
			}

			tracker, err := openTracker(cmd, opts)
			if err != nil {
				return err
			}
			defer util.CloseLogger()

			rows, capacity, _, _, _ := tracker.Snapshot()
			if err := tracker.Close(); err != nil {
				return err
			}

			return f.Format(cmd.OutOrStdout(), formatter.Listing{
				Rows:     rows,
				Capacity: capacity,
				Location: tracker.Location(),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	return cmd
}
