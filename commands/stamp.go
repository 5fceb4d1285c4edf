package commands

import (
	"fmt"

	"github.com/penwyp/go-stampwatch/internal/application/app"
	"github.com/penwyp/go-stampwatch/internal/util"
	"github.com/spf13/cobra"
)

func newStampCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stamp",
		Short: "Record the current time and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := openTracker(cmd, opts)
			if err != nil {
				return err
			}
			defer util.CloseLogger()

			row, err := tracker.Stamp(util.GetTimeProvider().Now())
			if err != nil {
				if app.IsFull(err) {
					return fmt.Errorf("already enough timestamps (%s): %w",
						util.FormatCounter(tracker.Len(), tracker.Cap()), err)
				}
				return err
			}
			if err := tracker.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", row.Title, row.Subtitle)
			return nil
		},
	}
}
