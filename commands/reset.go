package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/penwyp/go-stampwatch/internal/util"
	"github.com/spf13/cobra"
)

func newResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all timestamps and record the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := openTracker(cmd, opts)
			if err != nil {
				return err
			}
			defer util.CloseLogger()

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Reset %d timestamps? (y/N): ", tracker.Len())
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.TrimSpace(response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(out, "Reset cancelled.")
					return nil
				}
			}

			row, err := tracker.Reset(util.GetTimeProvider().Now())
			if err != nil {
				return err
			}
			if err := tracker.Close(); err != nil {
				return err
			}

			fmt.Fprintf(out, "Reset. %s  %s\n", row.Title, row.Subtitle)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
