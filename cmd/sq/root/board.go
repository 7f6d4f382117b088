package root

import (
	"io"

	"github.com/spf13/cobra"

	"sidequest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// The board owns the terminal; keep log lines out of it.
			s, err := openService(ctx, io.Discard)
			if err != nil {
				return err
			}
			defer s.close()

			return tui.RunBoard(ctx, s.svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
