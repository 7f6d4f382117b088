package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Apply penalties for overdue tasks (once per task)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			penalties := s.svc.SweepOverdue(ctx)
			if len(penalties) == 0 {
				fmt.Fprintln(out, ui.Good.Render("Nothing overdue."))
				return nil
			}
			for _, p := range penalties {
				fmt.Fprintf(out, "%s %s %s\n", ui.Bad.Render(ui.IconWarn+" Overdue"), p.TaskTitle,
					ui.Muted.Render(fmt.Sprintf("(-%d HP, -%d MP)", p.HPLost, p.MPLost)))
			}
			return nil
		},
	}

	return cmd
}
