package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset player status to level 1 (tasks are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			st := s.svc.ResetStatus(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s level %d, HP %d/%d, MP %d/%d\n",
				ui.Warn.Render(ui.IconUndo+" Status reset:"), st.Level, st.CurrentHP, st.MaxHP, st.CurrentMP, st.MaxMP)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")

	return cmd
}
