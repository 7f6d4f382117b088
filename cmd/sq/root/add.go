package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task (large tasks become projects)",
		Args:  exactArgs("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.createInput(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			t, err := s.svc.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconPlus+" Added"), taskLine(*t))
			return nil
		},
	}
	f.register(cmd, true)

	return cmd
}
