package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newRmCmd() *cobra.Command {
	var abandon bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task (subtasks of a deleted project become tasks)",
		Args:  exactArgs("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			id, err := s.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !abandon {
				t, err := s.svc.Task(id)
				if err != nil {
					return err
				}
				if err := s.svc.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), t.Title)
				return nil
			}

			res, err := s.svc.Abandon(ctx, id)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s %s", ui.Warn.Render(ui.IconTrash+" Abandoned"), res.TaskTitle)
			if res.MPLost > 0 {
				line += " " + ui.Bad.Render(fmt.Sprintf("(-%d MP)", res.MPLost))
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}
	cmd.Flags().BoolVar(&abandon, "abandon", false, "Give up on the task (costs MP if unfinished)")

	return cmd
}
