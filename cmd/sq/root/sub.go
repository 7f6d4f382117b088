package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newSubCmd() *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "sub <parent_id> <title>",
		Short: "Break a task into a subtask (the parent becomes a project)",
		Args:  exactArgs("parent_id", "title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.createInput(args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			parentID, err := s.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			res, err := s.svc.AddSubtask(ctx, parentID, in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconPlus+" Added"), taskLine(res.Subtask))
			fmt.Fprintf(out, "  %s %s\n", ui.Muted.Render("under"), taskLine(res.Parent))
			if res.DecompositionBonus > 0 {
				fmt.Fprintf(out, "%s +%d XP, +%d INT\n", ui.Gold.Render(ui.IconSparkle+" Decomposition bonus"), res.DecompositionBonus, res.IntExp)
			}
			if res.LevelUp {
				fmt.Fprintln(out, ui.BadgeLevelUp)
			}
			return nil
		},
	}
	f.register(cmd, false)

	return cmd
}
