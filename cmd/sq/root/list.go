package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (tree view)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := engine.ParseFilter(filter)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			roots := s.svc.Filter(f)
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, fmt.Sprintf("Tasks (%s)", f)))
			if len(roots) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for _, t := range roots {
				line := taskLine(t)
				if t.Kind == engine.KindProject {
					p, err := s.svc.Progress(t.ID)
					if err != nil {
						return err
					}
					line += " " + ui.Muted.Render(fmt.Sprintf("%d/%d", p.CompletedChildren, p.TotalChildren))
				}
				if t.DueDate != nil {
					line += " " + ui.Warn.Render("due "+t.DueDate.Local().Format(engine.DateLayout))
				}
				fmt.Fprintln(out, line)

				kids, err := s.svc.Children(t.ID)
				if err != nil {
					return err
				}
				for _, c := range kids {
					fmt.Fprintf(out, "    %s\n", taskLine(c))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter (all|active|completed|projects)")

	return cmd
}
