package root

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newEditCmd() *cobra.Command {
	var f taskFlags
	var title string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, size, priority, due date or tags",
		Args:  exactArgs("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.NFlag() == 0 {
				return errors.New("nothing to change")
			}
			var in engine.UpdateInput
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("detail") {
				in.Detail = &f.detail
			}
			if flags.Changed("size") {
				size, err := engine.ParseSize(f.size)
				if err != nil {
					return err
				}
				in.Size = &size
			}
			if flags.Changed("priority") {
				prio, err := engine.ParsePriority(f.priority)
				if err != nil {
					return err
				}
				in.Priority = &prio
			}
			if flags.Changed("due") {
				due, err := engine.ParseDueDate(f.due, time.Local)
				if err != nil {
					return err
				}
				in.DueDate = due
				in.ClearDueDate = due == nil
			}
			if clearDue {
				in.ClearDueDate = true
			}
			if flags.Changed("tag") {
				in.Tags = append([]string{}, f.tags...)
			}

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
			t, err := s.svc.Update(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.H2.Render("Updated"), taskLine(*t))
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")

	return cmd
}
