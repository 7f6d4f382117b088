package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newPromoteCmd() *cobra.Command {
	return hierarchyCmd("promote <id>", "Turn a task into a project", "Promoted",
		func(ctx context.Context, svc *engine.Service, id string) (*engine.Task, error) {
			return svc.PromoteToProject(ctx, id)
		})
}

func newDemoteCmd() *cobra.Command {
	return hierarchyCmd("demote <id>", "Turn a project back into a task, releasing its subtasks", "Demoted",
		func(ctx context.Context, svc *engine.Service, id string) (*engine.Task, error) {
			return svc.DemoteToTask(ctx, id)
		})
}

func hierarchyCmd(use, short, verb string, op func(context.Context, *engine.Service, string) (*engine.Task, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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
			t, err := op(ctx, s.svc, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.H2.Render(verb), taskLine(*t))
			return nil
		},
	}
}
