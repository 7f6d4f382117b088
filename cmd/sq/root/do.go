package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task, or reopen a completed one",
		Long: `Toggle completion of a task.

Completing grants the confirmed reward as XP, applies recovery tags and skill
experience, and for projects adds the completion and speed bonuses. A project
completes only once all of its subtasks are done.

Reopening a task never takes back rewards already granted.`,
		Args: exactArgs("id"),
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
			res, err := s.svc.ToggleCompletion(ctx, id)
			if err != nil {
				return err
			}
			t, err := s.svc.Task(id)
			if err != nil {
				return err
			}
			printCompletion(cmd, *t, res)
			return nil
		},
	}

	return cmd
}

func printCompletion(cmd *cobra.Command, t engine.Task, res *engine.CompletionResult) {
	out := cmd.OutOrStdout()
	if !res.Completed {
		fmt.Fprintf(out, "%s %s\n", ui.Warn.Render(ui.IconUndo+" Reopened"), taskLine(t))
		return
	}

	fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), taskLine(t), ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
	if res.ProjectBonus > 0 || res.SpeedBonus > 0 {
		fmt.Fprintf(out, "  %s reward %d, project bonus %d, speed bonus %d\n", ui.Muted.Render("xp:"), res.Reward, res.ProjectBonus, res.SpeedBonus)
	}
	if res.HPRecovered > 0 {
		fmt.Fprintf(out, "  %s +%d HP\n", ui.IconHeart, res.HPRecovered)
	}
	if res.MPRecovered > 0 {
		fmt.Fprintf(out, "  %s +%d MP\n", ui.IconMana, res.MPRecovered)
	}
	if res.IntExp > 0 {
		fmt.Fprintf(out, "  %s +%d INT exp\n", ui.IconBrain, res.IntExp)
	}
	if res.SpeedExp > 0 {
		fmt.Fprintf(out, "  %s +%d Speed exp\n", ui.IconBolt, res.SpeedExp)
	}
	fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	if res.LevelUp {
		fmt.Fprintln(out, ui.BadgeLevelUp)
	}
}
