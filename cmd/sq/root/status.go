package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var levelINT, levelSpeed bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			if levelINT {
				s.svc.LevelUpINT(ctx)
			}
			if levelSpeed {
				s.svc.LevelUpSpeed(ctx)
			}
			st := s.svc.Status()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (next at %d, %d to go)", st.XPTotal, st.NextLevelXP, st.NextLevelXP-st.XPTotal)))
			fmt.Fprintln(out, ui.Meter("HP", ui.HPStyle(st.CurrentHP, st.MaxHP), st.CurrentHP, st.MaxHP, 20))
			fmt.Fprintln(out, ui.Meter("MP", ui.Mana, st.CurrentMP, st.MaxMP, 20))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Skills"))
			fmt.Fprintln(out, skillLine(ui.IconBrain+" INT", st.LevelINT, st.IntProgress))
			fmt.Fprintln(out, skillLine(ui.IconBolt+" Speed", st.LevelSpeed, st.SpeedProgress))
			fmt.Fprintln(out, "")

			if st.CurrentHP <= 0 {
				fmt.Fprintln(out, ui.Bad.Render(ui.IconWarn+" HP depleted: complete a task tagged "+engine.TagRecovery+" before taking on new work"))
				fmt.Fprintln(out, "")
			}

			achievements := s.svc.Achievements()
			earned := 0
			for _, a := range achievements {
				if a.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, earned, len(achievements))))
			for _, a := range achievements {
				if a.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", a.Icon, ui.Gold.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "- %s %s\n", ui.Muted.Render("🔒 "+a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&levelINT, "level-int", false, "Spend a manual INT level-up")
	cmd.Flags().BoolVar(&levelSpeed, "level-speed", false, "Spend a manual Speed level-up")

	return cmd
}

func skillLine(label string, level int, p engine.SkillProgress) string {
	return fmt.Sprintf("- %s: lvl %d %s %s", label, level, ui.Bar(p.Current, p.Needed, 14), ui.Muted.Render(fmt.Sprintf("(%d/%d)", p.Current, p.Needed)))
}
