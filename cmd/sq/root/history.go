package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sidequest/internal/storage"
	"sidequest/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rewards and penalties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			ctx := cmd.Context()
			s, err := openService(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			recs, err := s.gateway.RecentRewards(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing yet)"))
				return nil
			}
			for _, r := range recs {
				fmt.Fprintf(out, "%s %-16s %s %s\n",
					ui.Muted.Render(r.At.Local().Format("2006-01-02 15:04")),
					r.Reason, r.TaskTitle, rewardDeltas(r))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")

	return cmd
}

func rewardDeltas(r storage.RewardRecord) string {
	var parts []string
	add := func(v int, unit string) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", v, unit))
		}
	}
	add(r.XP, "XP")
	add(r.HP, "HP")
	add(r.MP, "MP")
	add(r.IntExp, "INT")
	add(r.SpeedExp, "SPD")
	if len(parts) == 0 {
		return ""
	}
	s := strings.Join(parts, ", ")
	if strings.HasPrefix(r.Reason, "penalty:") || r.HP < 0 || r.MP < 0 {
		return ui.Bad.Render(s)
	}
	return ui.Good.Render(s)
}
