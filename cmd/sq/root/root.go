package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

const Version = "0.2.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sq",
		Short:         "Sidequest: local-first task manager with RPG progression",
		Long:          "Sidequest is a local-first CLI/TUI task manager. Tasks stake points, completing them grants XP, and projects reward breaking work into subtasks.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newAddCmd(),
		newSubCmd(),
		newEditCmd(),
		newDoCmd(),
		newPromoteCmd(),
		newDemoteCmd(),
		newRmCmd(),
		newListCmd(),
		newStatusCmd(),
		newSweepCmd(),
		newHistoryCmd(),
		newResetCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
