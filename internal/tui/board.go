package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"sidequest/internal/engine"
)

// RunBoard shows the interactive board until the user quits or ctx ends.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	program := tea.NewProgram(
		newBoardModel(ctx, svc),
		tea.WithOutput(out),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
