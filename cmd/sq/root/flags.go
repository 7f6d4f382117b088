package root

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

// taskFlags are the task attributes shared by add, sub and edit.
type taskFlags struct {
	size     string
	priority string
	due      string
	kind     string
	detail   string
	tags     []string
}

func (f *taskFlags) register(cmd *cobra.Command, withKind bool) {
	cmd.Flags().StringVarP(&f.size, "size", "s", "", "Size (small|medium|large)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Priority (1-3 or low|medium|high)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.detail, "detail", "", "Longer description")
	cmd.Flags().StringArrayVarP(&f.tags, "tag", "t", nil, "Tag (repeatable): recovery, mental-care, learning or any label")
	if withKind {
		cmd.Flags().StringVar(&f.kind, "kind", "", "Kind (task|project); defaults from size")
	}
}

func (f *taskFlags) createInput(title string) (engine.CreateInput, error) {
	in := engine.CreateInput{Title: title, Detail: f.detail, Tags: f.tags}
	var err error
	if in.Size, err = engine.ParseSize(f.size); err != nil {
		return in, err
	}
	if in.Priority, err = engine.ParsePriority(f.priority); err != nil {
		return in, err
	}
	if in.Kind, err = engine.ParseKind(f.kind); err != nil {
		return in, err
	}
	if in.DueDate, err = engine.ParseDueDate(f.due, time.Local); err != nil {
		return in, err
	}
	return in, nil
}

func exactArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return fmt.Errorf("%s is required", names[len(args)])
		}
		if len(args) > len(names) {
			return errors.New("too many arguments")
		}
		return nil
	}
}

func taskLine(t engine.Task) string {
	return fmt.Sprintf("%s %s %s %s %s",
		ui.CheckBox(t.Completed),
		ui.KindIcon(string(t.Kind)),
		ui.Muted.Render(ui.ShortID(t.ID)),
		t.Title,
		ui.Muted.Render(fmt.Sprintf("(%d pts)", t.StakedPoints)),
	)
}
