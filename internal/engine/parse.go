package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSize parses user input to a Size. Empty input returns "" so callers
// can apply their own default.
func ParseSize(input string) (Size, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "":
		return "", nil
	case "s", "small":
		return SizeSmall, nil
	case "m", "medium":
		return SizeMedium, nil
	case "l", "large":
		return SizeLarge, nil
	default:
		return "", fmt.Errorf("invalid size: %q (want small|medium|large)", input)
	}
}

// ParseKind parses user input to a Kind. Empty input returns "".
func ParseKind(input string) (Kind, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "":
		return "", nil
	case "task":
		return KindTask, nil
	case "project":
		return KindProject, nil
	case "subtask":
		return KindSubtask, nil
	default:
		return "", fmt.Errorf("invalid kind: %q (want task|project)", input)
	}
}

// ParsePriority accepts 1-3 or low|medium|high. Empty input is PriorityUnset.
func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return PriorityUnset, nil
	case "low":
		return PriorityLow, nil
	case "med", "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Priority(n).IsValid() || n == 0 {
		return 0, fmt.Errorf("invalid priority: %q (want 1-3)", input)
	}
	return Priority(n), nil
}

// ParseFilter parses a list filter. Empty input is FilterAll.
func ParseFilter(input string) (Filter, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return FilterAll, nil
	case "project":
		return FilterProjects, nil
	}
	f := Filter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid filter: %q (want all|active|completed|projects)", input)
	}
	return f, nil
}

// DateLayout is the accepted due-date format.
const DateLayout = "2006-01-02"

// ParseDueDate parses YYYY-MM-DD as the end of that day in loc.
func ParseDueDate(input string, loc *time.Location) (*time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (want %s): %w", input, DateLayout, err)
	}
	due := d.Add(24*time.Hour - time.Second).UTC()
	return &due, nil
}
