package engine

import "strings"

// Tasks returns every task in visible order (most recent first).
func (s *Service) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.snapshot()
}

func (s *Service) Task(id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	out := t.clone()
	return &out, nil
}

func (s *Service) ByKind(kind Kind) []Task {
	return s.where(func(t *Task) bool { return t.Kind == kind })
}

func (s *Service) Active() []Task {
	return s.where(func(t *Task) bool { return !t.Completed })
}

func (s *Service) Completed() []Task {
	return s.where(func(t *Task) bool { return t.Completed })
}

// Filter returns top-level tasks (no parent) matching f. Subtasks are
// reached through Children.
func (s *Service) Filter(f Filter) []Task {
	return s.where(func(t *Task) bool {
		if t.HasParent() {
			return false
		}
		switch f {
		case FilterActive:
			return !t.Completed
		case FilterCompleted:
			return t.Completed
		case FilterProjects:
			return t.Kind == KindProject
		default:
			return true
		}
	})
}

// Children returns the subtasks of id in attach order.
func (s *Service) Children(id string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(t.ChildIDs))
	for _, childID := range t.ChildIDs {
		if c, ok := s.tasks.get(childID); ok {
			out = append(out, c.clone())
		}
	}
	return out, nil
}

// Progress summarizes how far a project has come.
type Progress struct {
	CompletedChildren int
	TotalChildren     int
	CompletedPoints   int
	TotalPoints       int
}

// Ratio is CompletedChildren/TotalChildren, 0 for an empty project.
func (p Progress) Ratio() float64 {
	if p.TotalChildren == 0 {
		return 0
	}
	return float64(p.CompletedChildren) / float64(p.TotalChildren)
}

func (s *Service) Progress(projectID string) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(projectID)
	if err != nil {
		return Progress{}, err
	}
	var p Progress
	for _, childID := range t.ChildIDs {
		c, ok := s.tasks.get(childID)
		if !ok {
			continue
		}
		p.TotalChildren++
		p.TotalPoints += c.StakedPoints
		if c.Completed {
			p.CompletedChildren++
			p.CompletedPoints += c.StakedPoints
		}
	}
	return p, nil
}

// Resolve expands a unique id prefix to the full id.
func (s *Service) Resolve(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", newError(CodeValidationFailed, "", "id is required")
	}
	if _, ok := s.tasks.get(prefix); ok {
		return prefix, nil
	}
	var matches []string
	s.tasks.each(func(t *Task) {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	})
	switch len(matches) {
	case 0:
		return "", notFound(prefix)
	case 1:
		return matches[0], nil
	default:
		return "", newError(CodeValidationFailed, prefix, "id prefix %q matches %d tasks", prefix, len(matches))
	}
}

func (s *Service) where(keep func(t *Task) bool) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Task
	s.tasks.each(func(t *Task) {
		if keep(t) {
			out = append(out, t.clone())
		}
	})
	return out
}
