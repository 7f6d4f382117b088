package engine

import (
	"context"
	"time"
)

type CreateInput struct {
	Title  string
	Detail string
	// Kind is optional; when empty it is derived from Size.
	Kind     Kind
	Size     Size
	Priority Priority
	DueDate  *time.Time
	Tags     []string
}

// validated is a CreateInput after normalization.
type validated struct {
	title    string
	detail   string
	size     Size
	priority Priority
	due      *time.Time
	tags     []string
}

func validateCreate(in CreateInput, defaultSize Size) (validated, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return validated{}, err
	}
	size := in.Size
	if size == "" {
		size = defaultSize
	}
	if !size.IsValid() {
		return validated{}, newError(CodeValidationFailed, "", "invalid size: %q", in.Size)
	}
	if !in.Priority.IsValid() {
		return validated{}, newError(CodeValidationFailed, "", "invalid priority: %d (want 1-3)", in.Priority)
	}
	return validated{
		title:    title,
		detail:   in.Detail,
		size:     size,
		priority: in.Priority,
		due:      copyTime(in.DueDate),
		tags:     normalizeTags(in.Tags),
	}, nil
}

// Create adds a top-level task at the head of the visible ordering.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := CanAcceptTask(s.ledger.Status()); err != nil {
		return nil, err
	}
	v, err := validateCreate(in, DefaultSize)
	if err != nil {
		return nil, err
	}

	kind := in.Kind
	switch {
	case kind == "":
		kind = KindTask
		if v.size == SizeLarge {
			kind = KindProject
		}
	case kind == KindSubtask:
		return nil, newError(CodeValidationFailed, "", "subtasks are created under a parent")
	case !kind.IsValid():
		return nil, newError(CodeValidationFailed, "", "invalid kind: %q", in.Kind)
	}

	t := s.newTask(v, kind)
	s.tasks.pushFront(t)
	s.logger.Info("task created", "task_id", t.ID, "kind", t.Kind, "staked", t.StakedPoints)
	s.persist(ctx)

	out := t.clone()
	return &out, nil
}

func (s *Service) newTask(v validated, kind Kind) *Task {
	t := &Task{
		ID:        s.newID(),
		Title:     v.title,
		Detail:    v.detail,
		Kind:      kind,
		Size:      v.size,
		Priority:  v.priority,
		DueDate:   v.due,
		Tags:      v.tags,
		CreatedAt: s.now(),
	}
	refreshStake(t)
	return t
}
