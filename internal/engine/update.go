package engine

import (
	"context"
	"time"
)

// UpdateInput carries optional field changes. Nil pointers leave a field
// alone; Tags replaces the tag set when non-nil (an empty slice clears it).
type UpdateInput struct {
	Title        *string
	Detail       *string
	Size         *Size
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
	Tags         []string
}

// Update merges in into task id and recomputes its staked points. A plain
// childless Task resized to Large is promoted to a Project.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	merged := t.clone()
	if in.Title != nil {
		title, err := normalizeTitle(*in.Title)
		if err != nil {
			return nil, newError(CodeValidationFailed, id, "%s", err.Error())
		}
		merged.Title = title
	}
	if in.Detail != nil {
		merged.Detail = *in.Detail
	}
	if in.Size != nil {
		if !in.Size.IsValid() {
			return nil, newError(CodeValidationFailed, id, "invalid size: %q", *in.Size)
		}
		merged.Size = *in.Size
	}
	if in.Priority != nil {
		if !in.Priority.IsValid() {
			return nil, newError(CodeValidationFailed, id, "invalid priority: %d (want 1-3)", *in.Priority)
		}
		merged.Priority = *in.Priority
	}
	switch {
	case in.ClearDueDate:
		merged.DueDate = nil
		merged.OverduePenalized = false
	case in.DueDate != nil:
		merged.DueDate = copyTime(in.DueDate)
		merged.OverduePenalized = false
	}
	if in.Tags != nil {
		merged.Tags = normalizeTags(in.Tags)
	}

	if in.Size != nil && *in.Size == SizeLarge && merged.Kind == KindTask && len(merged.ChildIDs) == 0 {
		merged.Kind = KindProject
		s.logger.Info("task promoted to project", "task_id", id, "reason", "size large")
	}
	refreshStake(&merged)

	*t = merged
	s.persist(ctx)

	out := t.clone()
	return &out, nil
}
