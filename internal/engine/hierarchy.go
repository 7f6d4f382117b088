package engine

import (
	"context"

	"sidequest/internal/storage"
)

// PromoteToProject marks id as a Project. Its children are left untouched;
// an empty project is valid.
func (s *Service) PromoteToProject(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	t.Kind = KindProject
	s.logger.Info("task promoted to project", "task_id", id)
	s.persist(ctx)

	out := t.clone()
	return &out, nil
}

// DemoteToTask turns id back into a plain task and releases its children as
// independent tasks. A demoted task that still belongs to a project stays a
// Subtask of it.
func (s *Service) DemoteToTask(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	released := len(t.ChildIDs)
	s.tasks.detachAll(t)
	t.Kind = KindTask
	if t.HasParent() {
		t.Kind = KindSubtask
	}
	refreshStake(t)
	s.logger.Info("project demoted", "task_id", id, "released", released)
	s.persist(ctx)

	out := t.clone()
	return &out, nil
}

type SubtaskResult struct {
	Subtask            Task
	Parent             Task
	DecompositionBonus int
	IntExp             int
	LevelUp            bool
}

// AddSubtask creates a Subtask under parentID, promoting the parent to a
// Project. Each attach re-evaluates the decomposition bonus against the
// parent's size and new child count.
func (s *Service) AddSubtask(ctx context.Context, parentID string, in CreateInput) (*SubtaskResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, err := s.lookup(parentID)
	if err != nil {
		return nil, err
	}
	if err := CanAttachSubtask(*parent); err != nil {
		return nil, err
	}
	if in.Kind != "" && in.Kind != KindSubtask {
		return nil, newError(CodeValidationFailed, parentID, "subtasks cannot have kind %q", in.Kind)
	}
	v, err := validateCreate(in, SizeSmall)
	if err != nil {
		return nil, err
	}

	child := s.newTask(v, KindSubtask)
	s.tasks.pushFront(child)
	s.tasks.link(parent, child)

	res := &SubtaskResult{}
	bonus := DecompositionBonus(parent.Size, len(parent.ChildIDs))
	if bonus > 0 {
		res.DecompositionBonus = bonus
		res.IntExp = DecompositionIntExp
		res.LevelUp = s.ledger.CreditXP(bonus)
		s.ledger.CreditIntExp(DecompositionIntExp)
		s.logger.Info("decomposition bonus", "task_id", parentID, "children", len(parent.ChildIDs), "xp", bonus)
		s.record(ctx, storage.RewardRecord{
			TaskID:    parentID,
			TaskTitle: parent.Title,
			Reason:    "decomposition",
			XP:        bonus,
			IntExp:    DecompositionIntExp,
		})
	}
	s.persist(ctx)

	res.Subtask = child.clone()
	res.Parent = parent.clone()
	return res, nil
}

// Delete removes id. Children of a deleted project become independent tasks;
// a deleted subtask is removed from its parent.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.delete(t)
	s.persist(ctx)
	return nil
}

func (s *Service) delete(t *Task) {
	s.tasks.detachAll(t)
	if t.HasParent() {
		if p, ok := s.tasks.get(t.ParentID); ok {
			s.tasks.detach(p, t.ID)
		}
	}
	s.tasks.remove(t.ID)
	s.logger.Info("task deleted", "task_id", t.ID)
}

type PenaltyResult struct {
	TaskID    string
	TaskTitle string
	Reason    PenaltyReason
	HPLost    int
	MPLost    int
}

// Abandon deletes id. Dropping an unfinished task costs MP.
func (s *Service) Abandon(ctx context.Context, id string) (*PenaltyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	res := &PenaltyResult{TaskID: id, TaskTitle: t.Title, Reason: PenaltyAbandoned}
	if !t.Completed {
		s.applyPenalty(ctx, *t, PenaltyAbandoned, res)
	}
	s.delete(t)
	s.persist(ctx)
	return res, nil
}

func (s *Service) applyPenalty(ctx context.Context, t Task, reason PenaltyReason, res *PenaltyResult) {
	p := PenaltyFor(t, reason)
	res.HPLost = -s.ledger.AdjustHP(-p.HP)
	res.MPLost = -s.ledger.AdjustMP(-p.MP)
	s.logger.Info("penalty applied", "task_id", t.ID, "reason", reason, "hp", res.HPLost, "mp", res.MPLost)
	s.record(ctx, storage.RewardRecord{
		TaskID:    t.ID,
		TaskTitle: t.Title,
		Reason:    "penalty:" + string(reason),
		HP:        -res.HPLost,
		MP:        -res.MPLost,
	})
}

// SweepOverdue penalizes each open task whose due date has passed, once per task.
func (s *Service) SweepOverdue(ctx context.Context) []PenaltyResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []PenaltyResult
	s.tasks.each(func(t *Task) {
		if t.Completed || t.OverduePenalized || t.DueDate == nil || !t.DueDate.Before(now) {
			return
		}
		res := PenaltyResult{TaskID: t.ID, TaskTitle: t.Title, Reason: PenaltyOverdue}
		s.applyPenalty(ctx, *t, PenaltyOverdue, &res)
		t.OverduePenalized = true
		out = append(out, res)
	})
	if len(out) > 0 {
		s.persist(ctx)
	}
	return out
}
