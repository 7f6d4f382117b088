package engine

import (
	"context"

	"sidequest/internal/storage"
)

// Flat experience grants.
const (
	ProjectIntExp       = 30
	ProjectSpeedExp     = 40
	LearningIntExp      = 15
	FastSpeedExp        = 20
	DecompositionIntExp = 25
)

type CompletionResult struct {
	TaskID    string
	Completed bool // false when the call reopened the task

	Reward       int // confirmed reward
	ProjectBonus int
	SpeedBonus   int
	XPAwarded    int // Reward + ProjectBonus + SpeedBonus

	HPRecovered int
	MPRecovered int
	IntExp      int
	SpeedExp    int

	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// ToggleCompletion completes an open task or reopens a completed one.
// Reopening never takes back rewards already granted.
func (s *Service) ToggleCompletion(ctx context.Context, id string) (*CompletionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
		s.logger.Info("task reopened", "task_id", id)
		s.persist(ctx)
		level := s.ledger.Status().Level
		return &CompletionResult{TaskID: id, LevelBefore: level, LevelAfter: level}, nil
	}

	for _, childID := range t.ChildIDs {
		c, ok := s.tasks.get(childID)
		if !ok || !c.Completed {
			return nil, newError(CodePreconditionFailed, id,
				"project %s has unfinished subtasks", id)
		}
	}

	res := s.complete(t)
	s.logger.Info("task completed",
		"task_id", id,
		"xp", res.XPAwarded,
		"hp", res.HPRecovered,
		"mp", res.MPRecovered,
		"level", res.LevelAfter,
	)
	s.record(ctx, storage.RewardRecord{
		TaskID:    id,
		TaskTitle: t.Title,
		Reason:    "complete",
		At:        *t.CompletedAt,
		XP:        res.XPAwarded,
		HP:        res.HPRecovered,
		MP:        res.MPRecovered,
		IntExp:    res.IntExp,
		SpeedExp:  res.SpeedExp,
	})
	s.persist(ctx)
	return res, nil
}

// complete applies the completion sequence to t. Preconditions are checked
// by the caller.
func (s *Service) complete(t *Task) *CompletionResult {
	before := s.ledger.Status()
	res := &CompletionResult{TaskID: t.ID, Completed: true, LevelBefore: before.Level}

	now := s.now()
	t.Completed = true
	t.CompletedAt = &now
	snapshot := *t

	res.Reward = ConfirmedReward(snapshot, before)
	s.ledger.CreditXP(res.Reward)

	if hp := HPRecovery(snapshot); hp > 0 {
		res.HPRecovered = s.ledger.AdjustHP(hp)
	}
	if mp := MPRecovery(snapshot); mp > 0 {
		res.MPRecovered = s.ledger.AdjustMP(mp)
	}

	if snapshot.Kind == KindProject {
		childSum := 0
		for _, childID := range snapshot.ChildIDs {
			if c, ok := s.tasks.get(childID); ok {
				childSum += c.StakedPoints
			}
		}
		res.ProjectBonus = ProjectCompletionBonus(childSum)
		s.ledger.CreditXP(res.ProjectBonus)
		s.creditInt(res, ProjectIntExp)

		if WithinExpectedDuration(snapshot) {
			res.SpeedBonus = SpeedBonus(childSum, snapshot)
			s.ledger.CreditXP(res.SpeedBonus)
			s.creditSpeed(res, ProjectSpeedExp)
		}
	}

	// Projects pass this check too and receive a second INT grant.
	if ShouldGainIntExperience(snapshot) {
		gain := LearningIntExp
		if snapshot.Kind == KindProject {
			gain = ProjectIntExp
		}
		s.creditInt(res, gain)
	}
	if ShouldGainSpeedExperience(snapshot) {
		s.creditSpeed(res, FastSpeedExp)
	}

	res.XPAwarded = res.Reward + res.ProjectBonus + res.SpeedBonus
	res.LevelAfter = s.ledger.Status().Level
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}

func (s *Service) creditInt(res *CompletionResult, amount int) {
	s.ledger.CreditIntExp(amount)
	res.IntExp += amount
}

func (s *Service) creditSpeed(res *CompletionResult, amount int) {
	s.ledger.CreditSpeedExp(amount)
	res.SpeedExp += amount
}
