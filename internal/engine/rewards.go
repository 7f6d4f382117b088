package engine

import (
	"math"
	"time"
)

// Reward formulas. Everything here is a pure function of its arguments.

const (
	DueDateBonus      = 5
	PriorityPointRate = 3
	ChildPointRate    = 5
	TagPointRate      = 2

	// Completion within these windows (since creation) boosts the reward.
	FastWindow   = 24 * time.Hour
	NormalWindow = 72 * time.Hour

	fastMultiplier   = 1.3
	normalMultiplier = 1.1
)

// StakedPoints is the provisional reward for t's current configuration.
func StakedPoints(t Task) int {
	points := t.Size.BasePoints()
	if t.DueDate != nil {
		points += DueDateBonus
	}
	if t.Priority > 0 {
		points += PriorityPointRate * int(t.Priority)
	}
	points += ChildPointRate * len(t.ChildIDs)
	points += TagPointRate * len(t.Tags)
	return points
}

// MPMultiplier scales rewards by remaining focus: 0.5 at empty MP, 1.5 at full.
func MPMultiplier(s PlayerStatus) float64 {
	if s.MaxMP <= 0 {
		return 0.5
	}
	return 0.5 + float64(s.CurrentMP)/float64(s.MaxMP)
}

// SpeedMultiplier rewards fast turnaround. Tasks without a completion time get 1.0.
func SpeedMultiplier(t Task) float64 {
	elapsed, ok := completionElapsed(t)
	if !ok {
		return 1.0
	}
	switch {
	case elapsed <= FastWindow:
		return fastMultiplier
	case elapsed <= NormalWindow:
		return normalMultiplier
	default:
		return 1.0
	}
}

func PriorityMultiplier(p Priority) float64 {
	switch p {
	case PriorityMedium:
		return 1.2
	case PriorityHigh:
		return 1.5
	default:
		return 1.0
	}
}

// ConfirmedReward is the XP granted when t is completed under status s.
func ConfirmedReward(t Task, s PlayerStatus) int {
	reward := float64(t.StakedPoints) * MPMultiplier(s) * SpeedMultiplier(t) * PriorityMultiplier(t.Priority)
	return int(math.Floor(reward))
}

// DecompositionBonus rewards splitting large work into enough subtasks.
func DecompositionBonus(originalSize Size, subtaskCount int) int {
	switch {
	case originalSize == SizeLarge && subtaskCount >= 3:
		return 30 + 5*subtaskCount
	case originalSize == SizeMedium && subtaskCount >= 2:
		return 15 + 3*subtaskCount
	default:
		return 0
	}
}

func HPRecovery(t Task) int {
	if !t.HasTag(TagRecovery) {
		return 0
	}
	return t.Size.BasePoints() / 2
}

func MPRecovery(t Task) int {
	if !t.HasTag(TagMentalCare) {
		return 0
	}
	return t.Size.BasePoints() / 2
}

func ShouldGainIntExperience(t Task) bool {
	return t.HasTag(TagLearning) || t.Kind == KindProject
}

func ShouldGainSpeedExperience(t Task) bool {
	elapsed, ok := completionElapsed(t)
	return ok && elapsed <= FastWindow
}

// ProjectCompletionBonus is floor(0.2 × childRewardsSum).
func ProjectCompletionBonus(childRewardsSum int) int {
	if childRewardsSum <= 0 {
		return 0
	}
	return childRewardsSum * 2 / 10
}

// WithinExpectedDuration reports whether project finished inside the window
// its size allows.
func WithinExpectedDuration(project Task) bool {
	elapsed, ok := completionElapsed(project)
	if !ok {
		return false
	}
	days := elapsed.Hours() / 24
	return days <= float64(project.Size.ExpectedDays())
}

// SpeedBonus is floor(0.3 × childRewardsSum) when project finished in time.
func SpeedBonus(childRewardsSum int, project Task) int {
	if childRewardsSum <= 0 || !WithinExpectedDuration(project) {
		return 0
	}
	return childRewardsSum * 3 / 10
}

type PenaltyReason string

const (
	PenaltyOverdue   PenaltyReason = "overdue"
	PenaltyAbandoned PenaltyReason = "abandoned"
)

// Penalty is the HP/MP cost of a missed or dropped commitment.
type Penalty struct {
	HP int
	MP int
}

func PenaltyFor(t Task, reason PenaltyReason) Penalty {
	switch {
	case reason == PenaltyOverdue && t.Priority == PriorityHigh:
		return Penalty{HP: 15, MP: 10}
	case reason == PenaltyOverdue:
		return Penalty{HP: 5, MP: 5}
	case reason == PenaltyAbandoned:
		return Penalty{MP: 8}
	default:
		return Penalty{}
	}
}

func completionElapsed(t Task) (time.Duration, bool) {
	if t.CompletedAt == nil || t.CreatedAt.IsZero() {
		return 0, false
	}
	return t.CompletedAt.Sub(t.CreatedAt), true
}
