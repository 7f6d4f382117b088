package engine

import (
	"slices"
	"time"
)

type Kind string

const (
	KindTask    Kind = "Task"
	KindProject Kind = "Project"
	KindSubtask Kind = "Subtask"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindTask, KindProject, KindSubtask:
		return true
	default:
		return false
	}
}

type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// DefaultSize is used when a top-level task is created without a size.
const DefaultSize Size = SizeMedium

func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// BasePoints is the size component of staked points.
func (s Size) BasePoints() int {
	switch s {
	case SizeSmall:
		return 10
	case SizeMedium:
		return 25
	case SizeLarge:
		return 50
	default:
		return 0
	}
}

// ExpectedDays is how long a project of this size is expected to take.
func (s Size) ExpectedDays() int {
	switch s {
	case SizeLarge:
		return 7
	case SizeMedium:
		return 3
	default:
		return 1
	}
}

// Priority is 1 (low) to 3 (high). Zero means the priority was never set.
type Priority int

const (
	PriorityUnset  Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) IsValid() bool {
	return p >= PriorityUnset && p <= PriorityHigh
}

// Tags with a fixed side effect on completion. Other tags are allowed and
// only count toward staked points.
const (
	TagRecovery   = "recovery"
	TagMentalCare = "mental-care"
	TagLearning   = "learning"
)

// Task is a unit of work. Values handed out by the Service are copies;
// StakedPoints is recomputed by the engine and never read from input.
type Task struct {
	ID           string
	Title        string
	Detail       string
	Kind         Kind
	Size         Size
	Completed    bool
	DueDate      *time.Time
	Priority     Priority
	ParentID     string
	ChildIDs     []string
	StakedPoints int
	Tags         []string
	CreatedAt    time.Time
	CompletedAt  *time.Time

	// OverduePenalized is set once the overdue penalty has been applied.
	OverduePenalized bool
}

func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

func (t Task) HasParent() bool { return t.ParentID != "" }

func (t Task) clone() Task {
	c := t
	c.ChildIDs = slices.Clone(t.ChildIDs)
	c.Tags = slices.Clone(t.Tags)
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	return c
}

// PlayerStatus is the single progression record.
type PlayerStatus struct {
	CurrentHP  int
	MaxHP      int
	CurrentMP  int
	MaxMP      int
	XPTotal    int
	Level      int
	LevelINT   int
	LevelSpeed int
	IntExp     int
	SpeedExp   int
}

const (
	DefaultMaxHP = 100
	DefaultMaxMP = 100
)

func DefaultStatus() PlayerStatus {
	return PlayerStatus{
		CurrentHP:  DefaultMaxHP,
		MaxHP:      DefaultMaxHP,
		CurrentMP:  DefaultMaxMP,
		MaxMP:      DefaultMaxMP,
		XPTotal:    0,
		Level:      1,
		LevelINT:   1,
		LevelSpeed: 1,
		IntExp:     0,
		SpeedExp:   0,
	}
}

// Filter selects top-level tasks for list views.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterProjects  Filter = "projects"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterProjects:
		return true
	default:
		return false
	}
}
