package storage

import "time"

// Player is the persisted shape of the single player status record.
type Player struct {
	Key        string
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

// Task is the persisted shape of a task. Optional fields use pointers so that
// "absent" survives a round trip distinct from the zero value.
type Task struct {
	ID               string
	ParentID         *string
	Title            string
	Detail           *string
	Kind             string
	Size             string
	Completed        bool
	DueDate          *time.Time
	Priority         int
	ChildIDs         []string
	StakedPoints     int
	Tags             []string
	CreatedAt        time.Time
	CompletedAt      *time.Time
	OverduePenalized bool
}

// Snapshot is everything the engine needs to resume: tasks in visible order
// (most recent first) and the player status.
type Snapshot struct {
	Tasks  []Task
	Player *Player
}

// RewardRecord is one row of the append-only reward history.
type RewardRecord struct {
	ID        int64
	TaskID    string
	TaskTitle string
	Reason    string
	At        time.Time
	XP        int
	HP        int
	MP        int
	IntExp    int
	SpeedExp  int
}
