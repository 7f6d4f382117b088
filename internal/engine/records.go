package engine

import (
	"slices"
	"time"

	"sidequest/internal/storage"
)

func taskToRecord(t Task) storage.Task {
	rec := storage.Task{
		ID:               t.ID,
		Title:            t.Title,
		Kind:             string(t.Kind),
		Size:             string(t.Size),
		Completed:        t.Completed,
		DueDate:          copyTime(t.DueDate),
		Priority:         int(t.Priority),
		ChildIDs:         slices.Clone(t.ChildIDs),
		StakedPoints:     t.StakedPoints,
		Tags:             slices.Clone(t.Tags),
		CreatedAt:        t.CreatedAt,
		CompletedAt:      copyTime(t.CompletedAt),
		OverduePenalized: t.OverduePenalized,
	}
	if t.ParentID != "" {
		v := t.ParentID
		rec.ParentID = &v
	}
	if t.Detail != "" {
		v := t.Detail
		rec.Detail = &v
	}
	return rec
}

// taskFromRecord maps a stored row back. Unknown enum values fall back to
// defaults rather than failing the whole load.
func taskFromRecord(rec storage.Task) Task {
	t := Task{
		ID:               rec.ID,
		Title:            rec.Title,
		Kind:             Kind(rec.Kind),
		Size:             Size(rec.Size),
		Completed:        rec.Completed,
		DueDate:          copyTime(rec.DueDate),
		Priority:         Priority(rec.Priority),
		ChildIDs:         slices.Clone(rec.ChildIDs),
		Tags:             slices.Clone(rec.Tags),
		CreatedAt:        rec.CreatedAt,
		CompletedAt:      copyTime(rec.CompletedAt),
		OverduePenalized: rec.OverduePenalized,
	}
	if rec.ParentID != nil {
		t.ParentID = *rec.ParentID
	}
	if rec.Detail != nil {
		t.Detail = *rec.Detail
	}
	if !t.Kind.IsValid() {
		t.Kind = KindTask
	}
	if !t.Size.IsValid() {
		t.Size = DefaultSize
	}
	if !t.Priority.IsValid() {
		t.Priority = PriorityUnset
	}
	if !t.Completed {
		t.CompletedAt = nil
	}
	t.StakedPoints = StakedPoints(t)
	return t
}

func statusToRecord(s PlayerStatus) *storage.Player {
	return &storage.Player{
		Key:        storage.MainPlayerKey,
		CurrentHP:  s.CurrentHP,
		MaxHP:      s.MaxHP,
		CurrentMP:  s.CurrentMP,
		MaxMP:      s.MaxMP,
		XPTotal:    s.XPTotal,
		Level:      s.Level,
		LevelINT:   s.LevelINT,
		LevelSpeed: s.LevelSpeed,
		IntExp:     s.IntExp,
		SpeedExp:   s.SpeedExp,
	}
}

func statusFromRecord(p storage.Player) PlayerStatus {
	return PlayerStatus{
		CurrentHP:  p.CurrentHP,
		MaxHP:      p.MaxHP,
		CurrentMP:  p.CurrentMP,
		MaxMP:      p.MaxMP,
		XPTotal:    p.XPTotal,
		Level:      p.Level,
		LevelINT:   p.LevelINT,
		LevelSpeed: p.LevelSpeed,
		IntExp:     p.IntExp,
		SpeedExp:   p.SpeedExp,
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
