package engine

import "slices"

// TaskSet is the task collection owned by a Service. Order is the visible
// ordering, most recent first. It is not safe for concurrent use.
type TaskSet struct {
	order []string
	byID  map[string]*Task
}

func NewTaskSet() *TaskSet {
	return &TaskSet{byID: map[string]*Task{}}
}

func (s *TaskSet) Len() int { return len(s.order) }

func (s *TaskSet) get(id string) (*Task, bool) {
	t, ok := s.byID[id]
	return t, ok
}

func (s *TaskSet) pushFront(t *Task) {
	s.order = slices.Insert(s.order, 0, t.ID)
	s.byID[t.ID] = t
}

func (s *TaskSet) remove(id string) {
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
}

// each visits tasks in visible order.
func (s *TaskSet) each(fn func(t *Task)) {
	for _, id := range s.order {
		fn(s.byID[id])
	}
}

// snapshot returns copies of all tasks in visible order.
func (s *TaskSet) snapshot() []Task {
	out := make([]Task, 0, len(s.order))
	s.each(func(t *Task) { out = append(out, t.clone()) })
	return out
}

func (s *TaskSet) replace(tasks []Task) {
	s.order = s.order[:0]
	s.byID = make(map[string]*Task, len(tasks))
	for i := range tasks {
		t := tasks[i].clone()
		if _, dup := s.byID[t.ID]; dup {
			continue
		}
		s.order = append(s.order, t.ID)
		s.byID[t.ID] = &t
	}
}

// Parent/child links are only changed through link and detach so both
// sides always move together.

// link attaches child to parent, turning child into a Subtask and parent
// into a Project.
func (s *TaskSet) link(parent, child *Task) {
	child.ParentID = parent.ID
	child.Kind = KindSubtask
	if !slices.Contains(parent.ChildIDs, child.ID) {
		parent.ChildIDs = append(parent.ChildIDs, child.ID)
	}
	parent.Kind = KindProject
	refreshStake(parent)
}

// detach removes child from parent's ChildIDs and makes it an independent Task.
func (s *TaskSet) detach(parent *Task, childID string) {
	parent.ChildIDs = slices.DeleteFunc(parent.ChildIDs, func(v string) bool { return v == childID })
	if len(parent.ChildIDs) == 0 {
		parent.ChildIDs = nil
	}
	refreshStake(parent)
	if child, ok := s.byID[childID]; ok && child.ParentID == parent.ID {
		child.ParentID = ""
		child.Kind = KindTask
	}
}

// detachAll severs every child of parent.
func (s *TaskSet) detachAll(parent *Task) {
	for _, id := range slices.Clone(parent.ChildIDs) {
		s.detach(parent, id)
	}
}

// repair drops links whose other side is missing or disagrees and marks
// every task that still owns children as a project. It returns the number
// of fixes made.
func (s *TaskSet) repair() int {
	fixed := 0
	s.each(func(t *Task) {
		kept := t.ChildIDs[:0]
		for _, id := range t.ChildIDs {
			c, ok := s.byID[id]
			if ok && c.ParentID == t.ID && !slices.Contains(kept, id) {
				kept = append(kept, id)
				continue
			}
			fixed++
		}
		if len(kept) == 0 {
			kept = nil
		} else if t.Kind != KindProject {
			t.Kind = KindProject
			fixed++
		}
		t.ChildIDs = kept
	})
	s.each(func(t *Task) {
		if t.ParentID == "" {
			if t.Kind == KindSubtask {
				t.Kind = KindTask
				fixed++
			}
			return
		}
		p, ok := s.byID[t.ParentID]
		if ok && slices.Contains(p.ChildIDs, t.ID) {
			return
		}
		t.ParentID = ""
		if t.Kind == KindSubtask {
			t.Kind = KindTask
		}
		fixed++
	})
	s.each(refreshStake)
	return fixed
}

func refreshStake(t *Task) {
	t.StakedPoints = StakedPoints(*t)
}
