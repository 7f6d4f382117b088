package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type TaskRepo struct {
	db dbtx
}

func NewTaskRepo(db dbtx) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, parent_id, title, detail, kind, size, completed, priority,
	created_at, completed_at, due_date, child_ids, tags, staked_points, overdue_penalized`

// Insert writes t at the given position in the visible ordering.
func (r *TaskRepo) Insert(ctx context.Context, position int, t Task) error {
	childJSON, err := marshalStrings(t.ChildIDs)
	if err != nil {
		return fmt.Errorf("marshal child ids: %w", err)
	}
	tagsJSON, err := marshalStrings(t.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, position, parent_id, title, detail,
			kind, size, completed, priority,
			created_at, completed_at, due_date,
			child_ids, tags, staked_points, overdue_penalized
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, position, t.ParentID, t.Title, t.Detail,
		t.Kind, t.Size, boolToInt(t.Completed), t.Priority,
		t.CreatedAt.UTC(), utcPtr(t.CompletedAt), utcPtr(t.DueDate),
		childJSON, tagsJSON, t.StakedPoints, boolToInt(t.OverduePenalized))
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

// ListAll returns every task in visible order.
func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("task delete all: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func marshalStrings(v []string) (*string, error) {
	if len(v) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func unmarshalStrings(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		id           string
		parent       sql.NullString
		title        string
		detail       sql.NullString
		kind         string
		size         string
		completed    int
		priority     int
		createdAt    time.Time
		completedAt  sql.NullTime
		dueDate      sql.NullTime
		childRaw     sql.NullString
		tagsRaw      sql.NullString
		staked       int
		overduePenal int
	)

	if err := row.Scan(
		&id, &parent, &title, &detail, &kind, &size, &completed, &priority,
		&createdAt, &completedAt, &dueDate, &childRaw, &tagsRaw, &staked, &overduePenal,
	); err != nil {
		return nil, fmt.Errorf("task scan: %w", err)
	}

	var parentID *string
	if parent.Valid {
		v := parent.String
		parentID = &v
	}
	var det *string
	if detail.Valid {
		v := detail.String
		det = &v
	}
	var comp *time.Time
	if completedAt.Valid {
		v := completedAt.Time.UTC()
		comp = &v
	}
	var due *time.Time
	if dueDate.Valid {
		v := dueDate.Time.UTC()
		due = &v
	}

	childIDs, err := unmarshalStrings(childRaw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal child ids: %w", err)
	}
	tags, err := unmarshalStrings(tagsRaw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	return &Task{
		ID:               id,
		ParentID:         parentID,
		Title:            title,
		Detail:           det,
		Kind:             kind,
		Size:             size,
		Completed:        completed != 0,
		DueDate:          due,
		Priority:         priority,
		ChildIDs:         childIDs,
		StakedPoints:     staked,
		Tags:             tags,
		CreatedAt:        createdAt.UTC(),
		CompletedAt:      comp,
		OverduePenalized: overduePenal != 0,
	}, nil
}
