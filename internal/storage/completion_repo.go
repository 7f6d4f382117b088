package storage

import (
	"context"
	"fmt"
)

// RewardRepo stores the append-only reward history.
type RewardRepo struct {
	db dbtx
}

func NewRewardRepo(db dbtx) *RewardRepo {
	return &RewardRepo{db: db}
}

func (r *RewardRepo) Insert(ctx context.Context, rec RewardRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO rewards (task_id, task_title, reason, at, xp, hp, mp, int_exp, speed_exp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.TaskID, rec.TaskTitle, rec.Reason, rec.At.UTC(), rec.XP, rec.HP, rec.MP, rec.IntExp, rec.SpeedExp)
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records, newest first.
func (r *RewardRepo) Recent(ctx context.Context, limit int) ([]RewardRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, task_title, reason, at, xp, hp, mp, int_exp, speed_exp
		FROM rewards
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []RewardRecord
	for rows.Next() {
		var rec RewardRecord
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.TaskTitle, &rec.Reason, &rec.At,
			&rec.XP, &rec.HP, &rec.MP, &rec.IntExp, &rec.SpeedExp); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}
