package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainPlayerKey = "main_user"

type PlayerRepo struct {
	db dbtx
}

func NewPlayerRepo(db dbtx) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) Get(ctx context.Context, key string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, current_hp, max_hp, current_mp, max_mp, xp_total, level,
			level_int, level_speed, int_exp, speed_exp
		FROM player
		WHERE key = ?
	`, key)

	var p Player
	if err := row.Scan(
		&p.Key, &p.CurrentHP, &p.MaxHP, &p.CurrentMP, &p.MaxMP, &p.XPTotal, &p.Level,
		&p.LevelINT, &p.LevelSpeed, &p.IntExp, &p.SpeedExp,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepo) GetMain(ctx context.Context) (*Player, error) {
	return r.Get(ctx, MainPlayerKey)
}

// Upsert writes p, creating the row on first save.
func (r *PlayerRepo) Upsert(ctx context.Context, p Player) error {
	if p.Key == "" {
		p.Key = MainPlayerKey
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player (
			key, current_hp, max_hp, current_mp, max_mp, xp_total, level,
			level_int, level_speed, int_exp, speed_exp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			current_hp = excluded.current_hp,
			max_hp = excluded.max_hp,
			current_mp = excluded.current_mp,
			max_mp = excluded.max_mp,
			xp_total = excluded.xp_total,
			level = excluded.level,
			level_int = excluded.level_int,
			level_speed = excluded.level_speed,
			int_exp = excluded.int_exp,
			speed_exp = excluded.speed_exp
	`, p.Key, p.CurrentHP, p.MaxHP, p.CurrentMP, p.MaxMP, p.XPTotal, p.Level,
		p.LevelINT, p.LevelSpeed, p.IntExp, p.SpeedExp)
	if err != nil {
		return fmt.Errorf("player upsert: %w", err)
	}
	return nil
}
