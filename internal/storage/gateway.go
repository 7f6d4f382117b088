package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Gateway persists engine snapshots in SQLite. Every Save replaces the
// stored task collection and player row inside one transaction, so a failed
// save leaves the previous snapshot intact.
type Gateway struct {
	db      *sql.DB
	rewards *RewardRepo
}

func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db, rewards: NewRewardRepo(db)}
}

// Load returns the stored snapshot, or nil on first run.
func (g *Gateway) Load(ctx context.Context) (*Snapshot, error) {
	player, err := NewPlayerRepo(g.db).GetMain(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := NewTaskRepo(g.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if player == nil && len(tasks) == 0 {
		return nil, nil
	}
	return &Snapshot{Tasks: tasks, Player: player}, nil
}

func (g *Gateway) Save(ctx context.Context, snap Snapshot) error {
	return WithTx(ctx, g.db, func(tx *sql.Tx) error {
		tasks := NewTaskRepo(tx)
		if err := tasks.DeleteAll(ctx); err != nil {
			return err
		}
		for i, t := range snap.Tasks {
			if err := tasks.Insert(ctx, i, t); err != nil {
				return fmt.Errorf("save task %s: %w", t.ID, err)
			}
		}
		if snap.Player != nil {
			if err := NewPlayerRepo(tx).Upsert(ctx, *snap.Player); err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *Gateway) RecordReward(ctx context.Context, rec RewardRecord) error {
	_, err := g.rewards.Insert(ctx, rec)
	return err
}

func (g *Gateway) RecentRewards(ctx context.Context, limit int) ([]RewardRecord, error) {
	return g.rewards.Recent(ctx, limit)
}
