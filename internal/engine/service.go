package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sidequest/internal/storage"
)

// Gateway is the persistence boundary. Load returns nil on first run.
type Gateway interface {
	Load(ctx context.Context) (*storage.Snapshot, error)
	Save(ctx context.Context, snap storage.Snapshot) error
}

// RewardRecorder is implemented by gateways that keep a reward history.
type RewardRecorder interface {
	RecordReward(ctx context.Context, rec storage.RewardRecord) error
}

// Service is the task hierarchy manager: the single writer of the task
// collection and the only caller of Ledger mutators. Every exported method
// runs to completion under one lock.
type Service struct {
	mu      sync.Mutex
	tasks   *TaskSet
	ledger  *Ledger
	gateway Gateway
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Service)

func WithGateway(g Gateway) Option {
	return func(s *Service) { s.gateway = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(tasks *TaskSet, ledger *Ledger, opts ...Option) *Service {
	if tasks == nil {
		tasks = NewTaskSet()
	}
	if ledger == nil {
		ledger = NewLedger(nil)
	}
	s := &Service{
		tasks:  tasks,
		ledger: ledger,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces in-memory state with the gateway's snapshot. Cached fields
// are recomputed and broken parent/child links are repaired on the way in.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gateway == nil {
		return nil
	}
	snap, err := s.gateway.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		s.logger.Debug("no saved state, starting fresh")
		return nil
	}

	tasks := make([]Task, 0, len(snap.Tasks))
	for _, rec := range snap.Tasks {
		tasks = append(tasks, taskFromRecord(rec))
	}
	s.tasks.replace(tasks)
	if fixed := s.tasks.repair(); fixed > 0 {
		s.logger.Warn("repaired task links on load", "fixed", fixed)
	}
	if snap.Player != nil {
		s.ledger.restore(statusFromRecord(*snap.Player))
	}
	s.logger.Debug("state loaded", "tasks", s.tasks.Len())
	return nil
}

// persist saves the current state. Failures are logged and never undo the
// in-memory mutation.
func (s *Service) persist(ctx context.Context) {
	if s.gateway == nil {
		return
	}
	snap := storage.Snapshot{Player: statusToRecord(s.ledger.Status())}
	s.tasks.each(func(t *Task) {
		snap.Tasks = append(snap.Tasks, taskToRecord(*t))
	})
	if err := s.gateway.Save(ctx, snap); err != nil {
		s.logger.Error("persist snapshot", "error", err)
	}
}

func (s *Service) record(ctx context.Context, rec storage.RewardRecord) {
	rr, ok := s.gateway.(RewardRecorder)
	if !ok {
		return
	}
	if rec.At.IsZero() {
		rec.At = s.now()
	}
	if err := rr.RecordReward(ctx, rec); err != nil {
		s.logger.Error("record reward", "task_id", rec.TaskID, "reason", rec.Reason, "error", err)
	}
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", newError(CodeValidationFailed, "", "title is required")
	}
	return t, nil
}

// normalizeTags trims, drops empties and collapses duplicates, keeping order.
func normalizeTags(tags []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (s *Service) lookup(id string) (*Task, error) {
	t, ok := s.tasks.get(id)
	if !ok {
		return nil, notFound(id)
	}
	return t, nil
}
