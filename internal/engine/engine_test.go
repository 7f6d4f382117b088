package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidequest/internal/storage"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// memGateway keeps the last saved snapshot and every recorded reward.
type memGateway struct {
	loaded  *storage.Snapshot
	last    *storage.Snapshot
	saves   int
	saveErr error
	rewards []storage.RewardRecord
}

func (g *memGateway) Load(context.Context) (*storage.Snapshot, error) {
	return g.loaded, nil
}

func (g *memGateway) Save(_ context.Context, snap storage.Snapshot) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves++
	g.last = &snap
	return nil
}

func (g *memGateway) RecordReward(_ context.Context, rec storage.RewardRecord) error {
	g.rewards = append(g.rewards, rec)
	return nil
}

type harness struct {
	svc   *Service
	clock *fakeClock
	gw    *memGateway
	ctx   context.Context
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newHarness(t *testing.T, status *PlayerStatus, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		clock: &fakeClock{now: t0},
		gw:    &memGateway{},
		ctx:   context.Background(),
	}
	base := []Option{
		WithGateway(h.gw),
		WithClock(h.clock.Now),
		WithIDGenerator(sequentialIDs()),
	}
	h.svc = NewService(NewTaskSet(), NewLedger(status), append(base, opts...)...)
	return h
}

func (h *harness) create(t *testing.T, in CreateInput) Task {
	t.Helper()
	task, err := h.svc.Create(h.ctx, in)
	require.NoError(t, err)
	return *task
}

func (h *harness) subtask(t *testing.T, parentID, title string) *SubtaskResult {
	t.Helper()
	res, err := h.svc.AddSubtask(h.ctx, parentID, CreateInput{Title: title})
	require.NoError(t, err)
	return res
}

func (h *harness) toggle(t *testing.T, id string) *CompletionResult {
	t.Helper()
	res, err := h.svc.ToggleCompletion(h.ctx, id)
	require.NoError(t, err)
	return res
}

func (h *harness) task(t *testing.T, id string) Task {
	t.Helper()
	task, err := h.svc.Task(id)
	require.NoError(t, err)
	return *task
}

func TestCreateDerivesKindAndStake(t *testing.T) {
	h := newHarness(t, nil)

	large := h.create(t, CreateInput{Title: "Ship the release", Size: SizeLarge})
	assert.Equal(t, KindProject, large.Kind)
	assert.Equal(t, 50, large.StakedPoints)

	plain := h.create(t, CreateInput{Title: "  Water plants  "})
	assert.Equal(t, "Water plants", plain.Title)
	assert.Equal(t, KindTask, plain.Kind)
	assert.Equal(t, SizeMedium, plain.Size)
	assert.Equal(t, 25, plain.StakedPoints)
	assert.Equal(t, t0, plain.CreatedAt)

	urgent := h.create(t, CreateInput{Title: "Pay rent", Size: SizeSmall, Priority: PriorityHigh, Tags: []string{"Home", "home", " "}})
	assert.Equal(t, []string{"home"}, urgent.Tags)
	assert.Equal(t, 10+9+2, urgent.StakedPoints)

	tasks := h.svc.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{urgent.ID, plain.ID, large.ID}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	assert.Equal(t, 3, h.gw.saves)
	require.Len(t, h.gw.last.Tasks, 3)
}

func TestCreateValidation(t *testing.T) {
	h := newHarness(t, nil)

	cases := []CreateInput{
		{Title: "   "},
		{Title: "x", Size: Size("Huge")},
		{Title: "x", Priority: Priority(4)},
		{Title: "x", Kind: KindSubtask},
		{Title: "x", Kind: Kind("Epic")},
	}
	for _, in := range cases {
		_, err := h.svc.Create(h.ctx, in)
		require.ErrorIs(t, err, ErrValidationFailed, "%+v", in)
		assert.Equal(t, CodeValidationFailed, CodeOf(err))
	}
	assert.Equal(t, 0, h.svc.tasks.Len())
	assert.Equal(t, 0, h.gw.saves)
}

func TestCreateRejectedWhenHPDepleted(t *testing.T) {
	status := DefaultStatus()
	status.CurrentHP = 0
	h := newHarness(t, &status)

	_, err := h.svc.Create(h.ctx, CreateInput{Title: "One more thing"})
	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.Empty(t, h.svc.Tasks())
}

func TestCompleteSmallHighPriorityTask(t *testing.T) {
	h := newHarness(t, nil)
	task := h.create(t, CreateInput{Title: "File taxes", Size: SizeSmall, Priority: PriorityHigh})
	require.Equal(t, 19, task.StakedPoints)

	h.clock.Advance(20 * time.Hour)
	res := h.toggle(t, task.ID)

	assert.True(t, res.Completed)
	assert.Equal(t, 55, res.Reward)
	assert.Equal(t, 55, res.XPAwarded)
	assert.Equal(t, 20, res.SpeedExp)
	assert.Equal(t, 0, res.IntExp)
	assert.False(t, res.LevelUp)

	st := h.svc.Status()
	assert.Equal(t, 55, st.XPTotal)
	assert.Equal(t, 20, st.SpeedExp)
	assert.Equal(t, 1, st.LevelSpeed)

	done := h.task(t, task.ID)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, t0.Add(20*time.Hour), *done.CompletedAt)

	require.Len(t, h.gw.rewards, 1)
	assert.Equal(t, "complete", h.gw.rewards[0].Reason)
	assert.Equal(t, 55, h.gw.rewards[0].XP)
}

func TestReopenKeepsRewards(t *testing.T) {
	h := newHarness(t, nil)
	task := h.create(t, CreateInput{Title: "Stretch", Size: SizeSmall})
	first := h.toggle(t, task.ID)
	xp := h.svc.Status().XPTotal
	require.Equal(t, first.XPAwarded, xp)

	reopened := h.toggle(t, task.ID)
	assert.False(t, reopened.Completed)
	assert.Equal(t, 0, reopened.XPAwarded)

	got := h.task(t, task.ID)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, xp, h.svc.Status().XPTotal)
}

func TestRecoveryTaskRestoresHP(t *testing.T) {
	status := DefaultStatus()
	status.CurrentHP = 80
	h := newHarness(t, &status)

	task := h.create(t, CreateInput{Title: "Nap", Size: SizeSmall, Tags: []string{TagRecovery}})
	res := h.toggle(t, task.ID)

	assert.Equal(t, 5, res.HPRecovered)
	assert.Equal(t, 85, h.svc.Status().CurrentHP)
}

func TestMentalCareRecoveryIsClampedAtMax(t *testing.T) {
	h := newHarness(t, nil)
	task := h.create(t, CreateInput{Title: "Walk outside", Size: SizeMedium, Tags: []string{TagMentalCare}})

	res := h.toggle(t, task.ID)
	assert.Equal(t, 0, res.MPRecovered)
	assert.Equal(t, 100, h.svc.Status().CurrentMP)
}

func TestLearningTaskGrantsInt(t *testing.T) {
	h := newHarness(t, nil)
	task := h.create(t, CreateInput{Title: "Read a chapter", Tags: []string{TagLearning}})

	res := h.toggle(t, task.ID)
	assert.Equal(t, LearningIntExp, res.IntExp)
	assert.Equal(t, 15, h.svc.Status().IntExp)
}

func TestMediumProjectDecompositionBonus(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Move flat", Kind: KindProject, Size: SizeMedium})

	first := h.subtask(t, proj.ID, "Book van")
	assert.Equal(t, 0, first.DecompositionBonus)

	second := h.subtask(t, proj.ID, "Pack boxes")
	assert.Equal(t, 21, second.DecompositionBonus)
	assert.Equal(t, DecompositionIntExp, second.IntExp)
	assert.Equal(t, 35, second.Parent.StakedPoints)

	st := h.svc.Status()
	assert.Equal(t, 21, st.XPTotal)
	assert.Equal(t, 25, st.IntExp)

	require.Len(t, h.gw.rewards, 1)
	assert.Equal(t, "decomposition", h.gw.rewards[0].Reason)
}

func TestPlannedProjectLifecycle(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Launch site", Size: SizeLarge})
	require.Equal(t, KindProject, proj.Kind)

	var children []string
	var last *SubtaskResult
	for _, title := range []string{"Design", "Build", "Deploy"} {
		last = h.subtask(t, proj.ID, title)
		assert.Equal(t, KindSubtask, last.Subtask.Kind)
		assert.Equal(t, SizeSmall, last.Subtask.Size)
		assert.Equal(t, proj.ID, last.Subtask.ParentID)
		children = append(children, last.Subtask.ID)
	}
	assert.Equal(t, 45, last.DecompositionBonus)
	assert.Equal(t, 65, last.Parent.StakedPoints)
	assert.Equal(t, children, last.Parent.ChildIDs)
	assert.Equal(t, 45, h.svc.Status().XPTotal)

	h.clock.Advance(time.Hour)
	for _, id := range children {
		res := h.toggle(t, id)
		assert.Equal(t, 19, res.Reward)
		assert.Equal(t, FastSpeedExp, res.SpeedExp)
	}
	st := h.svc.Status()
	assert.Equal(t, 102, st.XPTotal)
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, 110, st.MaxHP)
	assert.Equal(t, 110, st.CurrentMP)
	assert.Equal(t, 2, st.LevelSpeed)
	assert.Equal(t, 10, st.SpeedExp)

	h.clock.Advance(time.Hour)
	res := h.toggle(t, proj.ID)
	assert.Equal(t, 126, res.Reward)
	assert.Equal(t, 6, res.ProjectBonus)
	assert.Equal(t, 9, res.SpeedBonus)
	assert.Equal(t, 141, res.XPAwarded)
	// Projects collect the project grant and the learning-style grant.
	assert.Equal(t, 2*ProjectIntExp, res.IntExp)
	assert.Equal(t, ProjectSpeedExp+FastSpeedExp, res.SpeedExp)
	assert.Equal(t, 2, res.LevelBefore)
	assert.Equal(t, 3, res.LevelAfter)
	assert.True(t, res.LevelUp)

	st = h.svc.Status()
	assert.Equal(t, 243, st.XPTotal)
	assert.Equal(t, 3, st.Level)
	assert.Equal(t, 120, st.MaxHP)
	assert.Equal(t, 120, st.CurrentHP)
	assert.Equal(t, 2, st.LevelINT)
	assert.Equal(t, 35, st.IntExp)
	assert.Equal(t, 2, st.LevelSpeed)
	assert.Equal(t, 70, st.SpeedExp)
}

func TestProjectWithOpenSubtaskCannotComplete(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Garden", Size: SizeLarge})
	h.subtask(t, proj.ID, "Dig")
	h.subtask(t, proj.ID, "Plant")

	beforeTasks, beforeStatus, beforeSaves := h.svc.Tasks(), h.svc.Status(), h.gw.saves

	_, err := h.svc.ToggleCompletion(h.ctx, proj.ID)
	require.ErrorIs(t, err, ErrPreconditionFailed)

	var engErr *Error
	require.True(t, errors.As(err, &engErr))
	assert.Equal(t, proj.ID, engErr.TaskID)

	assert.Equal(t, beforeTasks, h.svc.Tasks())
	assert.Equal(t, beforeStatus, h.svc.Status())
	assert.Equal(t, beforeSaves, h.gw.saves)
}

func TestEmptyProjectCompletes(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Someday", Kind: KindProject, Size: SizeSmall})

	res := h.toggle(t, proj.ID)
	assert.True(t, res.Completed)
	assert.Equal(t, 0, res.ProjectBonus)
	assert.Equal(t, 0, res.SpeedBonus)
}

func TestToggleUnknownTask(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.ToggleCompletion(h.ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddSubtaskPromotesParent(t *testing.T) {
	h := newHarness(t, nil)
	parent := h.create(t, CreateInput{Title: "Taxes", Size: SizeSmall})
	require.Equal(t, KindTask, parent.Kind)

	res := h.subtask(t, parent.ID, "Collect receipts")
	assert.Equal(t, KindProject, res.Parent.Kind)
	assert.Equal(t, []string{res.Subtask.ID}, res.Parent.ChildIDs)
	assert.Equal(t, 15, res.Parent.StakedPoints)
	assert.Equal(t, KindSubtask, res.Subtask.Kind)
	assert.Equal(t, parent.ID, res.Subtask.ParentID)
}

func TestAddSubtaskRejections(t *testing.T) {
	h := newHarness(t, nil)
	parent := h.create(t, CreateInput{Title: "Trip", Size: SizeLarge})
	child := h.subtask(t, parent.ID, "Tickets").Subtask

	_, err := h.svc.AddSubtask(h.ctx, child.ID, CreateInput{Title: "Seat"})
	require.ErrorIs(t, err, ErrPreconditionFailed)

	_, err = h.svc.AddSubtask(h.ctx, "nope", CreateInput{Title: "Seat"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = h.svc.AddSubtask(h.ctx, parent.ID, CreateInput{Title: ""})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = h.svc.AddSubtask(h.ctx, parent.ID, CreateInput{Title: "x", Kind: KindProject})
	require.ErrorIs(t, err, ErrValidationFailed)

	kids, err := h.svc.Children(parent.ID)
	require.NoError(t, err)
	assert.Len(t, kids, 1)
}

func TestDemoteReleasesChildren(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Blog", Kind: KindProject, Size: SizeMedium})
	a := h.subtask(t, proj.ID, "Draft").Subtask
	b := h.subtask(t, proj.ID, "Publish").Subtask

	demoted, err := h.svc.DemoteToTask(h.ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, KindTask, demoted.Kind)
	assert.Empty(t, demoted.ChildIDs)
	assert.Equal(t, 25, demoted.StakedPoints)

	for _, id := range []string{a.ID, b.ID} {
		c := h.task(t, id)
		assert.Equal(t, KindTask, c.Kind)
		assert.False(t, c.HasParent())
	}

	promoted, err := h.svc.PromoteToProject(h.ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, KindProject, promoted.Kind)
	assert.Empty(t, promoted.ChildIDs)
}

func TestDemoteSubtaskKeepsItUnderParent(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Blog", Kind: KindProject, Size: SizeMedium})
	sub := h.subtask(t, proj.ID, "Draft").Subtask

	demoted, err := h.svc.DemoteToTask(h.ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, KindSubtask, demoted.Kind)
	assert.Equal(t, proj.ID, demoted.ParentID)
	assert.Equal(t, []string{sub.ID}, h.task(t, proj.ID).ChildIDs)
}

func TestDeleteSubtaskDetachesFromParent(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Kitchen", Size: SizeLarge})
	a := h.subtask(t, proj.ID, "Paint").Subtask
	b := h.subtask(t, proj.ID, "Tiles").Subtask

	require.NoError(t, h.svc.Delete(h.ctx, a.ID))

	parent := h.task(t, proj.ID)
	assert.Equal(t, []string{b.ID}, parent.ChildIDs)
	assert.Equal(t, 55, parent.StakedPoints)

	_, err := h.svc.Task(a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProjectReleasesChildren(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Kitchen", Size: SizeLarge})
	a := h.subtask(t, proj.ID, "Paint").Subtask

	require.NoError(t, h.svc.Delete(h.ctx, proj.ID))

	orphan := h.task(t, a.ID)
	assert.Equal(t, KindTask, orphan.Kind)
	assert.False(t, orphan.HasParent())
	assert.Len(t, h.svc.Tasks(), 1)

	require.ErrorIs(t, h.svc.Delete(h.ctx, proj.ID), ErrNotFound)
}

func TestUpdateRecomputesStakeAndPromotes(t *testing.T) {
	h := newHarness(t, nil)
	task := h.create(t, CreateInput{Title: "Refactor"})

	size, prio := SizeLarge, PriorityMedium
	title := "Refactor storage"
	updated, err := h.svc.Update(h.ctx, task.ID, UpdateInput{
		Title:    &title,
		Size:     &size,
		Priority: &prio,
		Tags:     []string{"work"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Refactor storage", updated.Title)
	assert.Equal(t, KindProject, updated.Kind)
	assert.Equal(t, 50+6+2, updated.StakedPoints)

	bad := Priority(9)
	_, err = h.svc.Update(h.ctx, task.ID, UpdateInput{Priority: &bad, Tags: []string{}})
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, *updated, h.task(t, task.ID))

	cleared, err := h.svc.Update(h.ctx, task.ID, UpdateInput{Tags: []string{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
	assert.Equal(t, 56, cleared.StakedPoints)
}

func TestSweepOverduePenalizesOnce(t *testing.T) {
	h := newHarness(t, nil)
	due := t0.Add(time.Hour)

	h.create(t, CreateInput{Title: "Report", Priority: PriorityHigh, DueDate: &due})
	low := h.create(t, CreateInput{Title: "Email", Priority: PriorityLow, DueDate: &due})
	done := h.create(t, CreateInput{Title: "Call", DueDate: &due})
	h.toggle(t, done.ID)
	h.create(t, CreateInput{Title: "Someday"})

	h.clock.Advance(2 * time.Hour)
	penalties := h.svc.SweepOverdue(h.ctx)
	require.Len(t, penalties, 2)

	st := h.svc.Status()
	assert.Equal(t, 80, st.CurrentHP)
	assert.Equal(t, 85, st.CurrentMP)

	assert.Empty(t, h.svc.SweepOverdue(h.ctx))

	later := h.clock.Now().Add(time.Hour)
	_, err := h.svc.Update(h.ctx, low.ID, UpdateInput{DueDate: &later})
	require.NoError(t, err)
	h.clock.Advance(2 * time.Hour)

	penalties = h.svc.SweepOverdue(h.ctx)
	require.Len(t, penalties, 1)
	assert.Equal(t, low.ID, penalties[0].TaskID)
	assert.Equal(t, 5, penalties[0].HPLost)
	assert.Equal(t, 75, h.svc.Status().CurrentHP)
}

func TestAbandonChargesMPForOpenTasks(t *testing.T) {
	h := newHarness(t, nil)
	open := h.create(t, CreateInput{Title: "Learn piano"})
	finished := h.create(t, CreateInput{Title: "Buy milk", Size: SizeSmall})
	h.toggle(t, finished.ID)

	res, err := h.svc.Abandon(h.ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, res.MPLost)
	assert.Equal(t, PenaltyAbandoned, res.Reason)

	mp := h.svc.Status().CurrentMP
	assert.Equal(t, 92, mp)

	res, err = h.svc.Abandon(h.ctx, finished.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MPLost)
	assert.Equal(t, mp, h.svc.Status().CurrentMP)
	assert.Empty(t, h.svc.Tasks())
}

func TestPersistFailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := newHarness(t, nil, WithLogger(logger))
	h.gw.saveErr = errors.New("disk full")

	task, err := h.svc.Create(h.ctx, CreateInput{Title: "Still here"})
	require.NoError(t, err)

	_, err = h.svc.Task(task.ID)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "persist snapshot")
	assert.Contains(t, buf.String(), "disk full")
}

func TestFilterChildrenAndProgress(t *testing.T) {
	h := newHarness(t, nil)
	proj := h.create(t, CreateInput{Title: "Album", Size: SizeLarge})
	a := h.subtask(t, proj.ID, "Record").Subtask
	h.subtask(t, proj.ID, "Mix")
	solo := h.create(t, CreateInput{Title: "Laundry"})
	h.toggle(t, solo.ID)
	h.toggle(t, a.ID)

	assert.Len(t, h.svc.Filter(FilterAll), 2)
	assert.Len(t, h.svc.Filter(FilterActive), 1)
	assert.Len(t, h.svc.Filter(FilterCompleted), 1)
	projects := h.svc.Filter(FilterProjects)
	require.Len(t, projects, 1)
	assert.Equal(t, proj.ID, projects[0].ID)

	assert.Len(t, h.svc.ByKind(KindSubtask), 2)
	assert.Len(t, h.svc.Completed(), 2)
	assert.Len(t, h.svc.Active(), 2)

	kids, err := h.svc.Children(proj.ID)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "Record", kids[0].Title)

	p, err := h.svc.Progress(proj.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{CompletedChildren: 1, TotalChildren: 2, CompletedPoints: 10, TotalPoints: 20}, p)
	assert.InDelta(t, 0.5, p.Ratio(), 1e-9)
	assert.Equal(t, 0.0, Progress{}.Ratio())
}

func TestResolvePrefix(t *testing.T) {
	ids := []string{"abc1", "abc2", "xyz9"}
	i := 0
	h := newHarness(t, nil, WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))
	for range ids {
		h.create(t, CreateInput{Title: "t"})
	}

	id, err := h.svc.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, "xyz9", id)

	id, err = h.svc.Resolve("abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc1", id)

	_, err = h.svc.Resolve("abc")
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = h.svc.Resolve("q")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = h.svc.Resolve(" ")
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestStatusOperations(t *testing.T) {
	h := newHarness(t, nil)
	task := h.create(t, CreateInput{Title: "Warmup", Size: SizeSmall})
	h.toggle(t, task.ID)

	view := h.svc.Status()
	assert.Equal(t, 100, view.NextLevelXP)
	assert.Equal(t, SkillProgress{Current: 20, Needed: 50}, view.SpeedProgress)

	view = h.svc.LevelUpINT(h.ctx)
	assert.Equal(t, 2, view.LevelINT)
	view = h.svc.LevelUpSpeed(h.ctx)
	assert.Equal(t, 2, view.LevelSpeed)
	assert.Equal(t, 0, view.SpeedExp)

	saves := h.gw.saves
	view = h.svc.ResetStatus(h.ctx)
	assert.Equal(t, DefaultStatus(), view.PlayerStatus)
	assert.Equal(t, saves+1, h.gw.saves)
	assert.Len(t, h.svc.Tasks(), 1)
}

func TestLoadRepairsBrokenLinks(t *testing.T) {
	parent := "ghost"
	h := newHarness(t, nil)
	h.gw.loaded = &storage.Snapshot{
		Tasks: []storage.Task{
			{ID: "p", Title: "Project", Kind: "Project", Size: "Large", ChildIDs: []string{"missing", "c"}, StakedPoints: 999, CreatedAt: t0},
			{ID: "c", Title: "Child", Kind: "Subtask", Size: "Small", ParentID: strPtr("p"), CreatedAt: t0},
			{ID: "o", Title: "Orphan", Kind: "Subtask", Size: "Bogus", ParentID: &parent, Priority: 7, CreatedAt: t0},
		},
		Player: &storage.Player{Key: storage.MainPlayerKey, CurrentHP: 50, MaxHP: 100, CurrentMP: 60, MaxMP: 100, XPTotal: 130, Level: 1, LevelINT: 1, LevelSpeed: 1},
	}

	require.NoError(t, h.svc.Load(h.ctx))

	p := h.task(t, "p")
	assert.Equal(t, []string{"c"}, p.ChildIDs)
	assert.Equal(t, 55, p.StakedPoints)

	o := h.task(t, "o")
	assert.Equal(t, KindTask, o.Kind)
	assert.False(t, o.HasParent())
	assert.Equal(t, DefaultSize, o.Size)
	assert.Equal(t, PriorityUnset, o.Priority)

	st := h.svc.Status()
	assert.Equal(t, 50, st.CurrentHP)
	assert.Equal(t, 2, st.Level)
}

func TestLoadMarksParentWithChildrenAsProject(t *testing.T) {
	h := newHarness(t, nil)
	h.gw.loaded = &storage.Snapshot{
		Tasks: []storage.Task{
			{ID: "p", Title: "Move house", Kind: "Task", Size: "Large", ChildIDs: []string{"c"}, CreatedAt: t0},
			{ID: "c", Title: "Pack books", Kind: "Subtask", Size: "Small", ParentID: strPtr("p"), CreatedAt: t0},
		},
	}

	require.NoError(t, h.svc.Load(h.ctx))
	assert.Equal(t, KindProject, h.task(t, "p").Kind)

	_, err := h.svc.ToggleCompletion(h.ctx, "p")
	require.ErrorIs(t, err, ErrPreconditionFailed)
	assert.False(t, h.task(t, "p").Completed)
	assert.False(t, h.task(t, "c").Completed)
}

func strPtr(s string) *string { return &s }

func TestPersistRoundTripThroughSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "sidequest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{now: t0}
	first := NewService(NewTaskSet(), NewLedger(nil),
		WithGateway(storage.NewGateway(db)),
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
	)
	due := t0.Add(48 * time.Hour)
	proj, err := first.Create(ctx, CreateInput{Title: "Thesis", Size: SizeLarge, DueDate: &due, Tags: []string{"learning"}})
	require.NoError(t, err)
	for _, title := range []string{"Outline", "Draft", "Edit"} {
		_, err := first.AddSubtask(ctx, proj.ID, CreateInput{Title: title, Detail: "notes"})
		require.NoError(t, err)
	}
	kids, err := first.Children(proj.ID)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = first.ToggleCompletion(ctx, kids[0].ID)
	require.NoError(t, err)

	second := NewService(nil, nil, WithGateway(storage.NewGateway(db)))
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, first.Status(), second.Status())
	want, got := first.Tasks(), second.Tasks()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Kind, got[i].Kind)
		assert.Equal(t, want[i].ParentID, got[i].ParentID)
		assert.Equal(t, want[i].ChildIDs, got[i].ChildIDs)
		assert.Equal(t, want[i].StakedPoints, got[i].StakedPoints)
		assert.Equal(t, want[i].Completed, got[i].Completed)
		assert.Equal(t, want[i].Detail, got[i].Detail)
		assert.Equal(t, want[i].Tags, got[i].Tags)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
	}

	history, err := storage.NewGateway(db).RecentRewards(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "complete", history[0].Reason)
	assert.Equal(t, "decomposition", history[1].Reason)
}
