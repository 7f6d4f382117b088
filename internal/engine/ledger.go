package engine

// LevelXPStep is the XP needed per overall level.
const LevelXPStep = 100

// LevelUpBonus is added to max (and current) HP and MP on a level increase.
const LevelUpBonus = 10

// SkillExpRate scales the experience needed for the next skill level.
const SkillExpRate = 50

// LevelForTotalXP returns the overall level for totalXP.
func LevelForTotalXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/LevelXPStep + 1
}

// XPRequiredForLevel returns the total XP at which level starts.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * LevelXPStep
}

// SkillExpNeeded is the experience needed to go from level to level+1.
func SkillExpNeeded(level int) int {
	return SkillExpRate * level
}

// SkillProgress is experience accumulated toward the next skill level.
type SkillProgress struct {
	Current int
	Needed  int
}

// Ledger owns the player status. It is not safe for concurrent use; the
// Service serializes access.
type Ledger struct {
	status *PlayerStatus
}

// NewLedger wraps status. A nil status starts from DefaultStatus.
func NewLedger(status *PlayerStatus) *Ledger {
	if status == nil {
		s := DefaultStatus()
		status = &s
	}
	return &Ledger{status: status}
}

// Status returns a copy of the current status.
func (l *Ledger) Status() PlayerStatus {
	return *l.status
}

// AdjustHP adds delta to current HP, clamped to [0, MaxHP], and returns the
// change actually applied.
func (l *Ledger) AdjustHP(delta int) int {
	before := l.status.CurrentHP
	l.status.CurrentHP = clamp(before+delta, 0, l.status.MaxHP)
	return l.status.CurrentHP - before
}

// AdjustMP is AdjustHP for MP.
func (l *Ledger) AdjustMP(delta int) int {
	before := l.status.CurrentMP
	l.status.CurrentMP = clamp(before+delta, 0, l.status.MaxMP)
	return l.status.CurrentMP - before
}

// CreditXP adds amount to the XP total and reports whether the level rose.
// A level increase grants LevelUpBonus once per call, however many levels
// were crossed. Non-positive amounts are ignored.
func (l *Ledger) CreditXP(amount int) bool {
	if amount <= 0 {
		return false
	}
	s := l.status
	s.XPTotal += amount
	newLevel := LevelForTotalXP(s.XPTotal)
	leveled := newLevel > s.Level
	s.Level = newLevel
	if leveled {
		s.MaxHP += LevelUpBonus
		s.MaxMP += LevelUpBonus
		s.CurrentHP = clamp(s.CurrentHP+LevelUpBonus, 0, s.MaxHP)
		s.CurrentMP = clamp(s.CurrentMP+LevelUpBonus, 0, s.MaxMP)
	}
	return leveled
}

// CreditIntExp adds INT experience; at most one level per call, excess carries.
func (l *Ledger) CreditIntExp(amount int) bool {
	return creditSkill(&l.status.LevelINT, &l.status.IntExp, amount)
}

// CreditSpeedExp adds Speed experience; at most one level per call, excess carries.
func (l *Ledger) CreditSpeedExp(amount int) bool {
	return creditSkill(&l.status.LevelSpeed, &l.status.SpeedExp, amount)
}

func creditSkill(level *int, exp *int, amount int) bool {
	if amount <= 0 {
		return false
	}
	next := *exp + amount
	needed := SkillExpNeeded(*level)
	if next >= needed {
		*exp = next - needed
		*level++
		return true
	}
	*exp = next
	return false
}

// LevelUpINT forces one INT level and clears its experience.
func (l *Ledger) LevelUpINT() {
	l.status.LevelINT++
	l.status.IntExp = 0
}

// LevelUpSpeed forces one Speed level and clears its experience.
func (l *Ledger) LevelUpSpeed() {
	l.status.LevelSpeed++
	l.status.SpeedExp = 0
}

// Reset restores every field to DefaultStatus.
func (l *Ledger) Reset() {
	*l.status = DefaultStatus()
}

// NextLevelXP is the XP total at which the next overall level starts.
func (l *Ledger) NextLevelXP() int {
	return LevelForTotalXP(l.status.XPTotal) * LevelXPStep
}

func (l *Ledger) IntProgress() SkillProgress {
	return SkillProgress{Current: l.status.IntExp, Needed: SkillExpNeeded(l.status.LevelINT)}
}

func (l *Ledger) SpeedProgress() SkillProgress {
	return SkillProgress{Current: l.status.SpeedExp, Needed: SkillExpNeeded(l.status.LevelSpeed)}
}

// restore replaces the status with a loaded record, clamping pools and
// filling in zero maxima.
func (l *Ledger) restore(s PlayerStatus) {
	def := DefaultStatus()
	if s.MaxHP <= 0 {
		s.MaxHP = def.MaxHP
	}
	if s.MaxMP <= 0 {
		s.MaxMP = def.MaxMP
	}
	if s.XPTotal < 0 {
		s.XPTotal = 0
	}
	s.CurrentHP = clamp(s.CurrentHP, 0, s.MaxHP)
	s.CurrentMP = clamp(s.CurrentMP, 0, s.MaxMP)
	s.Level = LevelForTotalXP(s.XPTotal)
	s.LevelINT = max(s.LevelINT, 1)
	s.LevelSpeed = max(s.LevelSpeed, 1)
	s.IntExp = max(s.IntExp, 0)
	s.SpeedExp = max(s.SpeedExp, 0)
	*l.status = s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
