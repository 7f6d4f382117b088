package engine

import "context"

// StatusView is the player status plus derived progress figures.
type StatusView struct {
	PlayerStatus
	NextLevelXP   int
	IntProgress   SkillProgress
	SpeedProgress SkillProgress
}

func (s *Service) Status() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusView()
}

func (s *Service) statusView() StatusView {
	return StatusView{
		PlayerStatus:  s.ledger.Status(),
		NextLevelXP:   s.ledger.NextLevelXP(),
		IntProgress:   s.ledger.IntProgress(),
		SpeedProgress: s.ledger.SpeedProgress(),
	}
}

// ResetStatus restores the player status to defaults. Tasks are untouched.
func (s *Service) ResetStatus(ctx context.Context) StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Reset()
	s.logger.Info("player status reset")
	s.persist(ctx)
	return s.statusView()
}

func (s *Service) LevelUpINT(ctx context.Context) StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.LevelUpINT()
	s.persist(ctx)
	return s.statusView()
}

func (s *Service) LevelUpSpeed(ctx context.Context) StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.LevelUpSpeed()
	s.persist(ctx)
	return s.statusView()
}

// Achievements evaluates badges against the current state.
func (s *Service) Achievements() []Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewAchievementChecker(s.ledger.Status(), s.tasks.snapshot()).GetAchievements()
}
