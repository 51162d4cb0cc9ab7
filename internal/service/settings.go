package service

import "github.com/Summus1999/InterviewSpark-sub000/internal/domain"

// FollowUpSettings returns the active follow-up settings.
func (s *Service) FollowUpSettings() domain.FollowUpSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.followUpSettings
	settings.PreferredTypes = append([]domain.FollowUpType(nil), settings.PreferredTypes...)
	return settings
}

// UpdateFollowUpSettings replaces the follow-up settings. Out-of-range
// values are clamped and an emptied preferred type set is restored to the
// default, never rejected.
func (s *Service) UpdateFollowUpSettings(settings domain.FollowUpSettings) domain.FollowUpSettings {
	settings.Normalize()
	s.mu.Lock()
	s.followUpSettings = settings
	s.mu.Unlock()
	s.notify()
	return settings
}

// TimerConfig returns the active timer configuration.
func (s *Service) TimerConfig() domain.TimerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timerConfig
}

// UpdateTimerConfig replaces the timer configuration, clamping the time
// limit into range. The active countdown is unaffected until its next
// reset.
func (s *Service) UpdateTimerConfig(config domain.TimerConfig) domain.TimerConfig {
	config.Normalize()
	s.mu.Lock()
	s.timerConfig = config
	s.mu.Unlock()
	s.notify()
	return config
}
