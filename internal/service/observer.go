package service

import "github.com/Summus1999/InterviewSpark-sub000/internal/domain"

// Observer receives a state snapshot after every state change.
type Observer func(domain.Snapshot)

// ProgressObserver receives elapsed-time updates during report generation.
type ProgressObserver func(domain.ReportProgress)

// Subscribe registers an observer. Observers are called synchronously and
// must not block.
func (s *Service) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// SubscribeProgress registers a report progress observer.
func (s *Service) SubscribeProgress(fn ProgressObserver) {
	s.mu.Lock()
	s.progressObservers = append(s.progressObservers, fn)
	s.mu.Unlock()
}

// notify pushes the current snapshot to every observer, outside the state
// lock.
func (s *Service) notify() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func (s *Service) notifyProgress(progress domain.ReportProgress) {
	s.mu.Lock()
	observers := append([]ProgressObserver(nil), s.progressObservers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(progress)
	}
}
