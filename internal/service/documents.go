package service

import (
	"context"
	"fmt"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

func (s *Service) SaveResume(ctx context.Context, title, content string) (int64, error) {
	if content == "" {
		return 0, fmt.Errorf("%w: resume content must not be empty", ErrValidation)
	}
	id, err := s.store.SaveResume(ctx, title, content)
	if err != nil {
		return 0, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

func (s *Service) ListResumes(ctx context.Context) ([]domain.Resume, error) {
	resumes, err := s.store.ListResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

func (s *Service) DeleteResume(ctx context.Context, id int64) error {
	if err := s.store.DeleteResume(ctx, id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

func (s *Service) SaveJobDescription(ctx context.Context, title, content string) (int64, error) {
	if content == "" {
		return 0, fmt.Errorf("%w: job description content must not be empty", ErrValidation)
	}
	id, err := s.store.SaveJobDescription(ctx, title, content)
	if err != nil {
		return 0, fmt.Errorf("failed to save job description: %w", err)
	}
	return id, nil
}

func (s *Service) ListJobDescriptions(ctx context.Context) ([]domain.JobDescription, error) {
	jds, err := s.store.ListJobDescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jds, nil
}

func (s *Service) DeleteJobDescription(ctx context.Context, id int64) error {
	if err := s.store.DeleteJobDescription(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job description: %w", err)
	}
	return nil
}

// ListSessions returns all persisted sessions, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
