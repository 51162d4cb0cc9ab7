// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// Answer operations
	SaveAnswer(ctx context.Context, answer *domain.StoredAnswer) error
	GetAnswersBySession(ctx context.Context, sessionID string) ([]domain.StoredAnswer, error)

	// Best-effort answer scoring
	SaveAnswerAnalysis(ctx context.Context, analysis *domain.AnswerAnalysis) error

	// Report operations
	GetReport(ctx context.Context, sessionID string) (*domain.Report, error)
	SaveReport(ctx context.Context, report *domain.Report) error

	// Resume operations
	SaveResume(ctx context.Context, title, content string) (int64, error)
	ListResumes(ctx context.Context) ([]domain.Resume, error)
	DeleteResume(ctx context.Context, id int64) error

	// Job description operations
	SaveJobDescription(ctx context.Context, title, content string) (int64, error)
	ListJobDescriptions(ctx context.Context) ([]domain.JobDescription, error)
	DeleteJobDescription(ctx context.Context, id int64) error

	Close() error
}
