package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/ai"
	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// Report failure classes the UI must distinguish.
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrNoAnswers            = errors.New("no answers recorded for this session")
	ErrReportTimeout        = errors.New("report generation timed out")
	ErrRetryBudgetExhausted = errors.New("report generation retry budget exhausted")
)

// maxReportRetries bounds caller-triggered retries per session. Beyond it
// the user must abandon the flow.
const maxReportRetries = 2

// LoadReport returns the session's report, generating it when absent. A
// cached report returns immediately without entering the loading state or
// publishing progress. Generation races the remote call against the
// client-side timeout; a stale remote response is ignored, not cancelled.
func (s *Service) LoadReport(ctx context.Context, sessionID string, isRetry bool) (*domain.Report, error) {
	cached, err := s.store.GetReport(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for cached report: %w", err)
	}
	if cached != nil {
		return cached, nil
	}

	if isRetry {
		s.mu.Lock()
		if s.reportRetries[sessionID] >= maxReportRetries {
			s.mu.Unlock()
			return nil, ErrRetryBudgetExhausted
		}
		s.reportRetries[sessionID]++
		attempt := s.reportRetries[sessionID]
		s.mu.Unlock()
		log.Printf("INFO: report retry %d/%d for %s", attempt, maxReportRetries, sessionID)
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	answers, err := s.store.GetAnswersBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	report, err := s.generateReport(ctx, session, answers)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveReport(ctx, report); err != nil {
		// The report is still usable this session; only the cache is lost.
		log.Printf("ERROR: failed to cache report for %s: %v", sessionID, err)
	}
	return report, nil
}

func (s *Service) generateReport(ctx context.Context, session *domain.Session, answers []domain.StoredAnswer) (*domain.Report, error) {
	s.mu.Lock()
	s.loading = true
	jobDescription := s.jobDescription
	timeout := s.reportTimeout
	interval := s.progressInterval
	estimate := s.estimateSeconds
	s.mu.Unlock()
	s.notify()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.notify()
	}()

	questionTexts := make([]string, 0, len(answers))
	answerTexts := make([]string, 0, len(answers))
	for _, a := range answers {
		questionTexts = append(questionTexts, a.Question)
		answerTexts = append(answerTexts, a.Answer)
	}

	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type generation struct {
		result *ai.ReportResult
		err    error
	}
	resultCh := make(chan generation, 1)
	start := time.Now()
	go func() {
		result, err := s.ai.GenerateReport(genCtx, questionTexts, answerTexts, jobDescription)
		resultCh <- generation{result: result, err: err}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case gen := <-resultCh:
			if gen.err != nil {
				return nil, s.classifyReportError(gen.err)
			}
			return &domain.Report{
				ReportID:          "rpt_" + uuid.New().String()[:8],
				SessionID:         session.SessionID,
				OverallScore:      domain.ClampScore(gen.result.OverallScore),
				Summary:           gen.result.Summary,
				Improvements:      gen.result.Improvements,
				KeyTakeaways:      gen.result.KeyTakeaways,
				GeneratedAt:       time.Now(),
				APIResponseTimeMs: time.Since(start).Milliseconds(),
			}, nil
		case <-ticker.C:
			s.notifyProgress(domain.ReportProgress{
				SessionID:      session.SessionID,
				ElapsedSeconds: int(time.Since(start) / time.Second),
				EstimateSecs:   estimate,
			})
		case <-genCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("WARN: report generation for %s exceeded %s", session.SessionID, timeout)
			return nil, ErrReportTimeout
		}
	}
}

func (s *Service) classifyReportError(err error) error {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return fmt.Errorf("AI service is not configured: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return ErrReportTimeout
	default:
		return fmt.Errorf("report service unavailable: %w", err)
	}
}

// GetReport returns a stored report without triggering generation.
func (s *Service) GetReport(ctx context.Context, sessionID string) (*domain.Report, error) {
	report, err := s.store.GetReport(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}
