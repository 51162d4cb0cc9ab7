package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/ai"
	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
	store "github.com/Summus1999/InterviewSpark-sub000/internal/repository"
)

func seedSession(t *testing.T, st store.Store, sessionID string, answered bool) {
	t.Helper()
	ctx := context.Background()
	session := &domain.Session{
		SessionID: sessionID,
		Questions: []string{"Q1", "Q2"},
		CreatedAt: time.Now(),
	}
	if err := st.CreateSession(ctx, session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	if !answered {
		return
	}
	answer := &domain.StoredAnswer{
		AnswerID:  "ans_seed1",
		SessionID: sessionID,
		Question:  "Q1",
		Answer:    "my answer",
		CreatedAt: time.Now(),
	}
	if err := st.SaveAnswer(ctx, answer); err != nil {
		t.Fatalf("failed to seed answer: %v", err)
	}
}

func TestLoadReportCacheHitMakesNoRemoteCalls(t *testing.T) {
	svc, stub, st := newTestService(t)
	seedSession(t, st, "sess_cache", true)

	cached := &domain.Report{
		ReportID:     "rpt_cached",
		SessionID:    "sess_cache",
		OverallScore: 8.5,
		Summary:      "solid performance",
		GeneratedAt:  time.Now(),
	}
	if err := st.SaveReport(context.Background(), cached); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	var mu sync.Mutex
	var progress []domain.ReportProgress
	svc.SubscribeProgress(func(p domain.ReportProgress) {
		mu.Lock()
		progress = append(progress, p)
		mu.Unlock()
	})

	for i := 0; i < 2; i++ {
		report, err := svc.LoadReport(context.Background(), "sess_cache", false)
		if err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
		if report.ReportID != "rpt_cached" {
			t.Fatalf("expected the cached report, got %s", report.ReportID)
		}
	}

	if _, _, reports := stub.calls(); reports != 0 {
		t.Fatalf("cache hits must make zero generate calls, got %d", reports)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(progress) != 0 {
		t.Fatalf("cache hits must never enter the loading state, got %d progress events", len(progress))
	}
}

func TestLoadReportGeneratesAndCaches(t *testing.T) {
	svc, stub, st := newTestService(t)
	seedSession(t, st, "sess_gen", true)
	stub.report = &ai.ReportResult{
		OverallScore: 11, // clamped to 10
		Summary:      "great interview",
		Improvements: []string{"more detail"},
		KeyTakeaways: []string{"strong fundamentals"},
	}

	report, err := svc.LoadReport(context.Background(), "sess_gen", false)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if report.OverallScore != 10 {
		t.Fatalf("expected score clamped to 10, got %f", report.OverallScore)
	}
	if report.Summary != "great interview" {
		t.Fatalf("unexpected summary %q", report.Summary)
	}

	cached, err := st.GetReport(context.Background(), "sess_gen")
	if err != nil || cached == nil {
		t.Fatalf("expected the report cached, got %v err=%v", cached, err)
	}
	if _, _, reports := stub.calls(); reports != 1 {
		t.Fatalf("expected exactly 1 generate call, got %d", reports)
	}
}

func TestLoadReportPublishesProgress(t *testing.T) {
	svc, stub, st := newTestService(t)
	seedSession(t, st, "sess_prog", true)
	svc.progressInterval = 5 * time.Millisecond
	stub.report = &ai.ReportResult{OverallScore: 7, Summary: "ok"}
	stub.reportBlock = true
	svc.reportTimeout = 60 * time.Millisecond

	var mu sync.Mutex
	var progress []domain.ReportProgress
	svc.SubscribeProgress(func(p domain.ReportProgress) {
		mu.Lock()
		progress = append(progress, p)
		mu.Unlock()
	})

	_, err := svc.LoadReport(context.Background(), "sess_prog", false)
	if !errors.Is(err, ErrReportTimeout) {
		t.Fatalf("expected ErrReportTimeout, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(progress) == 0 {
		t.Fatal("expected progress events while generating")
	}
	for _, p := range progress {
		if p.SessionID != "sess_prog" || p.EstimateSecs != 30 {
			t.Fatalf("unexpected progress event %+v", p)
		}
	}
}

func TestLoadReportSessionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.LoadReport(context.Background(), "sess_missing", false); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLoadReportNoAnswers(t *testing.T) {
	svc, _, st := newTestService(t)
	seedSession(t, st, "sess_empty", false)
	if _, err := svc.LoadReport(context.Background(), "sess_empty", false); !errors.Is(err, ErrNoAnswers) {
		t.Fatalf("expected ErrNoAnswers, got %v", err)
	}
}

func TestLoadReportRetryBudget(t *testing.T) {
	svc, stub, st := newTestService(t)
	seedSession(t, st, "sess_retry", true)
	stub.reportErr = errors.New("service unavailable")

	for i := 0; i < maxReportRetries; i++ {
		if _, err := svc.LoadReport(context.Background(), "sess_retry", true); err == nil ||
			errors.Is(err, ErrRetryBudgetExhausted) {
			t.Fatalf("retry %d: expected a plain failure, got %v", i, err)
		}
	}
	if _, err := svc.LoadReport(context.Background(), "sess_retry", true); !errors.Is(err, ErrRetryBudgetExhausted) {
		t.Fatalf("expected ErrRetryBudgetExhausted after %d retries, got %v", maxReportRetries, err)
	}
	if _, _, reports := stub.calls(); reports != maxReportRetries {
		t.Fatalf("expected %d generate calls, got %d", maxReportRetries, reports)
	}
}

func TestLoadReportNotConfigured(t *testing.T) {
	svc, stub, st := newTestService(t)
	seedSession(t, st, "sess_nokey", true)
	stub.reportErr = ai.ErrNotConfigured

	_, err := svc.LoadReport(context.Background(), "sess_nokey", false)
	if !errors.Is(err, ai.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured classification, got %v", err)
	}
}
