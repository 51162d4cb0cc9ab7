// Package ai provides an abstraction for the remote interview AI services.
package ai

import (
	"context"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// FollowUpRequest carries everything the remote analysis needs to decide
// whether a follow-up question is worth asking.
type FollowUpRequest struct {
	OriginalQuestion string
	Answer           string
	// ConversationHistory is the serialized micro-dialogue around the
	// current question, role-labelled line by line.
	ConversationHistory string
	JobDescription      string
	// MaxFollowUps is the remaining follow-up budget for this question.
	MaxFollowUps     int
	PreferredTypes   []domain.FollowUpType
	TriggerThreshold int
	Persona          string
}

// ReportResult is the parsed content of a generated report, before the
// caller assigns identity and timestamps.
type ReportResult struct {
	OverallScore float64
	Summary      string
	Improvements []string
	KeyTakeaways []string
}

// ScoreResult is the parsed content of a best-effort answer scoring call.
type ScoreResult struct {
	OverallScore float64
	Strengths    []string
	Weaknesses   []string
	Suggestions  []string
}

// AIClient defines the interface for remote AI operations.
type AIClient interface {
	// GenerateQuestions produces interview questions from a resume and a
	// job description.
	GenerateQuestions(ctx context.Context, resume, jobDescription string, count int, persona string) ([]string, error)

	// AnalyzeAnswer returns free-text feedback for a single answer.
	AnalyzeAnswer(ctx context.Context, question, answer, jobDescription string) (string, error)

	// ScoreAnswer returns a structured 1-10 scoring of a single answer.
	ScoreAnswer(ctx context.Context, question, answer, jobDescription string) (*ScoreResult, error)

	// AnalyzeForFollowUp decides whether to probe deeper after an answer.
	AnalyzeForFollowUp(ctx context.Context, req *FollowUpRequest) (*domain.FollowUpAnalysis, error)

	// GenerateReport produces the final session evaluation.
	GenerateReport(ctx context.Context, questions, answers []string, jobDescription string) (*ReportResult, error)
}

// Ensure Client implements AIClient interface.
var _ AIClient = (*Client)(nil)
