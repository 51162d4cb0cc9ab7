package ai

import (
	"context"
	"fmt"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// MockClient is a mock implementation of AIClient for offline development
// and testing.
type MockClient struct{}

// NewMockClient creates a new mock AI client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements AIClient interface.
var _ AIClient = (*MockClient)(nil)

// GenerateQuestions returns a deterministic question list.
func (m *MockClient) GenerateQuestions(ctx context.Context, resume, jobDescription string, count int, persona string) ([]string, error) {
	questions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, fmt.Sprintf("[MOCK] Question %d about your experience relevant to this role.", i+1))
	}
	return questions, nil
}

// AnalyzeAnswer returns canned feedback.
func (m *MockClient) AnalyzeAnswer(ctx context.Context, question, answer, jobDescription string) (string, error) {
	return fmt.Sprintf("[MOCK] Feedback on your answer to %q: clear structure, add more concrete detail.", truncate(question, 60)), nil
}

// ScoreAnswer returns a fixed mid-range score.
func (m *MockClient) ScoreAnswer(ctx context.Context, question, answer, jobDescription string) (*ScoreResult, error) {
	return &ScoreResult{
		OverallScore: 7.0,
		Strengths:    []string{"[MOCK] relevant to the question"},
		Weaknesses:   []string{"[MOCK] could be more specific"},
		Suggestions:  []string{"[MOCK] quantify the outcome"},
	}, nil
}

// AnalyzeForFollowUp recommends one clarification follow-up for short
// answers and proceeds otherwise.
func (m *MockClient) AnalyzeForFollowUp(ctx context.Context, req *FollowUpRequest) (*domain.FollowUpAnalysis, error) {
	if len(req.Answer) >= 200 || req.MaxFollowUps <= 0 {
		return &domain.FollowUpAnalysis{
			ShouldFollowUp: false,
			Reasoning:      "[MOCK] answer is detailed enough",
			AnswerQuality:  domain.QualityGood,
		}, nil
	}
	return &domain.FollowUpAnalysis{
		ShouldFollowUp: true,
		Questions: []domain.FollowUpQuestion{
			{
				Question: "[MOCK] Could you walk me through a concrete example of that?",
				Type:     domain.FollowUpClarification,
				Reason:   "[MOCK] the answer stayed abstract",
			},
		},
		Reasoning:     "[MOCK] short answer, probing for specifics",
		AnswerQuality: domain.QualityAcceptable,
	}, nil
}

// GenerateReport returns a fixed report shape.
func (m *MockClient) GenerateReport(ctx context.Context, questions, answers []string, jobDescription string) (*ReportResult, error) {
	return &ReportResult{
		OverallScore: 7.5,
		Summary:      fmt.Sprintf("[MOCK] Report over %d answered questions.", len(answers)),
		Improvements: []string{"[MOCK] tighten answer structure", "[MOCK] add measurable results"},
		KeyTakeaways: []string{"[MOCK] solid communication", "[MOCK] good role fit"},
	}, nil
}

// truncate shortens a string to maxLen runes, marking the cut with an
// ellipsis.
func truncate(s string, maxLen int) string {
	cut := truncateRunes(s, maxLen)
	if cut == s {
		return s
	}
	return cut + "..."
}
