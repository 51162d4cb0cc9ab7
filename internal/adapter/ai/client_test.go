package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func completionBody(content string) string {
	msg, _ := json.Marshal(content)
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%s}}]}`, msg)
}

func TestClientGenerateQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody(`["Tell me about your last project.", "How do you handle conflict?"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", time.Second)
	questions, err := client.GenerateQuestions(context.Background(), "resume text", "jd text", 2, "")
	if err != nil {
		t.Fatalf("GenerateQuestions failed: %v", err)
	}
	if len(questions) != 2 || questions[0] != "Tell me about your last project." {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestClientGenerateQuestionsEmbeddedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody("Here are your questions:\n[\"Question one about APIs?\"]\nGood luck!"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", time.Second)
	questions, err := client.GenerateQuestions(context.Background(), "resume", "jd", 1, "")
	if err != nil {
		t.Fatalf("GenerateQuestions failed: %v", err)
	}
	if len(questions) != 1 || questions[0] != "Question one about APIs?" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestClientNotConfigured(t *testing.T) {
	client := NewClient("http://localhost:0", "", "test-model", time.Second)
	_, err := client.GenerateQuestions(context.Background(), "resume", "jd", 3, "")
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientAPIErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad request","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", time.Second)
	_, err := client.AnalyzeAnswer(context.Background(), "q", "a", "jd")
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("client error should not be retried, got %d calls", calls)
	}
}

func TestClientServerErrorRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody("Feedback: good answer."))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", time.Second)
	client.retry.InitialDelay = time.Millisecond

	feedback, err := client.AnalyzeAnswer(context.Background(), "q", "a", "jd")
	if err != nil {
		t.Fatalf("AnalyzeAnswer failed: %v", err)
	}
	if feedback != "Feedback: good answer." {
		t.Fatalf("unexpected feedback: %q", feedback)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestClientAnalyzeForFollowUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody(`{"should_follow_up":true,"questions":[{"question":"What was your specific role?","type":"clarification","reason":"answer was vague"}],"reasoning":"vague","answer_quality":"acceptable"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", time.Second)
	analysis, err := client.AnalyzeForFollowUp(context.Background(), &FollowUpRequest{
		OriginalQuestion: "Tell me about a project.",
		Answer:           "We built a thing.",
		MaxFollowUps:     2,
	})
	if err != nil {
		t.Fatalf("AnalyzeForFollowUp failed: %v", err)
	}
	if !analysis.ShouldFollowUp || len(analysis.Questions) != 1 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
	if analysis.Questions[0].Type != "clarification" {
		t.Fatalf("unexpected question type: %s", analysis.Questions[0].Type)
	}
}

func TestClientGenerateReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody(`{"summary":"good session","overall_score":8.2,"improvements":["be concise"],"key_takeaways":["strong fundamentals"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", time.Second)
	report, err := client.GenerateReport(context.Background(), []string{"Q1"}, []string{"A1"}, "jd")
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if report.OverallScore != 8.2 || report.Summary != "good session" {
		t.Fatalf("unexpected report: %+v", report)
	}
}
