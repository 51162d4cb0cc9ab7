package ai

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractJSONArrayPure(t *testing.T) {
	items, err := extractJSONArray(`["one", "two"]`)
	if err != nil {
		t.Fatalf("extractJSONArray failed: %v", err)
	}
	if len(items) != 2 || items[1] != "two" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestExtractJSONArrayEmbedded(t *testing.T) {
	text := "Sure! Here is the list:\n[\"What drives you?\", \"Describe a failure.\"]\nHope this helps."
	items, err := extractJSONArray(text)
	if err != nil {
		t.Fatalf("extractJSONArray failed: %v", err)
	}
	if len(items) != 2 || items[0] != "What drives you?" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestExtractJSONArrayLineFallback(t *testing.T) {
	text := "1. Tell me about yourself\n2. Why this company?\n\n- Describe your biggest win"
	items, err := extractJSONArray(text)
	if err != nil {
		t.Fatalf("extractJSONArray failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %+v", items)
	}
	if items[0] != "Tell me about yourself" {
		t.Fatalf("prefix not stripped: %q", items[0])
	}
}

func TestExtractJSONArrayEmpty(t *testing.T) {
	if _, err := extractJSONArray(""); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestParseReportResponseFallback(t *testing.T) {
	report := parseReportResponse("The candidate did fine overall but no JSON here.")
	if report.OverallScore != 7.0 {
		t.Fatalf("expected default score, got %v", report.OverallScore)
	}
	if len(report.Improvements) == 0 || len(report.KeyTakeaways) == 0 {
		t.Fatalf("expected default lists: %+v", report)
	}
}

func TestParseReportResponseFallbackTruncatesOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("候选人表现良好。", 100) // 800 runes, no JSON
	report := parseReportResponse(text)
	if !utf8.ValidString(report.Summary) {
		t.Fatalf("fallback summary is not valid UTF-8: %q", report.Summary)
	}
	if got := utf8.RuneCountInString(report.Summary); got != 500 {
		t.Fatalf("expected summary cut at 500 runes, got %d", got)
	}
}

func TestTruncateKeepsMultibyteRunesIntact(t *testing.T) {
	got := truncate("面试反馈内容", 3)
	if got != "面试反..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is not valid UTF-8: %q", got)
	}
	if short := truncate("short", 60); short != "short" {
		t.Fatalf("short string altered: %q", short)
	}
}

func TestParseReportResponseClampsScore(t *testing.T) {
	report := parseReportResponse(`{"summary":"s","overall_score":14.0,"improvements":[],"key_takeaways":[]}`)
	if report.OverallScore != 10 {
		t.Fatalf("expected clamped score 10, got %v", report.OverallScore)
	}
}

func TestParseFollowUpResponseNoQuestions(t *testing.T) {
	analysis, err := parseFollowUpResponse(`{"should_follow_up":true,"questions":[],"answer_quality":"good"}`)
	if err != nil {
		t.Fatalf("parseFollowUpResponse failed: %v", err)
	}
	if analysis.ShouldFollowUp {
		t.Fatalf("a recommendation without questions must be downgraded")
	}
}

func TestParseFollowUpResponseMalformed(t *testing.T) {
	if _, err := parseFollowUpResponse("not json at all"); err == nil {
		t.Fatalf("expected error for malformed response")
	}
}
