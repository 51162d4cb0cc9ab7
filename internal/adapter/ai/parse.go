package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// truncateRunes cuts s after max runes, never splitting a multibyte rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// extractJSONArray pulls a string array out of a model response. The model
// is told to answer with a bare JSON array, but in practice responses come
// back as pure JSON, JSON embedded in prose, or a plain numbered list.
func extractJSONArray(text string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return items, nil
	}

	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), &items); err == nil {
				return items, nil
			}
		}
	}

	// Fallback: treat each non-empty line as one item, stripping list
	// prefixes like "1." and "- ".
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "]") {
			continue
		}
		if len(line) <= 5 {
			continue
		}
		line = strings.TrimLeft(line, "0123456789.- ")
		line = strings.Trim(strings.TrimSpace(line), `"`)
		line = strings.TrimSuffix(line, ",")
		if line != "" {
			items = append(items, line)
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("failed to extract items from response")
	}
	return items, nil
}

// extractJSONObject finds the outermost JSON object in a model response and
// unmarshals it into v.
func extractJSONObject(text string, v interface{}) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), v); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("no JSON object found in response")
}

// parseReportResponse parses a report response. A response that carries no
// parseable JSON degrades to a default-shaped report built from the raw
// text, so a malformed model reply never sinks an otherwise finished
// session.
func parseReportResponse(text string) *ReportResult {
	var raw struct {
		Summary      string   `json:"summary"`
		OverallScore float64  `json:"overall_score"`
		Improvements []string `json:"improvements"`
		KeyTakeaways []string `json:"key_takeaways"`
	}
	if err := extractJSONObject(text, &raw); err != nil {
		summary := truncateRunes(text, 500)
		return &ReportResult{
			Summary:      summary,
			OverallScore: 7.0,
			Improvements: []string{
				"Structure answers more clearly",
				"Support claims with concrete examples",
				"Tie answers back to the job requirements",
			},
			KeyTakeaways: []string{
				"Keep the logical flow of your answers",
				"Work domain terminology into your responses",
			},
		}
	}

	result := &ReportResult{
		Summary:      raw.Summary,
		OverallScore: domain.ClampScore(raw.OverallScore),
		Improvements: raw.Improvements,
		KeyTakeaways: raw.KeyTakeaways,
	}
	if result.Summary == "" {
		result.Summary = "Interview performance report"
	}
	if result.OverallScore == 0 {
		result.OverallScore = 7.0
	}
	return result
}

// parseFollowUpResponse parses a follow-up analysis response.
func parseFollowUpResponse(text string) (*domain.FollowUpAnalysis, error) {
	var analysis domain.FollowUpAnalysis
	if err := extractJSONObject(text, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse follow-up analysis: %w", err)
	}
	// A recommendation without questions is no recommendation.
	if analysis.ShouldFollowUp && len(analysis.Questions) == 0 {
		analysis.ShouldFollowUp = false
	}
	return &analysis, nil
}

// parseScoreResponse parses an answer scoring response.
func parseScoreResponse(text string) (*ScoreResult, error) {
	var result ScoreResult
	var raw struct {
		OverallScore float64  `json:"overall_score"`
		Strengths    []string `json:"strengths"`
		Weaknesses   []string `json:"weaknesses"`
		Suggestions  []string `json:"suggestions"`
	}
	if err := extractJSONObject(text, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse score: %w", err)
	}
	result.OverallScore = domain.ClampScore(raw.OverallScore)
	result.Strengths = raw.Strengths
	result.Weaknesses = raw.Weaknesses
	result.Suggestions = raw.Suggestions
	return &result, nil
}
