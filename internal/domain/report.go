package domain

import "time"

// Report is the final evaluation of a session. A report is created once,
// either fetched from storage or generated, and is immutable afterward.
type Report struct {
	ReportID     string    `json:"report_id"`
	SessionID    string    `json:"session_id"`
	OverallScore float64   `json:"overall_score"` // 0-10
	Summary      string    `json:"summary"`
	Improvements []string  `json:"improvements"`
	KeyTakeaways []string  `json:"key_takeaways"`
	GeneratedAt  time.Time `json:"generated_at"`
	// APIResponseTimeMs records how long the remote generation took.
	// Zero for cache hits.
	APIResponseTimeMs int64 `json:"api_response_time_ms,omitempty"`
}

// ClampScore forces a score into the 0-10 report scale.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
