package domain

import "time"

// Session represents one interview session. The question list is fixed at
// creation time: a configured opening question, the AI-generated questions,
// and a configured closing question.
type Session struct {
	SessionID        string    `json:"session_id"`
	ResumeID         *int64    `json:"resume_id,omitempty"`
	JobDescriptionID *int64    `json:"job_description_id,omitempty"`
	Questions        []string  `json:"questions"`
	CreatedAt        time.Time `json:"created_at"`
}

// AnswerRecord is one answered (or skipped) question within a session.
// Feedback may be empty until the report has been generated.
type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback,omitempty"`
}

// ConversationTurn is one exchange in the micro-dialogue around a single
// question. The buffer of turns is cleared on every top-level question
// transition.
type ConversationTurn struct {
	Role         Role         `json:"role"`
	Content      string       `json:"content"`
	Timestamp    time.Time    `json:"timestamp"`
	QuestionType FollowUpType `json:"question_type,omitempty"`
}

// StoredAnswer is the persisted form of an answer.
type StoredAnswer struct {
	AnswerID      string    `json:"answer_id"`
	SessionID     string    `json:"session_id"`
	QuestionIndex int       `json:"question_index"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Feedback      string    `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnswerAnalysis holds the best-effort per-answer scoring result.
type AnswerAnalysis struct {
	AnalysisID   string    `json:"analysis_id"`
	AnswerID     string    `json:"answer_id"`
	OverallScore float64   `json:"overall_score"` // 1-10
	Strengths    []string  `json:"strengths,omitempty"`
	Weaknesses   []string  `json:"weaknesses,omitempty"`
	Suggestions  []string  `json:"suggestions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Resume is a stored resume document.
type Resume struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobDescription is a stored job description document.
type JobDescription struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
