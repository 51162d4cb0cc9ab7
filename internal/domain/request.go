package domain

// GenerateQuestionsRequest asks for a fresh question list.
type GenerateQuestionsRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
	Count          int    `json:"count,omitempty"`
	Persona        string `json:"persona,omitempty"`
}

// SubmitAnswerRequest submits the current answer draft. Answer may be empty
// when the draft was set beforehand via the draft endpoint.
type SubmitAnswerRequest struct {
	Answer string `json:"answer,omitempty"`
}

// SelectQuestionRequest jumps to a question by index.
type SelectQuestionRequest struct {
	Index int `json:"index"`
}

// SelectFollowUpRequest picks one proposed follow-up question by index.
type SelectFollowUpRequest struct {
	Index int `json:"index"`
}

// Snapshot is the read-only view of the orchestrator exposed to the UI.
type Snapshot struct {
	Step            Step               `json:"step"`
	SessionID       string             `json:"session_id,omitempty"`
	CurrentQuestion string             `json:"current_question,omitempty"`
	CurrentIndex    int                `json:"current_index"`
	TotalQuestions  int                `json:"total_questions"`
	AnswerDraft     string             `json:"answer_draft,omitempty"`
	FollowUpCount   int                `json:"follow_up_count"`
	Loading         bool               `json:"loading"`
	Error           string             `json:"error,omitempty"`
	Answers         []AnswerRecord     `json:"answers,omitempty"`
	Conversation    []ConversationTurn `json:"conversation,omitempty"`
	PendingFollowUp *FollowUpAnalysis  `json:"pending_follow_up,omitempty"`
}

// ReportProgress is published while a report is being generated.
type ReportProgress struct {
	SessionID      string `json:"session_id"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	EstimateSecs   int    `json:"estimate_seconds"`
}
