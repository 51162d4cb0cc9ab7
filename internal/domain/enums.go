// Package domain defines the core domain models for the interview orchestrator.
package domain

// Step represents the current step of an interview session.
type Step string

const (
	StepInput     Step = "input"     // collecting resume and job description
	StepQuestions Step = "questions" // question list generated, not yet started
	StepInterview Step = "interview" // answering questions
	StepFollowUp  Step = "followup"  // a follow-up analysis is awaiting user selection
	StepReport    Step = "report"    // session finished, report requested
)

// Role represents the speaker of a conversation turn.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// FollowUpType classifies a follow-up question.
type FollowUpType string

const (
	FollowUpClarification FollowUpType = "clarification"
	FollowUpDeepening     FollowUpType = "deepening"
	FollowUpScenario      FollowUpType = "scenario"
	FollowUpChallenge     FollowUpType = "challenge"
	FollowUpExtension     FollowUpType = "extension"
)

// KnownFollowUpTypes lists every follow-up type in preference order.
var KnownFollowUpTypes = []FollowUpType{
	FollowUpClarification,
	FollowUpDeepening,
	FollowUpScenario,
	FollowUpChallenge,
	FollowUpExtension,
}

// AnswerQuality is the remote engine's judgement of an answer.
type AnswerQuality string

const (
	QualityExcellent  AnswerQuality = "excellent"
	QualityGood       AnswerQuality = "good"
	QualityAcceptable AnswerQuality = "acceptable"
	QualityPoor       AnswerQuality = "poor"
)

// TimerState represents the state of a question timer.
type TimerState string

const (
	TimerIdle     TimerState = "IDLE"
	TimerRunning  TimerState = "RUNNING"
	TimerPaused   TimerState = "PAUSED"
	TimerFinished TimerState = "FINISHED"
)

// CaptureOutcome classifies how a voice capture invocation terminated.
type CaptureOutcome string

const (
	CaptureNative    CaptureOutcome = "native"     // transcript from on-device recognition
	CaptureFallback  CaptureOutcome = "fallback"   // transcript from remote transcription
	CaptureTimeout   CaptureOutcome = "timeout"    // remote transcription timed out
	CaptureNoDevice  CaptureOutcome = "no_device"  // neither strategy available
	CaptureCancelled CaptureOutcome = "cancelled"  // stopped by explicit user cancel
)
