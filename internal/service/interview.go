package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// Minimum input lengths, in characters, before question generation is
// allowed.
const (
	minResumeChars         = 50
	minJobDescriptionChars = 20
)

// CanGenerate reports whether the inputs are substantial enough to
// generate questions from.
func (s *Service) CanGenerate(resume, jobDescription string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(resume)) > minResumeChars &&
		utf8.RuneCountInString(strings.TrimSpace(jobDescription)) > minJobDescriptionChars
}

// GenerateQuestions calls the remote question generator and, on success,
// wraps the result with the configured opening and closing questions.
// Failure leaves the orchestrator in the input step with the error
// surfaced for a user-initiated retry.
func (s *Service) GenerateQuestions(ctx context.Context, req domain.GenerateQuestionsRequest) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepInput && s.step != domain.StepQuestions {
		s.mu.Unlock()
		return fmt.Errorf("%w: questions can only be generated before the interview starts", ErrValidation)
	}
	if !s.CanGenerate(req.Resume, req.JobDescription) {
		s.mu.Unlock()
		return fmt.Errorf("%w: resume must exceed %d characters and job description %d characters",
			ErrValidation, minResumeChars, minJobDescriptionChars)
	}
	persona := s.policy.Persona(req.Persona)
	count := req.Count
	if count <= 0 {
		count = s.policy.QuestionCount
	}
	s.lastError = ""
	s.loading = true
	s.mu.Unlock()
	s.notify()

	generated, err := s.ai.GenerateQuestions(ctx, req.Resume, req.JobDescription, count, persona)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastError = classifyError(err, "failed to generate questions")
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("failed to generate questions: %w", err)
	}

	questions := make([]string, 0, len(generated)+2)
	questions = append(questions, s.policy.OpeningQuestion)
	questions = append(questions, generated...)
	questions = append(questions, s.policy.ClosingQuestion)

	s.questions = questions
	s.resume = req.Resume
	s.jobDescription = req.JobDescription
	s.persona = persona
	s.currentIndex = 0
	s.currentQuestion = questions[0]
	s.step = domain.StepQuestions
	s.mu.Unlock()
	s.notify()
	return nil
}

// StartInterview persists a session record for the generated question
// list and begins the interview. Session creation failure is recoverable:
// the step does not advance.
func (s *Service) StartInterview(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepQuestions {
		s.mu.Unlock()
		return fmt.Errorf("%w: no question list to start from", ErrValidation)
	}
	session := &domain.Session{
		SessionID: "sess_" + uuid.New().String()[:8],
		Questions: append([]string(nil), s.questions...),
		CreatedAt: time.Now(),
	}
	s.lastError = ""
	s.mu.Unlock()

	if err := s.store.CreateSession(ctx, session); err != nil {
		s.setError("failed to create session, please try again")
		return fmt.Errorf("failed to create session: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.answers = nil
	s.conversation = nil
	s.followUpCount = 0
	s.answerDraft = ""
	s.currentIndex = 0
	s.currentQuestion = s.questions[0]
	s.pendingFollowUp = nil
	s.step = domain.StepInterview
	firstQuestion := s.currentQuestion
	s.mu.Unlock()
	s.notify()

	s.speak(firstQuestion)
	log.Printf("INFO: interview %s started with %d questions", session.SessionID, len(session.Questions))
	return nil
}

// SetAnswerDraft updates the in-progress answer text.
func (s *Service) SetAnswerDraft(text string) {
	s.mu.Lock()
	s.answerDraft = text
	s.mu.Unlock()
	s.notify()
}

// SubmitAnswer records the current answer and advances the session:
// either into a follow-up exchange, to the next question, or to the
// report step after the final question. Scoring analysis is best-effort
// and never blocks progression.
func (s *Service) SubmitAnswer(ctx context.Context, answer string, timer TimerHandle) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepInterview && s.step != domain.StepFollowUp {
		s.mu.Unlock()
		return fmt.Errorf("%w: no question is active", ErrValidation)
	}
	if answer != "" {
		s.answerDraft = answer
	}
	text := strings.TrimSpace(s.answerDraft)
	if text == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: answer must not be blank", ErrValidation)
	}

	question := s.currentQuestion
	index := s.currentIndex
	sessionID := s.session.SessionID
	jobDescription := s.jobDescription

	s.conversation = append(s.conversation, domain.ConversationTurn{
		Role:      domain.RoleCandidate,
		Content:   text,
		Timestamp: time.Now(),
	})
	s.answers = append(s.answers, domain.AnswerRecord{Question: question, Answer: text})
	s.answerDraft = ""
	s.lastError = ""
	s.pendingFollowUp = nil
	s.mu.Unlock()
	s.notify()

	stored := &domain.StoredAnswer{
		AnswerID:      "ans_" + uuid.New().String()[:8],
		SessionID:     sessionID,
		QuestionIndex: index,
		Question:      question,
		Answer:        text,
		CreatedAt:     time.Now(),
	}
	if err := s.store.SaveAnswer(ctx, stored); err != nil {
		// Storage failure must not block the interview.
		log.Printf("ERROR: failed to save answer for %s: %v", sessionID, err)
	}
	go s.analyzeAnswer(stored.AnswerID, question, text, jobDescription)

	if analysis := s.decideFollowUp(ctx, question, text); analysis != nil {
		s.mu.Lock()
		s.pendingFollowUp = analysis
		s.step = domain.StepFollowUp
		s.mu.Unlock()
		s.notify()
		return nil
	}

	s.advance(timer)
	return nil
}

// SkipQuestion moves past the current question without persisting an
// answer. Any in-flight playback is stopped before the switch.
func (s *Service) SkipQuestion(timer TimerHandle) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepInterview && s.step != domain.StepFollowUp {
		s.mu.Unlock()
		return fmt.Errorf("%w: no question is active", ErrValidation)
	}
	s.lastError = ""
	s.pendingFollowUp = nil
	s.mu.Unlock()

	s.stopSpeaking()
	s.advance(timer)
	return nil
}

// SelectQuestion jumps to a question by index. Only valid during the
// interview step.
func (s *Service) SelectQuestion(index int, timer TimerHandle) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepInterview {
		s.mu.Unlock()
		return fmt.Errorf("%w: questions can only be selected during the interview", ErrValidation)
	}
	if index < 0 || index >= len(s.questions) {
		s.mu.Unlock()
		return fmt.Errorf("%w: question index %d out of range", ErrValidation, index)
	}
	s.mu.Unlock()

	s.stopSpeaking()

	s.mu.Lock()
	s.currentIndex = index
	s.currentQuestion = s.questions[index]
	s.answerDraft = ""
	s.followUpCount = 0
	s.conversation = nil
	s.pendingFollowUp = nil
	s.lastError = ""
	question := s.currentQuestion
	s.mu.Unlock()
	s.notify()

	if timer != nil {
		timer.Reset()
	}
	s.speak(question)
	return nil
}

// FinishInterview ends the session and moves to the report step.
func (s *Service) FinishInterview(timer TimerHandle) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no active session", ErrValidation)
	}
	s.finishLocked()
	s.mu.Unlock()
	s.notify()

	s.stopSpeaking()
	if timer != nil {
		timer.Reset()
	}
	return nil
}

// Reset discards all in-memory session state and returns to the input
// step. Persisted records remain in storage.
func (s *Service) Reset() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stopSpeaking()

	s.mu.Lock()
	s.step = domain.StepInput
	s.session = nil
	s.questions = nil
	s.currentIndex = 0
	s.currentQuestion = ""
	s.answerDraft = ""
	s.answers = nil
	s.conversation = nil
	s.followUpCount = 0
	s.pendingFollowUp = nil
	s.loading = false
	s.lastError = ""
	s.resume = ""
	s.jobDescription = ""
	s.persona = ""
	s.mu.Unlock()
	s.notify()
}

// CloseReport dismisses the report view and resets for a new session.
func (s *Service) CloseReport() {
	s.Reset()
}

// HandleTimerTimeout reacts to the question timer reaching zero. The
// answer is auto-submitted only when auto-submit is enabled and the draft
// is non-blank; an unsaved draft is never silently lost.
func (s *Service) HandleTimerTimeout(ctx context.Context, timer TimerHandle) {
	s.mu.Lock()
	autoSubmit := s.timerConfig.AutoSubmit
	hasDraft := strings.TrimSpace(s.answerDraft) != ""
	s.mu.Unlock()

	if autoSubmit && hasDraft {
		if err := s.SubmitAnswer(ctx, "", timer); err != nil {
			log.Printf("WARN: auto-submit on timeout failed: %v", err)
		}
		return
	}
	s.setError("time is up for this question")
}

// advance moves to the next top-level question, or to the report step
// after the last one. Conversation buffer, follow-up counter, and answer
// draft reset on every transition.
func (s *Service) advance(timer TimerHandle) {
	s.mu.Lock()
	s.currentIndex++
	if s.currentIndex >= len(s.questions) {
		s.finishLocked()
		s.mu.Unlock()
		s.notify()
		return
	}
	s.currentQuestion = s.questions[s.currentIndex]
	s.answerDraft = ""
	s.followUpCount = 0
	s.conversation = nil
	s.step = domain.StepInterview
	question := s.currentQuestion
	s.mu.Unlock()
	s.notify()

	if timer != nil {
		timer.Reset()
	}
	s.speak(question)
}

func (s *Service) finishLocked() {
	s.step = domain.StepReport
	s.currentQuestion = ""
	s.answerDraft = ""
	s.pendingFollowUp = nil
}

// analyzeAnswer runs the best-effort scoring analysis. Failures are
// logged, never surfaced.
func (s *Service) analyzeAnswer(answerID, question, answer, jobDescription string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := s.ai.ScoreAnswer(ctx, question, answer, jobDescription)
	if err != nil {
		log.Printf("WARN: answer scoring failed for %s: %v", answerID, err)
		return
	}
	analysis := &domain.AnswerAnalysis{
		AnalysisID:   "ana_" + uuid.New().String()[:8],
		AnswerID:     answerID,
		OverallScore: result.OverallScore,
		Strengths:    result.Strengths,
		Weaknesses:   result.Weaknesses,
		Suggestions:  result.Suggestions,
		CreatedAt:    time.Now(),
	}
	if err := s.store.SaveAnswerAnalysis(ctx, analysis); err != nil {
		log.Printf("WARN: failed to save answer analysis %s: %v", analysis.AnalysisID, err)
	}
}

// speak reads a question aloud, fire-and-forget.
func (s *Service) speak(text string) {
	if s.speaker == nil || text == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.speaker.Speak(ctx, text); err != nil {
			log.Printf("WARN: voice playback failed: %v", err)
		}
	}()
}

func (s *Service) stopSpeaking() {
	if s.speaker == nil {
		return
	}
	if err := s.speaker.StopSpeaking(); err != nil {
		log.Printf("WARN: failed to stop voice playback: %v", err)
	}
}

// classifyError maps a remote failure onto the user-facing message
// attached to the orchestrator's error field.
func classifyError(err error, fallback string) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "timed out") || strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded"):
		return "the request timed out, please check your connection and try again"
	case strings.Contains(msg, "API key"):
		return "AI service is not configured, please set your API key"
	default:
		return fallback
	}
}
