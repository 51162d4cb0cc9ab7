package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/ai"
	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// decideFollowUp asks the remote engine whether to probe deeper after an
// answer. A nil result means proceed to the next question. The budget
// check happens locally: an exhausted budget or disabled follow-ups never
// trigger a remote call. Remote failures degrade to proceed; a follow-up
// failure must never block the interview.
func (s *Service) decideFollowUp(ctx context.Context, question, answer string) *domain.FollowUpAnalysis {
	s.mu.Lock()
	settings := s.followUpSettings
	count := s.followUpCount
	history := serializeConversation(s.conversation)
	jobDescription := s.jobDescription
	persona := s.persona
	s.mu.Unlock()

	if !settings.Enabled || count >= settings.MaxFollowUps {
		return nil
	}

	analysis, err := s.ai.AnalyzeForFollowUp(ctx, &ai.FollowUpRequest{
		OriginalQuestion:    question,
		Answer:              answer,
		ConversationHistory: history,
		JobDescription:      jobDescription,
		MaxFollowUps:        settings.MaxFollowUps - count,
		PreferredTypes:      settings.PreferredTypes,
		TriggerThreshold:    settings.TriggerThreshold,
		Persona:             persona,
	})
	if err != nil {
		log.Printf("WARN: follow-up analysis failed, proceeding to next question: %v", err)
		return nil
	}
	if !settings.AutoTrigger || !analysis.ShouldFollowUp || len(analysis.Questions) == 0 {
		return nil
	}
	return analysis
}

// SelectFollowUp picks one of the proposed follow-up questions. The
// follow-up becomes the active question without touching the session's
// fixed question list.
func (s *Service) SelectFollowUp(index int, timer TimerHandle) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepFollowUp || s.pendingFollowUp == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no follow-up is pending", ErrValidation)
	}
	if index < 0 || index >= len(s.pendingFollowUp.Questions) {
		s.mu.Unlock()
		return fmt.Errorf("%w: follow-up index %d out of range", ErrValidation, index)
	}
	followUp := s.pendingFollowUp.Questions[index]

	s.conversation = append(s.conversation, domain.ConversationTurn{
		Role:         domain.RoleInterviewer,
		Content:      followUp.Question,
		Timestamp:    time.Now(),
		QuestionType: followUp.Type,
	})
	s.currentQuestion = followUp.Question
	s.followUpCount++
	s.pendingFollowUp = nil
	s.answerDraft = ""
	s.lastError = ""
	s.step = domain.StepInterview
	question := s.currentQuestion
	s.mu.Unlock()
	s.notify()

	if timer != nil {
		timer.Reset()
	}
	s.speak(question)
	return nil
}

// SkipFollowUp declines the pending follow-up and proceeds to the next
// question.
func (s *Service) SkipFollowUp(timer TimerHandle) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.step != domain.StepFollowUp {
		s.mu.Unlock()
		return fmt.Errorf("%w: no follow-up is pending", ErrValidation)
	}
	s.pendingFollowUp = nil
	s.lastError = ""
	s.mu.Unlock()

	s.advance(timer)
	return nil
}

// serializeConversation renders the micro-dialogue with role labels, one
// turn per line, for the remote analysis prompt.
func serializeConversation(turns []domain.ConversationTurn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		label := "Candidate"
		if turn.Role == domain.RoleInterviewer {
			label = "Interviewer"
		}
		lines = append(lines, label+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
