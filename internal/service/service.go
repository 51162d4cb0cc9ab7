// Package service implements the interview session orchestrator: the
// state machine that sequences questions, gates progression through
// follow-up decisions, and drives report generation.
package service

import (
	"errors"
	"sync"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/ai"
	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/speech"
	"github.com/Summus1999/InterviewSpark-sub000/internal/config"
	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
	store "github.com/Summus1999/InterviewSpark-sub000/internal/repository"
)

// ErrValidation marks locally rejected input. No remote call was made and
// no state changed.
var ErrValidation = errors.New("validation failed")

// TimerHandle lets the state machine reset the active question timer on a
// question transition. A nil handle is a valid no-op.
type TimerHandle interface {
	Reset()
}

// Service owns the single active interview session. All other components
// are stateless per invocation; only the Service mutates session state.
type Service struct {
	store   store.Store
	ai      ai.AIClient
	speaker speech.Speaker
	policy  *config.InterviewPolicy

	// opMu serializes operations: question transitions are strictly
	// sequential, including their remote calls.
	opMu sync.Mutex
	// mu guards the session state below for snapshot readers.
	mu sync.Mutex

	step            domain.Step
	session         *domain.Session
	questions       []string
	currentIndex    int
	currentQuestion string
	answerDraft     string
	answers         []domain.AnswerRecord
	conversation    []domain.ConversationTurn
	followUpCount   int
	pendingFollowUp *domain.FollowUpAnalysis
	loading         bool
	lastError       string

	resume         string
	jobDescription string
	persona        string

	followUpSettings domain.FollowUpSettings
	timerConfig      domain.TimerConfig

	reportRetries map[string]int

	// report generation knobs, fixed in production
	reportTimeout    time.Duration
	progressInterval time.Duration
	estimateSeconds  int

	observers         []Observer
	progressObservers []ProgressObserver
}

// New creates the orchestrator. speaker may be nil when the device offers
// no playback.
func New(store store.Store, aiClient ai.AIClient, speaker speech.Speaker, policy *config.InterviewPolicy) *Service {
	if policy == nil {
		policy = config.DefaultInterviewPolicy()
	}
	return &Service{
		store:            store,
		ai:               aiClient,
		speaker:          speaker,
		policy:           policy,
		step:             domain.StepInput,
		followUpSettings: domain.DefaultFollowUpSettings(),
		timerConfig:      domain.DefaultTimerConfig(),
		reportRetries:    make(map[string]int),
		reportTimeout:    60 * time.Second,
		progressInterval: time.Second,
		estimateSeconds:  30,
	}
}

// Snapshot returns a read-only view of the orchestrator state.
func (s *Service) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() domain.Snapshot {
	snapshot := domain.Snapshot{
		Step:            s.step,
		CurrentQuestion: s.currentQuestion,
		CurrentIndex:    s.currentIndex,
		TotalQuestions:  len(s.questions),
		AnswerDraft:     s.answerDraft,
		FollowUpCount:   s.followUpCount,
		Loading:         s.loading,
		Error:           s.lastError,
		Answers:         append([]domain.AnswerRecord(nil), s.answers...),
		Conversation:    append([]domain.ConversationTurn(nil), s.conversation...),
		PendingFollowUp: s.pendingFollowUp,
	}
	if s.session != nil {
		snapshot.SessionID = s.session.SessionID
	}
	return snapshot
}

// setError records a classified error message. A new operation clears the
// previous one; only one error is surfaced at a time.
func (s *Service) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	s.notify()
}
