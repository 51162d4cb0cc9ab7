// Package v1 provides the HTTP handlers for the interview orchestrator.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/speech"
	"github.com/Summus1999/InterviewSpark-sub000/internal/service"
	"github.com/Summus1999/InterviewSpark-sub000/internal/timer"
)

// Handler handles HTTP requests.
type Handler struct {
	service     *service.Service
	transcriber speech.Transcriber
	timer       *timer.QuestionTimer
}

// NewHandler creates a new handler. The transcriber and timer may be nil
// when transcription is not configured or no countdown is wanted.
func NewHandler(service *service.Service, transcriber speech.Transcriber, qt *timer.QuestionTimer) *Handler {
	return &Handler{
		service:     service,
		transcriber: transcriber,
		timer:       qt,
	}
}

// timerHandle returns the question timer as the capability the service
// accepts. The explicit nil check matters: a typed nil inside the
// interface would not compare equal to nil on the service side.
func (h *Handler) timerHandle() service.TimerHandle {
	if h.timer == nil {
		return nil
	}
	return h.timer
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Interview session lifecycle
	e.POST("/v1/interview/questions/generate", h.GenerateQuestions)
	e.POST("/v1/interview/start", h.StartInterview)
	e.POST("/v1/interview/answer", h.SubmitAnswer)
	e.POST("/v1/interview/answer/draft", h.SetAnswerDraft)
	e.POST("/v1/interview/skip", h.SkipQuestion)
	e.POST("/v1/interview/select", h.SelectQuestion)
	e.POST("/v1/interview/followup/select", h.SelectFollowUp)
	e.POST("/v1/interview/followup/skip", h.SkipFollowUp)
	e.POST("/v1/interview/finish", h.FinishInterview)
	e.POST("/v1/interview/reset", h.ResetInterview)
	e.GET("/v1/interview/state", h.GetState)

	// Fallback voice capture: the UI records audio locally and posts it
	// here for remote transcription.
	e.POST("/v1/voice/transcribe", h.Transcribe)

	// Settings
	e.GET("/v1/interview/settings/followup", h.GetFollowUpSettings)
	e.POST("/v1/interview/settings/followup", h.UpdateFollowUpSettings)
	e.GET("/v1/interview/settings/timer", h.GetTimerConfig)
	e.POST("/v1/interview/settings/timer", h.UpdateTimerConfig)

	// Reports
	e.GET("/v1/sessions", h.ListSessions)
	e.GET("/v1/sessions/:session_id/report", h.GetSessionReport)

	// Document storage
	e.POST("/v1/resumes", h.SaveResume)
	e.GET("/v1/resumes", h.ListResumes)
	e.DELETE("/v1/resumes/:id", h.DeleteResume)
	e.POST("/v1/job_descriptions", h.SaveJobDescription)
	e.GET("/v1/job_descriptions", h.ListJobDescriptions)
	e.DELETE("/v1/job_descriptions/:id", h.DeleteJobDescription)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// writeError maps a service failure onto a status code and a stable error
// body.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error(), "code": "session_not_found"})
	case errors.Is(err, service.ErrNoAnswers):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error(), "code": "no_answers"})
	case errors.Is(err, service.ErrReportTimeout):
		return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": err.Error(), "code": "timeout"})
	case errors.Is(err, service.ErrRetryBudgetExhausted):
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error(), "code": "retry_budget_exhausted"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
