package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// GenerateQuestions generates a fresh question list from a resume and a
// job description.
// POST /v1/interview/questions/generate
func (h *Handler) GenerateQuestions(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.GenerateQuestionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Resume == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "resume is required"})
	}
	if req.JobDescription == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "job_description is required"})
	}

	if err := h.service.GenerateQuestions(ctx, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// StartInterview persists a session and enters the interview step.
// POST /v1/interview/start
func (h *Handler) StartInterview(c echo.Context) error {
	if err := h.service.StartInterview(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	if h.timer != nil {
		h.timer.Reset()
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// SubmitAnswer records the current answer and advances the session.
// POST /v1/interview/answer
func (h *Handler) SubmitAnswer(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.service.SubmitAnswer(ctx, req.Answer, h.timerHandle()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// SetAnswerDraft updates the in-progress answer text.
// POST /v1/interview/answer/draft
func (h *Handler) SetAnswerDraft(c echo.Context) error {
	var req domain.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	h.service.SetAnswerDraft(req.Answer)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// SkipQuestion moves past the current question without an answer.
// POST /v1/interview/skip
func (h *Handler) SkipQuestion(c echo.Context) error {
	if err := h.service.SkipQuestion(h.timerHandle()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// SelectQuestion jumps to a question by index.
// POST /v1/interview/select
func (h *Handler) SelectQuestion(c echo.Context) error {
	var req domain.SelectQuestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.service.SelectQuestion(req.Index, h.timerHandle()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// SelectFollowUp picks one of the proposed follow-up questions.
// POST /v1/interview/followup/select
func (h *Handler) SelectFollowUp(c echo.Context) error {
	var req domain.SelectFollowUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.service.SelectFollowUp(req.Index, h.timerHandle()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// SkipFollowUp declines the pending follow-up.
// POST /v1/interview/followup/skip
func (h *Handler) SkipFollowUp(c echo.Context) error {
	if err := h.service.SkipFollowUp(h.timerHandle()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// FinishInterview ends the session and moves to the report step.
// POST /v1/interview/finish
func (h *Handler) FinishInterview(c echo.Context) error {
	if err := h.service.FinishInterview(h.timerHandle()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// ResetInterview discards all in-memory session state.
// POST /v1/interview/reset
func (h *Handler) ResetInterview(c echo.Context) error {
	h.service.Reset()
	if h.timer != nil {
		h.timer.Pause()
	}
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// GetState returns the current orchestrator snapshot.
// GET /v1/interview/state
func (h *Handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Snapshot())
}

// GetFollowUpSettings returns the active follow-up settings.
// GET /v1/interview/settings/followup
func (h *Handler) GetFollowUpSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.FollowUpSettings())
}

// UpdateFollowUpSettings replaces the follow-up settings. Out-of-range
// values are clamped, not rejected.
// POST /v1/interview/settings/followup
func (h *Handler) UpdateFollowUpSettings(c echo.Context) error {
	var settings domain.FollowUpSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	return c.JSON(http.StatusOK, h.service.UpdateFollowUpSettings(settings))
}

// GetTimerConfig returns the active timer configuration.
// GET /v1/interview/settings/timer
func (h *Handler) GetTimerConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.TimerConfig())
}

// UpdateTimerConfig replaces the timer configuration.
// POST /v1/interview/settings/timer
func (h *Handler) UpdateTimerConfig(c echo.Context) error {
	var config domain.TimerConfig
	if err := c.Bind(&config); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	updated := h.service.UpdateTimerConfig(config)
	if h.timer != nil {
		h.timer.SetTimeLimit(updated.TimePerQuestion)
	}
	return c.JSON(http.StatusOK, updated)
}
