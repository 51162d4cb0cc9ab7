package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// DocumentRequest is the request to store a resume or a job description.
type DocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SaveResume stores a resume document.
// POST /v1/resumes
func (h *Handler) SaveResume(c echo.Context) error {
	var req DocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	id, err := h.service.SaveResume(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

// ListResumes lists stored resumes.
// GET /v1/resumes
func (h *Handler) ListResumes(c echo.Context) error {
	resumes, err := h.service.ListResumes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"resumes": resumes})
}

// DeleteResume removes a stored resume.
// DELETE /v1/resumes/:id
func (h *Handler) DeleteResume(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.service.DeleteResume(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// SaveJobDescription stores a job description document.
// POST /v1/job_descriptions
func (h *Handler) SaveJobDescription(c echo.Context) error {
	var req DocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	id, err := h.service.SaveJobDescription(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

// ListJobDescriptions lists stored job descriptions.
// GET /v1/job_descriptions
func (h *Handler) ListJobDescriptions(c echo.Context) error {
	jds, err := h.service.ListJobDescriptions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"job_descriptions": jds})
}

// DeleteJobDescription removes a stored job description.
// DELETE /v1/job_descriptions/:id
func (h *Handler) DeleteJobDescription(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.service.DeleteJobDescription(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
