package v1

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TranscribeRequest carries base64-encoded audio recorded by the UI's
// fallback capture strategy.
type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64"`
}

// Transcribe sends recorded audio to the remote transcription service and
// returns the recognized text.
func (h *Handler) Transcribe(c echo.Context) error {
	if h.transcriber == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "transcription is not configured",
		})
	}

	var req TranscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.AudioBase64) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "audio_base64 is required"})
	}

	transcript, err := h.transcriber.Transcribe(c.Request().Context(), req.AudioBase64)
	if err != nil {
		log.Printf("ERROR: transcription failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "transcription failed"})
	}

	return c.JSON(http.StatusOK, map[string]string{"transcript": transcript})
}
