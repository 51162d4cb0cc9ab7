package v1

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/ai"
	"github.com/Summus1999/InterviewSpark-sub000/internal/config"
	"github.com/Summus1999/InterviewSpark-sub000/internal/service"
	"github.com/Summus1999/InterviewSpark-sub000/tests/helpers"
)

type stubTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.transcript, s.err
}

func newVoiceHandler(t *testing.T, tr *stubTranscriber) *Handler {
	db := helpers.NewTestSQLiteStore(t)
	svc := service.New(db, ai.NewMockClient(), nil, config.DefaultInterviewPolicy())
	if tr == nil {
		return NewHandler(svc, nil, nil)
	}
	return NewHandler(svc, tr, nil)
}

func TestTranscribeReturnsTranscript(t *testing.T) {
	tr := &stubTranscriber{transcript: "I led the migration to microservices."}
	h := newVoiceHandler(t, tr)

	rec := doJSON(t, h.Transcribe, http.MethodPost, "/v1/voice/transcribe", `{"audio_base64":"UklGRg=="}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "I led the migration")
	assert.Equal(t, 1, tr.calls)
}

func TestTranscribeMissingAudio(t *testing.T) {
	tr := &stubTranscriber{}
	h := newVoiceHandler(t, tr)

	rec := doJSON(t, h.Transcribe, http.MethodPost, "/v1/voice/transcribe", `{"audio_base64":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, tr.calls)
}

func TestTranscribeNotConfigured(t *testing.T) {
	h := newVoiceHandler(t, nil)

	rec := doJSON(t, h.Transcribe, http.MethodPost, "/v1/voice/transcribe", `{"audio_base64":"UklGRg=="}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTranscribeRemoteFailure(t *testing.T) {
	tr := &stubTranscriber{err: errors.New("upstream 500")}
	h := newVoiceHandler(t, tr)

	rec := doJSON(t, h.Transcribe, http.MethodPost, "/v1/voice/transcribe", `{"audio_base64":"UklGRg=="}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
