package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
	store "github.com/Summus1999/InterviewSpark-sub000/internal/repository"
)

func getReport(t *testing.T, h *Handler, sessionID, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID+"/report"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/sessions/:session_id/report")
	c.SetParamNames("session_id")
	c.SetParamValues(sessionID)
	if err := h.GetSessionReport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func seedAnsweredSession(t *testing.T, db store.Store, sessionID string) {
	t.Helper()
	ctx := context.Background()
	session := &domain.Session{SessionID: sessionID, Questions: []string{"Q1"}, CreatedAt: time.Now()}
	if err := db.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	answer := &domain.StoredAnswer{
		AnswerID:  "ans_" + sessionID,
		SessionID: sessionID,
		Question:  "Q1",
		Answer:    "an answer",
		CreatedAt: time.Now(),
	}
	if err := db.SaveAnswer(ctx, answer); err != nil {
		t.Fatalf("SaveAnswer failed: %v", err)
	}
}

func TestGetSessionReportNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := getReport(t, h, "sess_missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "session_not_found", resp["code"])
}

func TestGetSessionReportNoAnswers(t *testing.T) {
	h, db := newTestHandler(t)
	session := &domain.Session{SessionID: "sess_empty", Questions: []string{"Q1"}, CreatedAt: time.Now()}
	if err := db.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	rec := getReport(t, h, "sess_empty", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "no_answers", resp["code"])
}

func TestGetSessionReportGeneratesAndCaches(t *testing.T) {
	h, db := newTestHandler(t)
	seedAnsweredSession(t, db, "sess_rep")

	rec := getReport(t, h, "sess_rep", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var report domain.Report
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "sess_rep", report.SessionID)
	assert.NotEmpty(t, report.Summary)

	cached, err := db.GetReport(context.Background(), "sess_rep")
	assert.NoError(t, err)
	if assert.NotNil(t, cached) {
		assert.Equal(t, report.ReportID, cached.ReportID)
	}

	// A second fetch serves the cached report.
	rec = getReport(t, h, "sess_rep", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var again domain.Report
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, report.ReportID, again.ReportID)
}

func TestListSessions(t *testing.T) {
	h, db := newTestHandler(t)
	seedAnsweredSession(t, db, "sess_list")

	rec := doJSON(t, h.ListSessions, http.MethodGet, "/v1/sessions", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sessions []domain.Session `json:"sessions"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Sessions, 1)
}
