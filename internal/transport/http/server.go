// Package http provides the HTTP server for the interview orchestrator.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/speech"
	"github.com/Summus1999/InterviewSpark-sub000/internal/service"
	"github.com/Summus1999/InterviewSpark-sub000/internal/timer"
	v1 "github.com/Summus1999/InterviewSpark-sub000/internal/transport/http/v1"
	"github.com/Summus1999/InterviewSpark-sub000/internal/transport/ws"
)

// NewServer creates and configures the HTTP server serving the UI layer:
// the interview operations, settings, reports, document storage, and the
// state-snapshot WebSocket.
func NewServer(svc *service.Service, wsServer *ws.Server, transcriber speech.Transcriber, qt *timer.QuestionTimer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc, transcriber, qt)
	v1Handler.RegisterRoutes(e)

	if wsServer != nil {
		e.GET("/ws/state", wsServer.HandleWebSocket)
	}

	return e
}
