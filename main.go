package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/ai"
	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/speech"
	"github.com/Summus1999/InterviewSpark-sub000/internal/config"
	store "github.com/Summus1999/InterviewSpark-sub000/internal/repository"
	"github.com/Summus1999/InterviewSpark-sub000/internal/service"
	"github.com/Summus1999/InterviewSpark-sub000/internal/timer"
	httptransport "github.com/Summus1999/InterviewSpark-sub000/internal/transport/http"
	"github.com/Summus1999/InterviewSpark-sub000/internal/transport/ws"
)

func main() {
	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: failed to load .env: %v", err)
	}

	cfg := config.Load()

	log.Printf("Starting interview orchestrator...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("AI Model: %s", cfg.AIModel)

	policy, err := config.LoadInterviewPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatalf("Failed to load interview policy: %v", err)
	}

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize AI client. SPARK_MODE=MOCK swaps in the mock client.
	aiClient := ai.NewAIClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout)

	// Initialize transcription for the fallback voice capture strategy.
	var transcriber speech.Transcriber
	if cfg.AIAPIKey != "" {
		transcriber = speech.NewHTTPTranscriber(cfg.TranscribeBaseURL, cfg.AIAPIKey, cfg.TranscribeTimeout)
	}

	// Initialize WebSocket hub. Question playback goes through it to the
	// UI shell, which owns the audio device.
	hub := ws.NewHub()
	go hub.Run()

	// Initialize service
	svc := service.New(db, aiClient, ws.NewSpeaker(hub), policy)

	wsServer := ws.NewServer(hub, svc)

	// Per-question countdown. Ticks and the one-shot warning are pushed
	// to the UI; the timeout decision belongs to the orchestrator.
	timerConfig := svc.TimerConfig()
	var qt *timer.QuestionTimer
	qt = timer.New(timerConfig, timerConfig.Enabled, timer.Callbacks{
		OnTick: func(remaining int) {
			_ = hub.BroadcastJSON(ws.Envelope{
				Type: "timer_tick",
				Ts:   time.Now().UnixMilli(),
				Data: map[string]int{"remaining": remaining},
			})
		},
		OnWarning: func() {
			_ = hub.BroadcastJSON(ws.Envelope{Type: "timer_warning", Ts: time.Now().UnixMilli()})
		},
		OnTimeout: func() {
			svc.HandleTimerTimeout(context.Background(), qt)
		},
	})
	defer qt.Shutdown()

	e := httptransport.NewServer(svc, wsServer, transcriber, qt)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down orchestrator...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Orchestrator stopped")
}
