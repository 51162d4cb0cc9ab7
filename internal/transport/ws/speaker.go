package ws

import (
	"context"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/speech"
)

var _ speech.Speaker = (*Speaker)(nil)

// Speaker reads questions aloud by pushing speak events to the connected UI
// shell, which owns the actual audio output. Playback is fire-and-forget;
// a broadcast with no subscribers is not an error.
type Speaker struct {
	hub *Hub
}

// NewSpeaker creates a speaker backed by the given hub.
func NewSpeaker(hub *Hub) *Speaker {
	return &Speaker{hub: hub}
}

// Speak pushes the text to the UI for playback.
func (s *Speaker) Speak(_ context.Context, text string) error {
	return s.hub.BroadcastJSON(Envelope{
		Type: "speak",
		Ts:   time.Now().UnixMilli(),
		Data: map[string]string{"text": text},
	})
}

// StopSpeaking tells the UI to interrupt any in-flight playback.
func (s *Speaker) StopSpeaking() error {
	return s.hub.BroadcastJSON(Envelope{
		Type: "speak_stop",
		Ts:   time.Now().UnixMilli(),
	})
}
