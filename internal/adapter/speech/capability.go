// Package speech provides the speech capability interfaces and the remote
// transcription client used during answer entry.
package speech

import (
	"context"
	"errors"
)

// ErrNoCapability is returned when a device offers neither on-device
// recognition nor audio recording.
var ErrNoCapability = errors.New("no speech capability available on this device")

// RecognizerEvent is one message from an on-device recognition engine.
// Exactly one of Transcript or Err is meaningful; End marks the engine
// stopping on its own.
type RecognizerEvent struct {
	Transcript string
	Err        error
	End        bool
}

// Recognizer is an on-device speech recognition engine. Low latency, but
// unreliable across environments.
type Recognizer interface {
	// Start begins recognition and returns the event stream. The stream is
	// closed when recognition ends.
	Start(ctx context.Context) (<-chan RecognizerEvent, error)
	// Stop ends recognition. Safe to call more than once.
	Stop() error
}

// Recorder captures raw audio for the fallback transcription strategy.
type Recorder interface {
	// Start begins capturing audio.
	Start(ctx context.Context) error
	// Stop ends the capture and returns the recorded audio, base64-encoded.
	Stop() (string, error)
}

// Transcriber turns recorded audio into text via a remote service.
type Transcriber interface {
	Transcribe(ctx context.Context, audioBase64 string) (string, error)
}

// Speaker reads a question aloud. Playback is always fire-and-forget for
// the orchestrator; failures are logged, never fatal.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	// StopSpeaking interrupts any in-flight playback.
	StopSpeaking() error
}
