// Package voice implements voice answer capture with a two-strategy
// failover: on-device recognition first, remote transcription of recorded
// audio as the fallback.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Summus1999/InterviewSpark-sub000/internal/adapter/speech"
	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

var (
	// ErrTranscriptionTimeout is returned when the remote transcription
	// does not answer within the configured deadline.
	ErrTranscriptionTimeout = errors.New("transcription timed out")
	// ErrCancelled is returned when the capture was aborted by the user.
	ErrCancelled = errors.New("voice capture cancelled")
)

// Result is the terminal outcome of one capture invocation.
type Result struct {
	Transcript string
	Outcome    domain.CaptureOutcome
}

// Config holds the capture deadlines. Zero values take the production
// defaults.
type Config struct {
	// NativeWatchdog is how long the on-device engine may stay silent
	// after start before the capture fails over. Default 3 s.
	NativeWatchdog time.Duration
	// TranscribeTimeout bounds the remote transcription call. The
	// deadline is raced on our side; a late result is discarded even if
	// the remote eventually answers. Default 15 s.
	TranscribeTimeout time.Duration
}

func (c *Config) normalize() {
	if c.NativeWatchdog <= 0 {
		c.NativeWatchdog = 3 * time.Second
	}
	if c.TranscribeTimeout <= 0 {
		c.TranscribeTimeout = 15 * time.Second
	}
}

// Controller starts capture invocations against whatever capabilities the
// device offers. Any of the capabilities may be nil.
type Controller struct {
	recognizer  speech.Recognizer
	recorder    speech.Recorder
	transcriber speech.Transcriber
	config      Config
}

// NewController builds a controller over the given capability set.
func NewController(recognizer speech.Recognizer, recorder speech.Recorder, transcriber speech.Transcriber, config Config) *Controller {
	config.normalize()
	return &Controller{
		recognizer:  recognizer,
		recorder:    recorder,
		transcriber: transcriber,
		config:      config,
	}
}

func (c *Controller) hasFallback() bool {
	return c.recorder != nil && c.transcriber != nil
}

// Start begins one capture invocation. onPartial, when non-nil, receives
// the cumulative transcript after every on-device recognition event; the
// fallback path produces no partials. Returns speech.ErrNoCapability when
// the device offers neither strategy.
func (c *Controller) Start(ctx context.Context, onPartial func(string)) (*Capture, error) {
	if c.recognizer == nil && !c.hasFallback() {
		return nil, speech.ErrNoCapability
	}

	capture := &Capture{
		id:         "cap_" + uuid.New().String()[:8],
		controller: c,
		onPartial:  onPartial,
	}

	if c.recognizer == nil {
		capture.failedOver = true
		if err := c.recorder.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start audio recording: %w", err)
		}
		log.Printf("INFO: voice capture %s recording for remote transcription", capture.id)
		return capture, nil
	}

	capture.native = true
	events, err := c.recognizer.Start(ctx)
	if err != nil {
		log.Printf("WARN: voice capture %s native start failed: %v", capture.id, err)
		if err := capture.failOver(ctx); err != nil {
			return nil, err
		}
		return capture, nil
	}

	firstEvent := make(chan struct{})
	go capture.watchdog(ctx, firstEvent)
	go capture.consumeNative(ctx, events, firstEvent)
	log.Printf("INFO: voice capture %s using on-device recognition", capture.id)
	return capture, nil
}

// Capture is a single in-flight capture invocation. Stop and Abort are
// safe to call concurrently and more than once; the first terminal
// outcome wins.
type Capture struct {
	id         string
	controller *Controller
	onPartial  func(string)

	mu         sync.Mutex
	native     bool
	failedOver bool
	transcript string
	aborted    bool

	failErr     error
	failOutcome domain.CaptureOutcome

	done      bool
	result    Result
	resultErr error
}

// ID identifies this invocation in logs.
func (capture *Capture) ID() string { return capture.id }

// FailedOver reports whether the capture switched to the recording path.
func (capture *Capture) FailedOver() bool {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	return capture.failedOver
}

// watchdog fails the capture over when the on-device engine produces
// nothing within the configured window.
func (capture *Capture) watchdog(ctx context.Context, firstEvent <-chan struct{}) {
	select {
	case <-firstEvent:
	case <-ctx.Done():
	case <-time.After(capture.controller.config.NativeWatchdog):
		log.Printf("WARN: voice capture %s native engine silent past watchdog, failing over", capture.id)
		if err := capture.failOver(ctx); err != nil {
			capture.fail(err, domain.CaptureNoDevice)
		}
	}
}

// consumeNative drains the recognition event stream. Each event carries
// the cumulative recognized text.
func (capture *Capture) consumeNative(ctx context.Context, events <-chan speech.RecognizerEvent, firstEvent chan struct{}) {
	first := true
	for event := range events {
		if first {
			close(firstEvent)
			first = false
		}
		if event.Err != nil {
			log.Printf("WARN: voice capture %s native engine error: %v", capture.id, event.Err)
			if err := capture.failOver(ctx); err != nil {
				capture.fail(err, domain.CaptureNoDevice)
			}
			return
		}
		if event.End {
			return
		}

		capture.mu.Lock()
		if capture.aborted || capture.done || !capture.native {
			capture.mu.Unlock()
			return
		}
		capture.transcript = event.Transcript
		onPartial := capture.onPartial
		capture.mu.Unlock()

		if onPartial != nil {
			onPartial(event.Transcript)
		}
	}
}

// failOver switches to the recording strategy. At most one failover per
// invocation.
func (capture *Capture) failOver(ctx context.Context) error {
	capture.mu.Lock()
	if capture.failedOver || capture.done || capture.aborted {
		capture.mu.Unlock()
		return nil
	}
	capture.failedOver = true
	capture.native = false
	capture.mu.Unlock()

	if capture.controller.recognizer != nil {
		_ = capture.controller.recognizer.Stop()
	}
	if !capture.controller.hasFallback() {
		return speech.ErrNoCapability
	}
	if err := capture.controller.recorder.Start(ctx); err != nil {
		return fmt.Errorf("failed to start audio recording: %w", err)
	}
	log.Printf("INFO: voice capture %s failed over to recording", capture.id)
	return nil
}

func (capture *Capture) fail(err error, outcome domain.CaptureOutcome) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	if capture.done || capture.failErr != nil {
		return
	}
	capture.failErr = err
	capture.failOutcome = outcome
}

// finish records the terminal outcome. The first caller wins; everyone
// else observes the recorded result.
func (capture *Capture) finish(result Result, err error) (Result, error) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	if capture.done {
		return capture.result, capture.resultErr
	}
	capture.done = true
	capture.result = result
	capture.resultErr = err
	return result, err
}

// Abort cancels the capture. Any result still in flight is discarded.
func (capture *Capture) Abort() {
	capture.mu.Lock()
	if capture.done {
		capture.mu.Unlock()
		return
	}
	capture.aborted = true
	capture.done = true
	capture.result = Result{Outcome: domain.CaptureCancelled}
	capture.resultErr = ErrCancelled
	native := capture.native
	failedOver := capture.failedOver
	capture.mu.Unlock()

	if native && capture.controller.recognizer != nil {
		_ = capture.controller.recognizer.Stop()
	}
	if failedOver && capture.controller.recorder != nil {
		_, _ = capture.controller.recorder.Stop()
	}
	log.Printf("INFO: voice capture %s aborted", capture.id)
}

// Stop ends the capture and produces the transcript.
func (capture *Capture) Stop(ctx context.Context) (Result, error) {
	capture.mu.Lock()
	if capture.done {
		result, err := capture.result, capture.resultErr
		capture.mu.Unlock()
		return result, err
	}
	if capture.failErr != nil {
		failErr, outcome := capture.failErr, capture.failOutcome
		capture.mu.Unlock()
		return capture.finish(Result{Outcome: outcome}, failErr)
	}
	native := capture.native
	capture.mu.Unlock()

	if native {
		return capture.stopNative(ctx)
	}
	return capture.stopFallback(ctx)
}

func (capture *Capture) stopNative(ctx context.Context) (Result, error) {
	_ = capture.controller.recognizer.Stop()

	capture.mu.Lock()
	// The watchdog may have failed over between the caller's check and
	// the engine stop.
	if !capture.native && !capture.done {
		capture.mu.Unlock()
		return capture.stopFallback(ctx)
	}
	transcript := capture.transcript
	capture.mu.Unlock()

	return capture.finish(Result{Transcript: transcript, Outcome: domain.CaptureNative}, nil)
}

func (capture *Capture) stopFallback(ctx context.Context) (Result, error) {
	audio, err := capture.controller.recorder.Stop()
	if err != nil {
		return capture.finish(Result{Outcome: domain.CaptureNoDevice},
			fmt.Errorf("failed to stop audio recording: %w", err))
	}

	tctx, cancel := context.WithTimeout(ctx, capture.controller.config.TranscribeTimeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		text, err := capture.controller.transcriber.Transcribe(tctx, audio)
		ch <- outcome{text: text, err: err}
	}()

	select {
	case o := <-ch:
		if o.err != nil {
			if errors.Is(o.err, context.DeadlineExceeded) {
				return capture.finish(Result{Outcome: domain.CaptureTimeout}, ErrTranscriptionTimeout)
			}
			return capture.finish(Result{Outcome: domain.CaptureFallback},
				fmt.Errorf("failed to transcribe recording: %w", o.err))
		}
		return capture.finish(Result{Transcript: o.text, Outcome: domain.CaptureFallback}, nil)
	case <-tctx.Done():
		if ctx.Err() != nil {
			return capture.finish(Result{Outcome: domain.CaptureCancelled}, ErrCancelled)
		}
		log.Printf("WARN: voice capture %s transcription exceeded %s, discarding", capture.id, capture.controller.config.TranscribeTimeout)
		return capture.finish(Result{Outcome: domain.CaptureTimeout}, ErrTranscriptionTimeout)
	}
}
