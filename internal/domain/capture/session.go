package capture

import (
	"sync"
	"time"

	"echominds-server-go/internal/platform/errors"
)

// State tracks where a capture session is in its lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StateStopped   State = "stopped"
	StateFailed    State = "failed"
)

// FailReason distinguishes capture failures.
type FailReason string

const (
	FailNone        FailReason = ""
	FailNoSignal    FailReason = "no_signal"
	FailDeviceError FailReason = "device_error"
)

// Session is the mutable lifecycle of one recording attempt. Transitions
// only move forward: idle to recording, recording to stopped or failed.
type Session struct {
	mu        sync.Mutex
	state     State
	reason    FailReason
	elapsed   time.Duration
	cancelled bool
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Reason() FailReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Start moves the session into recording. Starting twice is an error.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return errors.New(errors.KindCapture, "session.start",
			"session already started")
	}
	s.state = StateRecording
	return nil
}

// Stop completes a recording session normally.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRecording {
		s.state = StateStopped
	}
}

// Fail terminates the session with a reason. A stopped session stays
// stopped.
func (s *Session) Fail(reason FailReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRecording || s.state == StateIdle {
		s.state = StateFailed
		s.reason = reason
	}
}

// Elapsed reports how long the recorder ran this session.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *Session) setElapsed(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elapsed = d
}

// Cancel requests an early stop; the recorder observes it between polls.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
}

func (s *Session) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
