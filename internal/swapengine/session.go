package swapengine

import (
	"sync"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
)

// State is the lifecycle phase of the current swap attempt.
type State string

const (
	StateIdle      State = "idle"
	StateQuoting   State = "quoting"
	StateQuoted    State = "quoted"
	StateBuilding  State = "building"
	StateSubmitted State = "submitted"
	StateConfirmed State = "confirmed"
	StateFailed    State = "failed"
)

// Session tracks one user's swap attempt through
// Idle → Quoting → Quoted → Building → Submitted → Confirmed|Failed.
//
// Every intent edit bumps a monotonically increasing generation token; a
// quote result is applied only if its generation still matches, so a slow
// superseded lookup can never overwrite a newer one. Attempts in the
// Building/Submitted phase are not cancelable and block new edits.
type Session struct {
	mu     sync.Mutex
	state  State
	gen    uint64
	intent *SwapIntent
	quote  *deepbook.Quote
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Edit supersedes the current intent and starts a new Quoting phase.
// Returns the generation token the caller must present with the quote
// result. Fails with ErrAttemptInFlight while an attempt is being built or
// submitted.
func (s *Session) Edit(intent *SwapIntent) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateBuilding || s.state == StateSubmitted {
		return 0, ErrAttemptInFlight
	}

	s.gen++
	s.intent = intent
	s.quote = nil
	s.state = StateQuoting
	return s.gen, nil
}

// ApplyQuote applies a quote result produced for the given generation.
// Stale results (superseded generation) are discarded and false is returned.
// A failed lookup for the current generation clears the estimate and returns
// the session to Idle.
func (s *Session) ApplyQuote(gen uint64, quote *deepbook.Quote, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	if err != nil || quote == nil {
		s.quote = nil
		s.state = StateIdle
		return true
	}

	s.quote = quote
	s.state = StateQuoted
	return true
}

// BeginAttempt transitions Quoted → Building and hands out the immutable
// inputs of the attempt. Only one attempt may be in flight.
func (s *Session) BeginAttempt() (*SwapIntent, *deepbook.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateBuilding || s.state == StateSubmitted {
		return nil, nil, ErrAttemptInFlight
	}
	if s.state != StateQuoted || s.quote == nil {
		return nil, nil, &deepbook.ValidationError{Field: "quote", Reason: "no current quote to execute against"}
	}

	s.state = StateBuilding
	return s.intent, s.quote, nil
}

// MarkSubmitted records that the attempt's order has been handed to the
// signer.
func (s *Session) MarkSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateBuilding {
		s.state = StateSubmitted
	}
}

// Finish terminates the attempt. All failures are terminal: no partial state
// survives and the session is ready for a fresh Idle → Quoting cycle.
func (s *Session) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
	} else {
		s.state = StateConfirmed
	}
	s.quote = nil
}

// Reset returns a finished session to Idle, ready for a new attempt.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConfirmed || s.state == StateFailed {
		s.state = StateIdle
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Quote returns the currently displayed estimate, if any.
func (s *Session) Quote() *deepbook.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote
}

// Generation returns the current request generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
