// Package adflow implements the client-side ad interaction flow: a cyclic
// state machine that walks a user through viewing an ad, an enforced minimum
// dwell, an explicit confirmation, and the completion request. The completion
// endpoint is only reachable through the timed path; abandoning the flow at
// any earlier point credits nothing.
package adflow

import (
	"errors"
	"time"
)

// State of the interaction machine.
type State string

const (
	StateReady      State = "ready"
	StateViewing    State = "viewing"
	StateAdded      State = "added"
	StateConfirm    State = "confirm"
	StateCompleting State = "completing"
)

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrDwellNotElapsed   = errors.New("minimum dwell time not elapsed")
)

// Machine is single-threaded: it is driven by one UI event loop and holds no
// locks. The clock is injected so the dwell guard is testable.
type Machine struct {
	state    State
	minDwell time.Duration
	now      func() time.Time

	adID    int64
	addedAt time.Time
}

// New builds a machine in the ready state with the given minimum dwell.
func New(minDwell time.Duration) *Machine {
	return &Machine{state: StateReady, minDwell: minDwell, now: time.Now}
}

// NewWithClock is New with an injected clock, for tests.
func NewWithClock(minDwell time.Duration, now func() time.Time) *Machine {
	return &Machine{state: StateReady, minDwell: minDwell, now: now}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// AdID returns the ad the current traversal is about, zero in ready state.
func (m *Machine) AdID() int64 {
	return m.adID
}

// Open starts viewing the given ad: ready -> viewing.
func (m *Machine) Open(adID int64) error {
	if m.state != StateReady {
		return ErrInvalidTransition
	}
	m.state = StateViewing
	m.adID = adID
	return nil
}

// Engage simulates engagement with the ad ("add to cart"): viewing -> added.
// Starts the dwell timer.
func (m *Machine) Engage() error {
	if m.state != StateViewing {
		return ErrInvalidTransition
	}
	m.state = StateAdded
	m.addedAt = m.now()
	return nil
}

// DwellRemaining reports how much of the minimum dwell is still outstanding.
// Zero outside the added state or once the dwell has elapsed.
func (m *Machine) DwellRemaining() time.Duration {
	if m.state != StateAdded {
		return 0
	}
	remaining := m.minDwell - m.now().Sub(m.addedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Confirm advances added -> confirm, but only once the minimum dwell has
// elapsed. This is the anti-abuse gate: there is no path from viewing to the
// completion request that skips the timer.
func (m *Machine) Confirm() error {
	if m.state != StateAdded {
		return ErrInvalidTransition
	}
	if m.now().Sub(m.addedAt) < m.minDwell {
		return ErrDwellNotElapsed
	}
	m.state = StateConfirm
	return nil
}

// Submit emits the completion intent: confirm -> completing. The caller sends
// the actual request; the machine guarantees Submit succeeds at most once per
// traversal, so one traversal produces at most one completion request.
func (m *Machine) Submit() (adID int64, err error) {
	if m.state != StateConfirm {
		return 0, ErrInvalidTransition
	}
	m.state = StateCompleting
	return m.adID, nil
}

// Resolve finishes the traversal after the completion response arrives,
// success or failure: completing -> ready.
func (m *Machine) Resolve() error {
	if m.state != StateCompleting {
		return ErrInvalidTransition
	}
	m.reset()
	return nil
}

// Abandon drops out of the flow before submission with nothing credited:
// viewing/added/confirm -> ready. A page reload has the same effect, since no
// machine state survives navigation.
func (m *Machine) Abandon() error {
	switch m.state {
	case StateViewing, StateAdded, StateConfirm:
		m.reset()
		return nil
	default:
		return ErrInvalidTransition
	}
}

func (m *Machine) reset() {
	m.state = StateReady
	m.adID = 0
	m.addedAt = time.Time{}
}
