package adflow

import (
	"errors"
	"testing"
	"time"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestMachine(dwell time.Duration) (*Machine, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	return NewWithClock(dwell, clock.now), clock
}

func TestFullCycle(t *testing.T) {
	m, clock := newTestMachine(5 * time.Second)

	if m.State() != StateReady {
		t.Fatalf("initial state = %s; want ready", m.State())
	}
	if err := m.Open(42); err != nil {
		t.Fatal(err)
	}
	if err := m.Engage(); err != nil {
		t.Fatal(err)
	}
	clock.advance(5 * time.Second)
	if err := m.Confirm(); err != nil {
		t.Fatal(err)
	}

	adID, err := m.Submit()
	if err != nil {
		t.Fatal(err)
	}
	if adID != 42 {
		t.Fatalf("Submit ad id = %d; want 42", adID)
	}
	if m.State() != StateCompleting {
		t.Fatalf("state after submit = %s; want completing", m.State())
	}

	if err := m.Resolve(); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateReady {
		t.Fatalf("state after resolve = %s; want ready", m.State())
	}

	// the machine is cyclic: a second traversal works the same way
	if err := m.Open(7); err != nil {
		t.Fatalf("second traversal: %v", err)
	}
}

func TestConfirmBlockedUntilDwellElapsed(t *testing.T) {
	m, clock := newTestMachine(5 * time.Second)

	if err := m.Open(1); err != nil {
		t.Fatal(err)
	}
	if err := m.Engage(); err != nil {
		t.Fatal(err)
	}

	clock.advance(4 * time.Second)
	if err := m.Confirm(); !errors.Is(err, ErrDwellNotElapsed) {
		t.Fatalf("Confirm before dwell = %v; want ErrDwellNotElapsed", err)
	}
	if m.State() != StateAdded {
		t.Fatalf("state = %s; early confirm must not advance", m.State())
	}
	if got := m.DwellRemaining(); got != time.Second {
		t.Fatalf("DwellRemaining = %v; want 1s", got)
	}

	clock.advance(time.Second)
	if err := m.Confirm(); err != nil {
		t.Fatalf("Confirm after dwell: %v", err)
	}
}

func TestCompletionUnreachableFromViewing(t *testing.T) {
	m, _ := newTestMachine(5 * time.Second)

	if err := m.Open(1); err != nil {
		t.Fatal(err)
	}

	// no path from viewing straight to the completion request
	if err := m.Confirm(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Confirm from viewing = %v; want ErrInvalidTransition", err)
	}
	if _, err := m.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Submit from viewing = %v; want ErrInvalidTransition", err)
	}
}

func TestAbandonReturnsToReadyWithoutCredit(t *testing.T) {
	m, clock := newTestMachine(time.Second)

	for _, prep := range []func() error{
		func() error { return m.Open(1) },
		func() error { return m.Engage() },
		func() error { clock.advance(time.Second); return m.Confirm() },
	} {
		if err := prep(); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.Abandon(); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateReady {
		t.Fatalf("state after abandon = %s; want ready", m.State())
	}
	if m.AdID() != 0 {
		t.Fatalf("ad id after abandon = %d; want 0", m.AdID())
	}

	// abandon in ready or completing is not a thing
	if err := m.Abandon(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Abandon in ready = %v; want ErrInvalidTransition", err)
	}
}

func TestSubmitAtMostOncePerTraversal(t *testing.T) {
	m, clock := newTestMachine(time.Second)

	if err := m.Open(9); err != nil {
		t.Fatal(err)
	}
	if err := m.Engage(); err != nil {
		t.Fatal(err)
	}
	clock.advance(time.Second)
	if err := m.Confirm(); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Submit(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second Submit = %v; want ErrInvalidTransition", err)
	}
}

func TestInvalidTransitionsFromReady(t *testing.T) {
	m, _ := newTestMachine(time.Second)

	if err := m.Engage(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Engage from ready = %v", err)
	}
	if err := m.Resolve(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Resolve from ready = %v", err)
	}
}
