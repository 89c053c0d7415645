package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	current := time.Date(2026, time.September, 4, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return current }

	if err := b.Allow(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatal("expected circuit to open")
	}

	current = current.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatal("expected extra half-open call to be rejected")
	}

	b.RecordSuccess()
	if err := b.Allow(); err != nil {
		t.Fatalf("after recovery: %v", err)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	current := time.Date(2026, time.September, 4, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return current }

	_ = b.Allow()
	b.RecordFailure()
	current = current.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatal("expected circuit to reopen after failed probe")
	}
}
