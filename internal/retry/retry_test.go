package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Policy.Do Tests ---

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Policy{MaxAttempts: 3}.Do(context.Background(), "op", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Policy{MaxAttempts: 3, Delay: time.Millisecond}.Do(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_Exhaustion_ReturnsLastError(t *testing.T) {
	sentinel := errors.New("still broken")
	calls := 0
	err := Policy{MaxAttempts: 2, Delay: time.Millisecond}.Do(context.Background(), "op", func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Do() error = %v, want wrapped %v", err, sentinel)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestDo_SingleAttemptPolicy(t *testing.T) {
	calls := 0
	_ = None.Do(context.Background(), "op", func() error {
		calls++
		return errors.New("nope")
	})
	if calls != 1 {
		t.Errorf("None policy should attempt exactly once, got %d", calls)
	}
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Policy{MaxAttempts: 3, Delay: time.Millisecond}.Do(ctx, "op", func() error {
		calls++
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("expected 0 calls with cancelled context, got %d", calls)
	}
}
