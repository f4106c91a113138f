package turnlock

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryLockerAcquireRelease(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()
	sessionID := uuid.New()

	if err := locker.Acquire(ctx, sessionID); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if err := locker.Acquire(ctx, sessionID); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("second Acquire = %v, want ErrTurnInFlight", err)
	}

	if err := locker.Release(ctx, sessionID); err != nil {
		t.Fatalf("Release: %v", err)
	}

	if err := locker.Acquire(ctx, sessionID); err != nil {
		t.Fatalf("Acquire after Release: %v", err)
	}
}

func TestMemoryLockerIndependentSessions(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	if err := locker.Acquire(ctx, first); err != nil {
		t.Fatalf("Acquire first session: %v", err)
	}
	if err := locker.Acquire(ctx, second); err != nil {
		t.Fatalf("Acquire second session: %v", err)
	}
}

func TestMemoryLockerReleaseUnheldIsNoop(t *testing.T) {
	locker := NewMemoryLocker()

	if err := locker.Release(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Release unheld: %v", err)
	}
}
