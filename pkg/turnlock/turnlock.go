// Package turnlock serializes chat turns per session. A second completion
// request for the same session while one is in flight is rejected, so two
// concurrent turns can never race to apply conflicting document payloads.
package turnlock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTurnInFlight is returned when the session already holds an active turn.
var ErrTurnInFlight = errors.New("turnlock: a turn is already in flight for this session")

// TTL bounds how long a turn may hold its lock; a crashed request releases
// the session after this window.
const TTL = 2 * time.Minute

// Locker acquires an exclusive per-session turn slot.
type Locker interface {
	// Acquire claims the session's turn slot, failing with ErrTurnInFlight
	// when it is already held.
	Acquire(ctx context.Context, sessionID uuid.UUID) error

	// Release frees the slot. Releasing an unheld slot is a no-op.
	Release(ctx context.Context, sessionID uuid.UUID) error
}
