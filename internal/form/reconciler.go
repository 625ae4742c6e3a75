package form

import (
	"sync"
	"time"

	"github.com/outfield-crm/outfield/internal/extract"
)

// clearDelay is how long a staged candidate set survives before it is
// discarded. It only exists so a later, unrelated extraction burst cannot be
// confused with a stale pending overlay.
const clearDelay = 100 * time.Millisecond

// Reconciler owns the one-shot auto-fill lifecycle: an extraction stages a
// candidate set, the form surface takes and applies it exactly once, and
// anything not taken is cleared after a short fixed delay.
type Reconciler struct {
	mu      sync.Mutex
	pending extract.CandidateSet
	gen     uint64
	delay   time.Duration
}

func NewReconciler() *Reconciler {
	return &Reconciler{delay: clearDelay}
}

// NewReconcilerWithDelay overrides the clear delay, for tests.
func NewReconcilerWithDelay(d time.Duration) *Reconciler {
	return &Reconciler{delay: d}
}

// Stage buffers candidates for the next TakePending and schedules the stale
// clear. A newer Stage supersedes an older one; the older clear timer must
// not wipe the newer set, hence the generation check.
func (r *Reconciler) Stage(candidates extract.CandidateSet) {
	r.mu.Lock()
	r.pending = candidates
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		if r.gen == gen {
			r.pending = nil
		}
		r.mu.Unlock()
	})
}

// TakePending hands over the staged candidates and resets the buffer, so a
// second take returns nothing until the next Stage.
func (r *Reconciler) TakePending() extract.CandidateSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.pending
	r.pending = nil
	return c
}
