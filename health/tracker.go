// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package health

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultExpiry is the expiry interval used by DefaultTracker and by
// trackers constructed with a non-positive expiry. A recorded failure
// keeps its endpoint marked unhealthy for at most this long past the
// failure, plus however long the next sweep takes to come due.
const DefaultExpiry = time.Minute

// DefaultTracker is a process-wide tracker shared by all failover
// clients that do not configure their own. Sharing one tracker means a
// failure observed by any in-flight call steers every other call away
// from the same endpoint.
var DefaultTracker = NewTracker(DefaultExpiry)

// A Tracker records recent failures of endpoints, keyed by endpoint
// identity, so that endpoint selection can prefer endpoints with no
// recent failure on record.
//
// Health is binary: an identity with a live entry is unhealthy, an
// identity with no entry is healthy. A single failure marks an
// endpoint unhealthy; there is no failure counter and no backoff
// escalation. Entries expire, via Sweep, once they are older than the
// tracker's expiry interval, after which the endpoint is healthy
// again.
//
// A Tracker is safe for concurrent use by multiple goroutines. State
// is held in memory only and lives as long as the Tracker does.
type Tracker struct {
	expiry    time.Duration
	lastSweep atomic.Int64 // unix nanos of last completed sweep

	mu     sync.Mutex
	failed map[string]time.Time
}

// NewTracker constructs a tracker whose entries expire after the given
// interval. A non-positive expiry is replaced with DefaultExpiry.
func NewTracker(expiry time.Duration) *Tracker {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	return &Tracker{
		expiry: expiry,
		failed: make(map[string]time.Time),
	}
}

// RecordFailure records a failure of the endpoint with the given
// identity, observed now. Any earlier failure on record for the same
// identity is overwritten.
func (t *Tracker) RecordFailure(identity string) {
	now := time.Now()
	t.mu.Lock()
	t.failed[identity] = now
	t.mu.Unlock()
}

// Healthy reports whether the endpoint with the given identity has no
// failure on record.
func (t *Tracker) Healthy(identity string) bool {
	t.mu.Lock()
	_, failed := t.failed[identity]
	t.mu.Unlock()
	return !failed
}

// Sweep removes every recorded failure older than the expiry interval,
// measured against the given time.
//
// Sweep is throttled: it performs the O(entries) removal at most once
// per expiry interval and returns cheaply otherwise, so callers may
// invoke it on every orchestrated call. The throttle check is done
// once without the lock and once again with it, so under concurrent
// calls only one sweep runs per interval. Sweep is idempotent and safe
// to call concurrently with RecordFailure and Healthy.
func (t *Tracker) Sweep(now time.Time) {
	if now.UnixNano()-t.lastSweep.Load() < int64(t.expiry) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if now.UnixNano()-t.lastSweep.Load() < int64(t.expiry) {
		return
	}

	for identity, at := range t.failed {
		if now.Sub(at) > t.expiry {
			delete(t.failed, identity)
		}
	}
	t.lastSweep.Store(now.UnixNano())
}
