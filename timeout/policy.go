// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/mirror/call"
)

// A Policy defines a timeout policy which may be plugged into the
// failover client (mirror.Client) to direct how to set the timeout for
// each individual endpoint attempt within a failover call.
//
// A timed-out attempt is a transient failure of the one endpoint
// attempted: the call records the failure and moves on to the next
// endpoint in the order. The failover call as a whole has no deadline.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next endpoint attempt
	// within the failover call.
	//
	// Parameter e contains the current state of the call. A
	// non-positive return value means the attempt runs without a
	// deadline.
	Timeout(e *call.Execution) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets no attempt
// deadline: each attempt runs until the underlying operation resolves
// on its own, or until the operation's own timeout machinery fires.
var DefaultPolicy Policy = Infinite

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(0)

// Fixed constructs a timeout policy that uses the same value to set
// every attempt timeout. The return value is a timeout policy that
// always returns the value d. A non-positive d produces a policy that
// sets no attempt deadline.
//
// Use Fixed to create the typical timeout behavior supported by most
// failover client software.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive constructs a timeout policy that varies the next timeout
// value if the previous attempt timed out.
//
// Use Adaptive if the endpoints often exhibit one-off slow response
// times that are best cured by quickly timing out and failing over,
// but you also want later attempts within the same call to get more
// generous deadlines in case the whole endpoint set is going through a
// burst of slowness.
//
// Parameter usual represents the timeout value the policy will return
// for an initial attempt and for any attempt where the immediately
// preceding attempt did not time out.
//
// Parameter after contains timeout values the policy will return if
// the previous attempt timed out. If this was the first timeout of the
// call, after[0] is returned; if the second, after[1], and so on. If
// more attempts have timed out within the call than after has
// elements, then the last element of after is returned.
//
// Consider the following timeout policy:
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// The policy p will use 200 milliseconds as the usual timeout but if
// the preceding attempt timed out and was the first timeout of the
// call, it will use 1 second; and if the previous attempt timed out
// and was not the first timeout, it will use 10 seconds.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(e *call.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
