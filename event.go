// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mirror

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality, for example logging or metrics.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// failover call starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but the only field that has been set is the candidate
	// endpoint list (Mirrors).
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual endpoint attempt during the failover call.
	//
	// When Client fires BeforeAttempt, the execution's Mirror field
	// is set to the endpoint that WILL BE attempted after all
	// BeforeAttempt handlers have finished, and Attempt is set to the
	// zero-based index of the attempt within the chosen order.
	BeforeAttempt
	// AfterAttemptTimeout identifies the event that occurs after an
	// endpoint attempt failed because of a timeout error.
	//
	// When Client fires AfterAttemptTimeout, the execution's error
	// field is set to the timeout error, and its attempt timeout
	// counter has been incremented. A timeout is a transient failure
	// of the one endpoint attempted; it never ends the call by itself.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after an endpoint
	// attempt is concluded, regardless of whether it concluded
	// successfully or not.
	//
	// When Client fires AfterAttempt, either the execution's Err
	// field or its StatusCode field may be set, depending on how the
	// attempt ended. AfterAttempt always fires on every attempt, and
	// it runs before the outcome is classified as terminal or
	// transient.
	AfterAttempt
	// AfterFailover identifies the event that occurs after an attempt
	// outcome is classified as a transient, endpoint-local failure:
	// the endpoint has been marked unhealthy, the failure has been
	// collected, and the call is about to move on to the next endpoint
	// in the order (or to the aggregate failure, if no endpoints
	// remain).
	//
	// When Client fires AfterFailover, the execution's Err field holds
	// the failure and the last element of Errs is the collected form
	// of it.
	AfterFailover
	// AfterExecutionEnd identifies the event that occurs after the
	// failover call ends, whether by a terminal result, a terminal
	// error, or exhaustion of every endpoint in the order.
	//
	// When Client fires AfterExecutionEnd, the execution's End time is
	// set and Err holds the call's final error, if any.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterFailover",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur during
// a failover call by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttemptTimeout,
		AfterAttempt,
		AfterFailover,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
