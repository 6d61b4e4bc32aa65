// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"context"
	"time"

	"github.com/gogama/mirror/endpoint"
	"github.com/gogama/mirror/transient"
)

// An Execution represents the state of a single failover call: one
// logical operation walked across an ordered set of interchangeable
// endpoints until one of them produces a usable result.
//
// When a failover call is requested, an Execution is created for it.
// The Execution is updated as the call progresses (for example when an
// attempt fails and the call moves to the next endpoint) and is shared
// with timeout policies and event handlers at the designated plug-in
// points.
//
// Timeout policies and event handlers may set values on an Execution
// using its SetValue method and read them back using the Value method.
// However, they should treat the structure's exported field values as
// immutable and leave them unmodified, as the execution state is vital
// to the correct functioning of the failover logic.
type Execution struct {
	// Mirrors contains the candidate endpoints exactly as the caller
	// supplied them, before any health partitioning or shuffling.
	Mirrors []endpoint.Endpoint

	// Order contains the attempt order chosen for this call. It is nil
	// until the call starts, and constant thereafter.
	Order []endpoint.Endpoint

	// Start is the start time of the failover call. It is assigned a
	// non-zero value when the call starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the failover call. It contains the zero
	// value until the call ends, when it is set to the current time.
	End time.Time

	// Attempt is the zero-based index into Order of the current, or
	// most recent, endpoint attempt.
	//
	// When the execution has ended, Attempt contains the index of the
	// last attempt made during the call. A call that succeeds on its
	// third endpoint ends with Attempt equal to 2.
	Attempt int

	// AttemptTimeouts is the count of the number of times an endpoint
	// attempt timed out during the call.
	AttemptTimeouts int

	// Mirror is the endpoint of the current, or most recent, attempt.
	// It contains the zero value before the first attempt starts.
	Mirror endpoint.Endpoint

	// StatusCode is the status code of the structured response
	// received in the most recent attempt, if the operation produces
	// responses with status codes. It is zero if the most recent
	// attempt ended in an error, or produced a plain value, or if an
	// attempt is underway.
	StatusCode int

	// Err indicates the error received in the most recent attempt. It
	// is nil if the most recent attempt ended without an error, or if
	// an attempt is underway, or before the call starts.
	//
	// Once the execution has Ended, Err has the same value as the
	// error value returned by the failover client's executing method.
	Err error

	// Errs contains one error per failed attempt so far, in attempt
	// order. When the call exhausts every endpoint in Order, the
	// aggregate error returned to the caller bundles exactly these
	// errors.
	Errs []error

	// data contains arbitrary user data attached via SetValue.
	data context.Context
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start. The
// return value is thus monotonically increasing over the life of the
// execution, and becomes static when the execution has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
//
// If the return value is false, the execution has not started yet. If
// the return value is true, then the execution has started, and Start
// is a non-zero time, indicating the execution start time.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
//
// If the return value is false, the execution is still in-flight. If
// the return value is true, then the execution is over, End is a
// non-zero time, and there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout of an individual endpoint attempt.
//
// Note that Timeout may return false even if AttemptTimeouts > 0 (if
// the most recent attempt did not end in a timeout), and that a
// timeout never ends the call by itself: it is a transient failure of
// the one endpoint attempted.
func (e *Execution) Timeout() bool {
	cat := transient.Categorize(e.Err)
	return cat == transient.Timeout
}

// SetValue allows timeout policies and event handlers to store
// arbitrary data in the execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to
// avoid collisions between different event handlers putting data into
// the same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
