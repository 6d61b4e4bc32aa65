// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mirror

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gogama/mirror/balance"
	"github.com/gogama/mirror/call"
	"github.com/gogama/mirror/endpoint"
	"github.com/gogama/mirror/health"
	"github.com/gogama/mirror/timeout"
	"github.com/gogama/mirror/transient"
)

var emptyHandlers = HandlerGroup{}

// A Client is a failover client for sets of interchangeable endpoints
// (mirrors serving identical data). Its zero value is a valid
// configuration.
//
// Given the candidate endpoints for one logical request, Client picks
// an attempt order that spreads load across healthy endpoints and
// avoids ones recently observed to be broken, then walks that order
// executing the request until one endpoint returns a usable result or
// all have been exhausted.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, the process-wide health.DefaultTracker for endpoint health,
// balance.DefaultPicker for attempt ordering, timeout.DefaultPolicy
// (no attempt deadline) as the timeout policy, and an empty handler
// group (no event handlers/plug-ins).
//
// Client is safe for concurrent use by multiple goroutines. Endpoint
// attempts within one call are strictly sequential: the point is
// ordered failover, not racing.
//
// A Client is higher-level than the operation it executes. The
// operation is responsible for all details of performing one attempt
// against one endpoint (building the request, speaking the protocol,
// decoding the result), while Client decides which endpoint to try
// next and whether a given outcome means "try the next one". On top of
// the operation, Client adds the following features:
//
// • Client remembers, in its health tracker, which endpoints recently
// failed, and steers new calls away from them until the failures
// expire;
//
// • Client classifies each failed attempt as transient (worth failing
// over) or terminal (surfaced immediately) using the transient package
// and the RetryableStatus rule;
//
// • Client bundles the failures of a fully exhausted call into one
// aggregate error so the caller can inspect every cause;
//
// • Client sets individual attempt timeouts using a customizable
// timeout policy; and
//
// • Client invokes user-provided handler functions at designated
// plug-in points within the failover loop, allowing features such as
// logging and metrics to be mixed in from outside libraries.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses for the built-in convenience methods (Get).
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// Health tracks recent endpoint failures so that attempt ordering
	// can prefer endpoints with no failure on record.
	//
	// If Health is nil, the process-wide health.DefaultTracker is
	// used, so every client in the process shares one view of
	// endpoint health. Set a specific tracker to isolate a client, or
	// a pool of mirrors, from the rest of the process.
	Health *health.Tracker
	// Picker chooses the order in which candidate endpoints are
	// attempted within each call.
	//
	// If Picker is nil, balance.DefaultPicker is used.
	Picker balance.Picker
	// TimeoutPolicy specifies how to set timeouts on individual
	// endpoint attempts. A timed-out attempt is a transient failure of
	// that one endpoint; the call moves on to the next endpoint in the
	// order. The call as a whole has no deadline.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used, which
	// sets no attempt deadline.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a failover call.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// An Operation performs one attempt of the caller's logical request
// against a single endpoint, producing either a value or an error.
//
// The context passed to the operation governs that one attempt only.
// If the client's timeout policy sets an attempt deadline, the context
// carries it; cancellation or expiry of the context fails the attempt,
// not the failover call, which proceeds to the next endpoint.
//
// Operations must be safe for concurrent use by multiple goroutines if
// the Client executing them is shared.
type Operation[T any] func(ctx context.Context, mirror endpoint.Endpoint) (T, error)

// Fetch executes op against the given candidate endpoints until one of
// them produces a value, following the health, ordering, and timeout
// policies set on the Client.
//
// Any value returned by op, together with a nil error, is a terminal
// result: it is returned to the caller immediately and no further
// endpoints are attempted. A failed attempt is classified with
// transient.Categorize: a transient failure marks the endpoint
// unhealthy and the call continues with the next endpoint in the
// order, while a non-transient error (for example a malformed request
// that no endpoint could serve) is returned immediately.
//
// If every endpoint in the order fails transiently, Fetch returns an
// aggregate error of type *multierror.Error (package
// github.com/hashicorp/go-multierror) bundling one AttemptError per
// failed attempt, in attempt order. An empty mirrors list produces an
// aggregate error bundling nothing, which is still a failure.
//
// Use Fetch when the operation decodes its own payload. Use Do when
// the operation produces an HTTP response whose status code should
// participate in the failover decision.
func Fetch[T any](c *Client, ctx context.Context, mirrors []endpoint.Endpoint, op Operation[T]) (T, error) {
	return execute(c, ctx, mirrors, op, nil, nil)
}

// Do executes op against the given candidate endpoints until one of
// them produces a usable HTTP response, following the health,
// ordering, and timeout policies set on the Client.
//
// Do behaves like Fetch, with one addition: a valid HTTP response
// whose status code indicates transient unavailability of the one
// endpoint attempted (see RetryableStatus) is treated as a failed
// attempt: a StatusError is collected, the endpoint is marked
// unhealthy, and the call continues with the next endpoint. Any other
// response is the final outcome of the call and is returned to the
// caller as-is, whether or not its status code represents an HTTP
// success: a 404 from a healthy endpoint is an answer, not a reason to
// ask a different endpoint.
//
// Do reads and buffers the entire response body within the attempt and
// returns the response with its Body replaced by a reader over the
// buffered bytes. This keeps the body valid after any attempt deadline
// set by the timeout policy has been canceled. A body read error fails
// the attempt and is classified like any other attempt error.
func Do(c *Client, ctx context.Context, mirrors []endpoint.Endpoint, op Operation[*http.Response]) (*http.Response, error) {
	return execute(c, ctx, mirrors, buffered(op), statusCode, discardResponse)
}

// Do executes an HTTP response operation with failover. It is the
// method form of the package-level Do function.
func (c *Client) Do(ctx context.Context, mirrors []endpoint.Endpoint, op Operation[*http.Response]) (*http.Response, error) {
	return Do(c, ctx, mirrors, op)
}

// Get issues a GET for the given URL reference, resolved against each
// candidate endpoint's base URL in turn, using the same policies
// followed by Do and the client's HTTPDoer to send the requests.
//
// The reference may be relative ("dists/stable/Release") or absolute
// path ("/status"); each attempt requests the resolution of ref
// against that attempt's endpoint.
func (c *Client) Get(ctx context.Context, mirrors []endpoint.Endpoint, ref string) (*http.Response, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}

	return Do(c, ctx, mirrors, func(ctx context.Context, m endpoint.Endpoint) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.Ref(r).String(), nil)
		if err != nil {
			return nil, err
		}
		return c.doer().Do(req)
	})
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// execute is the failover loop shared by Fetch and Do. The status
// function, if non-nil, extracts a status code from a produced value
// so the retryable-status rule can be applied; the discard function,
// if non-nil, releases a value abandoned by failover.
func execute[T any](c *Client, ctx context.Context, mirrors []endpoint.Endpoint, op Operation[T], status func(T) int, discard func(T)) (T, error) {
	var zero T

	tracker := c.tracker()
	timeoutPolicy := c.timeoutPolicy()
	handlers := c.handlers()

	tracker.Sweep(time.Now())

	e := call.Execution{Mirrors: mirrors}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()
	e.Order = c.picker().Pick(mirrors, func(m endpoint.Endpoint) bool {
		return tracker.Healthy(m.Identity())
	})

	for i, m := range e.Order {
		// Consult the timeout policy before clearing the previous
		// attempt's state, so adaptive policies can see whether the
		// previous attempt timed out.
		d := timeoutPolicy.Timeout(&e)
		e.Attempt = i
		e.Mirror = m
		e.Err = nil
		e.StatusCode = 0

		v, err := attempt(ctx, &e, op, d, handlers)

		if err != nil {
			e.Err = err
			if e.Timeout() {
				e.AttemptTimeouts++
				handlers.run(AfterAttemptTimeout, &e)
			}
			handlers.run(AfterAttempt, &e)
			if transient.Categorize(err) == transient.Not {
				return finish(zero, err, &e, handlers)
			}
			tracker.RecordFailure(m.Identity())
			e.Errs = append(e.Errs, &AttemptError{Mirror: m, Err: err})
			handlers.run(AfterFailover, &e)
			continue
		}

		if status != nil {
			e.StatusCode = status(v)
		}
		handlers.run(AfterAttempt, &e)
		if status != nil && RetryableStatus(e.StatusCode) {
			tracker.RecordFailure(m.Identity())
			serr := &StatusError{Mirror: m, StatusCode: e.StatusCode}
			e.Err = serr
			e.Errs = append(e.Errs, serr)
			handlers.run(AfterFailover, &e)
			if discard != nil {
				discard(v)
			}
			continue
		}

		return finish(v, nil, &e, handlers)
	}

	return finish(zero, exhausted(e.Errs), &e, handlers)
}

// attempt runs op against the current endpoint, wrapping the context
// with the attempt deadline d when one is set.
func attempt[T any](ctx context.Context, e *call.Execution, op Operation[T], d time.Duration, handlers *HandlerGroup) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	handlers.run(BeforeAttempt, e)
	return op(ctx, e.Mirror)
}

func finish[T any](v T, err error, e *call.Execution, handlers *HandlerGroup) (T, error) {
	e.Err = err
	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
	return v, err
}

// buffered wraps an HTTP response operation so that the response body
// is fully read, and replaced with an in-memory reader, within the
// attempt. The body must not outlive the attempt because the attempt's
// context, including any deadline from the timeout policy, is canceled
// when the attempt returns.
func buffered(op Operation[*http.Response]) Operation[*http.Response] {
	return func(ctx context.Context, m endpoint.Endpoint) (*http.Response, error) {
		resp, err := op(ctx, m)
		if err != nil {
			return nil, err
		}
		if resp == nil || resp.Body == nil {
			return resp, nil
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}

	return resp.StatusCode
}

func discardResponse(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) tracker() *health.Tracker {
	if c.Health == nil {
		return health.DefaultTracker
	}

	return c.Health
}

func (c *Client) picker() balance.Picker {
	if c.Picker == nil {
		return balance.DefaultPicker
	}

	return c.Picker
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}

	return c.TimeoutPolicy
}

func (c *Client) handlers() *HandlerGroup {
	if c.Handlers == nil {
		return &emptyHandlers
	}

	return c.Handlers
}
