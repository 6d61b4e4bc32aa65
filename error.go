// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mirror

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"

	"github.com/gogama/mirror/endpoint"
)

// An AttemptError records the transient failure of a single endpoint
// attempt within a failover call. It wraps the error produced by the
// operation and names the endpoint that produced it.
//
// When a failover call exhausts every endpoint in its order, the
// aggregate error returned to the caller bundles one AttemptError or
// StatusError per failed attempt, in attempt order.
type AttemptError struct {
	// Mirror is the endpoint whose attempt failed.
	Mirror endpoint.Endpoint
	// Err is the error the operation produced for the attempt. It is
	// never nil.
	Err error
}

// Error returns a message naming the failed endpoint and its cause.
func (e *AttemptError) Error() string {
	return fmt.Sprintf("mirror: attempt on %s failed: %v", e.Mirror, e.Err)
}

// Unwrap returns the underlying cause of the attempt failure.
func (e *AttemptError) Unwrap() error {
	return e.Err
}

// A StatusError records an endpoint attempt which received a valid
// structured response whose status code indicates transient
// unavailability (see RetryableStatus). No underlying error exists in
// this case; the error is synthesized so the failed attempt can be
// carried in the aggregate error on exhaustion.
type StatusError struct {
	// Mirror is the endpoint that returned the response.
	Mirror endpoint.Endpoint
	// StatusCode is the status code the endpoint returned.
	StatusCode int
}

// Error returns a message naming the endpoint and the status code it
// returned.
func (e *StatusError) Error() string {
	return fmt.Sprintf("mirror: %s returned status %d %s", e.Mirror, e.StatusCode, http.StatusText(e.StatusCode))
}

// RetryableStatus reports whether an HTTP status code indicates a
// transient server-side or gateway condition local to the one endpoint
// that returned it, so that the same request is worth attempting
// against another endpoint.
//
// The retryable codes are 408 (Request Timeout), 500 (Internal Server
// Error), 502 (Bad Gateway), 503 (Service Unavailable), and 504
// (Gateway Timeout). Every other status, success or not, is the final,
// legitimate outcome of the call and is returned to the caller as-is.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// exhausted bundles the per-attempt errors collected during a failover
// call into the aggregate error returned when every endpoint in the
// order has been tried without a terminal outcome. The aggregate is
// non-nil even when errs is empty, which happens when the caller
// supplies an empty endpoint list: exhaustion of nothing is still a
// failure, not a success.
func exhausted(errs []error) error {
	agg := new(multierror.Error)
	agg.Errors = append(agg.Errors, errs...)
	return agg
}
