// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the
// perspective of completing the same operation against a different
// endpoint, or in other words that failing over to another endpoint
// after encountering this error is very unlikely to change the
// outcome.
//
// All other categories indicate a failure local to the one endpoint
// that was attempted, so the same operation has some prospect of
// success against a different endpoint.
type Category int

const (
	// Not indicates any non-transient error, for example a malformed
	// request that no endpoint could serve.
	Not Category = iota
	// Timeout indicates the attempt timed out on the client side. The
	// endpoint may be going through a temporary period of slowness
	// which the other endpoints in the set are not sharing.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	// This includes an attempt whose context deadline was exceeded.
	Timeout
	// Interrupted indicates the attempt's context was canceled before
	// the attempt finished. The cancellation ends that one attempt
	// only, not the failover call as a whole.
	//
	// Function Categorize() will return Interrupted if the error is
	// not a Timeout, and the error or any of its wrapped causes is
	// context.Canceled.
	Interrupted
	// ConnRefused indicates the endpoint refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition of one
	// endpoint, it says nothing about the other endpoints in the set,
	// which may be listening normally.
	//
	// Function Categorize() will return ConnRefused if the error is
	// not a Timeout, and the error or any of its wrapped causes is
	// equal to syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the endpoint returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// Function Categorize() will return ConnReset if the error is not
	// a Timeout, and the error or any of its wrapped causes is equal
	// to syscall.ECONNRESET.
	ConnReset
	// NameResolution indicates the endpoint's host name could not be
	// resolved. Other endpoints in the set have other host names, so
	// resolution may well succeed for them.
	//
	// Function Categorize() will return NameResolution if the error is
	// not a Timeout, and the error or any of its wrapped causes is a
	// *net.DNSError.
	NameResolution
	// Transport indicates an otherwise-unclassified low-level network
	// error while speaking to the one endpoint attempted.
	//
	// Function Categorize() will return Transport if the error matches
	// no more specific category, and the error or any of its wrapped
	// causes is a *net.OpError.
	Transport
)

// Categorize returns the transience category of the given error. All
// non-nil transient errors result in a transience category other than
// Not. A nil error, and an error that is not local to one endpoint
// from the perspective of completing the operation against another
// endpoint, both produce the return value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. It matches on the
// network-layer error shapes the transport reports (timeout-capable
// errors, context cancellation, DNS errors, connection errnos, and
// net.OpError) rather than on any concrete transport implementation
// type. Categorize never checks if an error has a Temporary() function
// that returns true, as the semantics of Temporary() aren't entirely
// clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NameResolution
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Transport
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
