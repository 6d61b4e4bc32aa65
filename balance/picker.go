// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package balance

import (
	"math/rand"

	"github.com/gogama/mirror/endpoint"
)

// A Picker chooses the order in which candidate endpoints are
// attempted within one failover call.
//
// Implementations of Picker must be safe for concurrent use by
// multiple goroutines, and must return a fresh slice: the failover
// client consumes the returned order without copying it.
//
// Use the built-in DefaultPicker, or use PickerFunc to convert an
// ordinary function into a Picker.
type Picker interface {
	// Pick returns the attempt order for the given candidates. The
	// healthy predicate reports whether a candidate currently has no
	// failure on record; it may be nil, in which case every candidate
	// is considered healthy.
	Pick(candidates []endpoint.Endpoint, healthy func(endpoint.Endpoint) bool) []endpoint.Endpoint
}

// The PickerFunc type is an adapter to allow the use of ordinary
// functions as endpoint pickers. Every PickerFunc must be safe for
// concurrent use by multiple goroutines.
type PickerFunc func(candidates []endpoint.Endpoint, healthy func(endpoint.Endpoint) bool) []endpoint.Endpoint

// Pick calls f(candidates, healthy).
func (f PickerFunc) Pick(candidates []endpoint.Endpoint, healthy func(endpoint.Endpoint) bool) []endpoint.Endpoint {
	return f(candidates, healthy)
}

// DefaultPicker spreads load across healthy endpoints and avoids
// endpoints recently observed to be broken.
//
// It returns a uniformly random permutation of the healthy candidates.
// If no candidate is healthy it falls back to a uniformly random
// permutation of all candidates: stale health data must never cause a
// total refusal to attempt a call when the endpoints may have
// recovered.
//
// Each call produces a fresh permutation from the process-level
// math/rand source, which is safe for concurrent use.
var DefaultPicker Picker = PickerFunc(pickRandom)

func pickRandom(candidates []endpoint.Endpoint, healthy func(endpoint.Endpoint) bool) []endpoint.Endpoint {
	order := make([]endpoint.Endpoint, 0, len(candidates))
	for _, c := range candidates {
		if healthy == nil || healthy(c) {
			order = append(order, c)
		}
	}

	if len(order) == 0 {
		order = append(order, candidates...)
	}

	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
