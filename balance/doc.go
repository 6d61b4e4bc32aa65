// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package balance decides the order in which a set of interchangeable
endpoints is attempted by the failover client (mirror.Client).

The built-in DefaultPicker prefers endpoints with no recent failure on
record and shuffles them uniformly, so that repeated calls spread load
across all healthy endpoints with no permanent bias. Substitute a
custom Picker, for example a deterministic one in tests:

	client := &mirror.Client{
		Picker: balance.PickerFunc(func(candidates []endpoint.Endpoint, _ func(endpoint.Endpoint) bool) []endpoint.Endpoint {
			return append([]endpoint.Endpoint(nil), candidates...)
		}),
	}
*/
package balance
