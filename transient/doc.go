// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from an endpoint attempt as
// transient (local to the one endpoint attempted, so worth failing
// over to another endpoint) or non-transient. This is the judgment the
// failover client applies after every failed attempt, and it is also
// handy for other purposes such as bucketing error metrics.
//
// Package transient is extremely lightweight, as it depends only on
// the standard library packages "context", "errors", "net", and
// "syscall", so it doesn't bring any significant dependencies when
// imported as a standalone package.
package transient
