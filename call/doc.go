// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package call contains the core type Execution, which describes the
// state of a single failover call as it walks an ordered set of
// interchangeable endpoints. Timeout policies and event handlers
// receive the Execution at the failover client's plug-in points; most
// other programs only ever read it.
package call
