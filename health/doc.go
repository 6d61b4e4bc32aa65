// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package health tracks recent endpoint failures so that the failover
client (mirror.Client) can steer new attempts toward endpoints not
known to be currently broken.

Most programs never touch this package directly: the zero value
mirror.Client records into, and selects against, the process-wide
DefaultTracker. Construct a separate Tracker to give a particular
client, or a particular pool of mirrors, its own independent health
state:

	tracker := health.NewTracker(30 * time.Second)
	client := &mirror.Client{
		Health: tracker,
	}
*/
package health
