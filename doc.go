// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package mirror provides client-side failover and soft load balancing
across sets of equivalent, interchangeable network endpoints (mirrors
serving identical data) within a simple and familiar interface.

Given the candidate endpoints for one logical request, the failover
client picks an order to try them in that spreads load across healthy
endpoints and avoids ones recently observed to be broken, then walks
that order executing the request until one endpoint returns a usable
result or all have been exhausted.

Create a Client and a list of endpoints to begin making requests. The
zero value Client is a valid configuration:

	mirrors, err := endpoint.ParseList(
		"https://mirror1.example.com/debian",
		"https://mirror2.example.com/debian",
		"https://mirror3.example.com/debian",
	)
	...
	client := &mirror.Client{}
	resp, err := client.Get(ctx, mirrors, "dists/stable/Release")

For full control over how each attempt is performed, supply your own
operation. Use Do when the operation produces an HTTP response, so the
response status code participates in the failover decision:

	resp, err := client.Do(ctx, mirrors, func(ctx context.Context, m endpoint.Endpoint) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, "GET", m.String(), nil)
		if err != nil {
			return nil, err
		}
		return httpClient.Do(req)
	})

Use Fetch when the operation decodes its own payload. Fetch is generic
over the payload type; only the error is classified:

	manifest, err := mirror.Fetch(client, ctx, mirrors, func(ctx context.Context, m endpoint.Endpoint) (*Manifest, error) {
		return fetchManifest(ctx, m.URL)
	})

A failed attempt is classified with transient.Categorize. Transient,
endpoint-local failures (connection refusal or reset, name resolution
failure, attempt timeout or cancellation, other low-level transport
errors, and the gateway-class status codes accepted by
RetryableStatus) mark the endpoint unhealthy in the client's health
tracker and move the call to the next endpoint. Anything else is
terminal: a non-transient error propagates immediately, and a response
with any non-retryable status code, success or not, is returned to the
caller as the final outcome of the call.

When every endpoint in the order fails transiently, the call returns an
aggregate error of type *multierror.Error (package
github.com/hashicorp/go-multierror) bundling one error per failed
attempt, in attempt order:

	resp, err := client.Get(ctx, mirrors, "dists/stable/Release")
	var agg *multierror.Error
	if errors.As(err, &agg) {
		for _, cause := range agg.Errors {
			...
		}
	}

Endpoint health is tracked by identity (the endpoint URL reduced to
scheme, host, and path) and is binary: one failure marks the endpoint
unhealthy until the entry expires (one minute by default). Health state
is shared process-wide through health.DefaultTracker unless a specific
tracker is set on the Client. Attempt ordering is uniformly random
among healthy endpoints, falling back to the full candidate set when
everything is marked unhealthy: stale health data never causes a total
refusal to attempt a call.

For control over attempt deadlines, set a custom timeout policy using
components from package timeout:

	client := &mirror.Client{
		TimeoutPolicy: timeout.Adaptive(200*time.Millisecond, time.Second),
	}

To mix in custom functionality such as logging or metrics, install
event handlers at the designated plug-in points:

	handlers := &mirror.HandlerGroup{}
	handlers.PushBack(mirror.AfterFailover, mirror.HandlerFunc(func(evt mirror.Event, e *call.Execution) {
		log.Printf("failing over from %s after %v", e.Mirror, e.Err)
	}))
	client := &mirror.Client{
		Handlers: handlers,
	}
*/
package mirror
