// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"errors"
	"net/url"
)

// An Endpoint is one of several interchangeable network addresses
// serving the same logical content, for example one mirror out of a
// set of mirrors all carrying identical data.
//
// An Endpoint is addressed by an absolute URL. Construct endpoints
// with New, Parse, or ParseList.
type Endpoint struct {
	// URL is the absolute base URL of the endpoint. It is never nil
	// for an endpoint constructed with New, Parse, or ParseList.
	//
	// Treat URL as immutable once the endpoint is in use: the failover
	// client reads it concurrently from multiple goroutines.
	URL *url.URL
}

// New constructs an endpoint from a parsed URL.
//
// New panics if u is nil.
func New(u *url.URL) Endpoint {
	if u == nil {
		panic("mirror/endpoint: nil url")
	}

	return Endpoint{URL: u}
}

// Parse constructs an endpoint from a raw URL string.
//
// An error is returned if the URL does not parse, or if it is not
// absolute (has no scheme). A relative URL cannot name an endpoint
// because an endpoint's identity is derived from its scheme and host.
func Parse(rawurl string) (Endpoint, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return Endpoint{}, err
	}
	if !u.IsAbs() {
		return Endpoint{}, errors.New("mirror/endpoint: URL is not absolute: " + rawurl)
	}

	return Endpoint{URL: u}, nil
}

// ParseList constructs a list of endpoints from raw URL strings,
// stopping at the first URL that fails to parse.
//
// ParseList of no URLs returns an empty, non-nil list.
func ParseList(rawurls ...string) ([]Endpoint, error) {
	eps := make([]Endpoint, 0, len(rawurls))
	for _, rawurl := range rawurls {
		ep, err := Parse(rawurl)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}

	return eps, nil
}

// Identity returns the endpoint's identity for health tracking
// purposes: the URL reduced to scheme, host (including any port), and
// path. Userinfo, query, and fragment are stripped.
//
// The same logical endpoint may be requested with varying query
// parameters, but health is a property of the host and path, not of
// the full request, so all such requests share one identity.
func (e Endpoint) Identity() string {
	if e.URL == nil {
		return ""
	}

	id := url.URL{
		Scheme: e.URL.Scheme,
		Host:   e.URL.Host,
		Path:   e.URL.Path,
	}
	return id.String()
}

// Ref resolves a URL reference, which may be relative, against the
// endpoint's base URL, returning the absolute URL to request from this
// endpoint.
func (e Endpoint) Ref(ref *url.URL) *url.URL {
	return e.URL.ResolveReference(ref)
}

// String returns the endpoint's full URL.
func (e Endpoint) String() string {
	if e.URL == nil {
		return ""
	}

	return e.URL.String()
}
