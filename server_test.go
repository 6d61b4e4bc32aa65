// Copyright 2026 The mirror Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mirror

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/mirror/health"
)

// End-to-end tests running the failover client against real HTTP
// servers.

func TestEndToEnd(t *testing.T) {
	t.Run("healthy mirror answers", testE2EHealthy)
	t.Run("failover from 503", testE2EStatusFailover)
	t.Run("failover from dead mirror", testE2EDeadMirror)
	t.Run("definitive 404 is final", testE2ENotFound)
	t.Run("all mirrors down", testE2EAllDown)
	t.Run("bad ref", testE2EBadRef)
}

func serveStatus(code int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	}))
}

func testE2EHealthy(t *testing.T) {
	s := serveStatus(http.StatusOK, "all good")
	defer s.Close()
	c := newTestClient()
	mirrors := mirrorsForTest(t, s.URL)
	resp, err := c.Get(context.Background(), mirrors, "release")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "all good", string(body))
}

func testE2EStatusFailover(t *testing.T) {
	broken := serveStatus(http.StatusServiceUnavailable, "maintenance")
	defer broken.Close()
	live := serveStatus(http.StatusOK, "all good")
	defer live.Close()
	c := newTestClient()
	mirrors := mirrorsForTest(t, broken.URL, live.URL)
	resp, err := c.Get(context.Background(), mirrors, "release")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, c.Health.Healthy(mirrors[0].Identity()))
	assert.True(t, c.Health.Healthy(mirrors[1].Identity()))
}

func testE2EDeadMirror(t *testing.T) {
	dead := serveStatus(http.StatusOK, "gone soon")
	deadURL := dead.URL
	dead.Close() // connections are now refused
	live := serveStatus(http.StatusOK, "all good")
	defer live.Close()
	c := newTestClient()
	mirrors := mirrorsForTest(t, deadURL, live.URL)
	resp, err := c.Get(context.Background(), mirrors, "release")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, c.Health.Healthy(mirrors[0].Identity()))
}

func testE2ENotFound(t *testing.T) {
	missing := serveStatus(http.StatusNotFound, "no such file")
	defer missing.Close()
	var otherAsked bool
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		otherAsked = true
		_, _ = io.WriteString(w, "should not be asked")
	}))
	defer other.Close()
	c := newTestClient()
	mirrors := mirrorsForTest(t, missing.URL, other.URL)
	resp, err := c.Get(context.Background(), mirrors, "release")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, otherAsked, "a definitive answer must end the call")
	assert.True(t, c.Health.Healthy(mirrors[0].Identity()))
}

func testE2EAllDown(t *testing.T) {
	a := serveStatus(http.StatusOK, "")
	aURL := a.URL
	a.Close()
	b := serveStatus(http.StatusOK, "")
	bURL := b.URL
	b.Close()
	c := newTestClient()
	mirrors := mirrorsForTest(t, aURL, bURL)
	_, err := c.Get(context.Background(), mirrors, "release")
	require.Error(t, err)
	var agg *multierror.Error
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errors, 2)
}

func testE2EBadRef(t *testing.T) {
	c := &Client{Health: health.NewTracker(time.Minute)}
	mirrors := mirrorsForTest(t, "http://a.example.com/x")
	_, err := c.Get(context.Background(), mirrors, "://not a url")
	assert.Error(t, err)
	var agg *multierror.Error
	assert.False(t, errors.As(err, &agg), "a malformed ref is a caller error, not exhaustion")
}
