package harness

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		pattern string
		url     string
		match   bool
	}{
		{"**/api.coingecko.com/api/v3/simple/price*", "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd", true},
		{"*/simple/price*", "https://api.coingecko.com/api/v3/simple/price", true},
		{"**/api/v3/simple/price*", "https://api.coingecko.com/api/v3/coins/list", false},
		{"https://example.com/a?c", "https://example.com/abc", true},
		{"https://example.com/a.c", "https://example.com/abc", false},
		{"*/price", "https://x.test/price?ids=1", false},
		{"*/v3/{simple/price,coins/list}*", "https://api.coingecko.com/api/v3/coins/list", true},
		{"*/v3/{simple/price,coins/list}*", "https://api.coingecko.com/api/v3/coins/markets", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.url, func(t *testing.T) {
			g, err := compileGlob(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.match, g.Match(tt.url))
		})
	}
}

func TestCompileGlob_Invalid(t *testing.T) {
	for _, pattern := range []string{"", "*/[price*"} {
		_, err := compileGlob(pattern)
		assert.Error(t, err, pattern)
	}
}

func TestResponseHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"Access-Control-Allow-Origin", "*", "Content-Type", "application/json"},
		responseHeaders(Response{ContentType: "application/json"}))

	// A rule without a content type sends no Content-Type header.
	assert.Equal(t,
		[]string{"Access-Control-Allow-Origin", "*"},
		responseHeaders(Response{Status: http.StatusInternalServerError}))
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	cfg, err := newSessionConfig(opts...)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &Session{ctx: ctx, cancel: cancel, cfg: cfg, log: cfg.log}
}

func TestIntercept_FirstRuleWins(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Intercept("*/simple/price*", Response{Status: http.StatusInternalServerError}))
	require.NoError(t, s.Intercept("*", Response{Status: http.StatusNoContent}))

	r, ok := matchRule(s.rules, "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin")
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, r.resp.Status)

	r, ok = matchRule(s.rules, "https://cdn.example.com/app.js")
	require.True(t, ok)
	assert.Equal(t, http.StatusNoContent, r.resp.Status)
}

func TestIntercept_NoMatch(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Intercept("*/simple/price*", Response{}))

	_, ok := matchRule(s.rules, "https://fonts.example.com/font.woff2")
	assert.False(t, ok)
}

func TestIntercept_DefaultsToOK(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Intercept("*/simple/price*", Response{Body: []byte("{}")}))
	assert.Equal(t, http.StatusOK, s.rules[0].resp.Status)
}

func TestIntercept_RejectedAfterNavigation(t *testing.T) {
	s := newTestSession(t)
	s.navigated = true

	err := s.Intercept("*/simple/price*", Response{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before navigation")
	assert.Empty(t, s.rules)
}

func TestInterceptJSON(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.InterceptJSON("*/simple/price*", http.StatusInternalServerError, map[string]string{"error": "API unavailable"}))

	r := s.rules[0]
	assert.Equal(t, http.StatusInternalServerError, r.resp.Status)
	assert.Equal(t, "application/json", r.resp.ContentType)
	assert.JSONEq(t, `{"error":"API unavailable"}`, string(r.resp.Body))
	assert.Zero(t, s.Hits("*/simple/price*"))
}

func TestJSONResponse_EncodeError(t *testing.T) {
	_, err := JSONResponse(http.StatusOK, make(chan int))
	assert.Error(t, err)
}

func TestMismatches_ReturnsCopy(t *testing.T) {
	s := newTestSession(t, WithStrictNetwork())
	s.mismatches = append(s.mismatches, &MismatchError{Method: "GET", URL: "https://tracker.example.com/p"})

	got := s.Mismatches()
	require.Len(t, got, 1)
	got[0] = nil
	assert.NotNil(t, s.Mismatches()[0])
}
