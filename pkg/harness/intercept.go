package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/gobwas/glob"
)

// Response is the synthetic reply an interception rule serves.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// JSONResponse encodes v as the body of a response with the given status.
func JSONResponse(status int, v any) (Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{}, fmt.Errorf("encode response body: %w", err)
	}
	return Response{Status: status, ContentType: "application/json", Body: body}, nil
}

type rule struct {
	pattern string
	glob    glob.Glob
	resp    Response
	hits    int
}

// compileGlob compiles a URL glob. Without separators "*" matches any run
// of characters, including "/", and "?" matches one character, the same
// wildcards Chrome's Fetch domain uses for request patterns. Braces give
// alternatives, as in "*/v3/{simple/price,coins/list}*".
func compileGlob(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, errors.New("empty URL pattern")
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile URL pattern %q: %w", pattern, err)
	}
	return g, nil
}

// matchRule returns the first rule, in registration order, matching u.
func matchRule(rules []*rule, u string) (*rule, bool) {
	for _, r := range rules {
		if r.glob.Match(u) {
			return r, true
		}
	}
	return nil, false
}

// Intercept registers a rule serving resp for every request whose URL
// matches pattern. Rules must be registered before Navigate; the first
// matching rule wins.
func (s *Session) Intercept(pattern string, resp Response) error {
	g, err := compileGlob(pattern)
	if err != nil {
		return err
	}
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navigated {
		return fmt.Errorf("intercept %s: rules must be installed before navigation", pattern)
	}
	s.rules = append(s.rules, &rule{pattern: pattern, glob: g, resp: resp})
	return nil
}

// InterceptJSON is Intercept with a JSON-encoded body.
func (s *Session) InterceptJSON(pattern string, status int, v any) error {
	resp, err := JSONResponse(status, v)
	if err != nil {
		return err
	}
	return s.Intercept(pattern, resp)
}

// Hits returns how many requests the rule registered with pattern served.
func (s *Session) Hits(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rules {
		if r.pattern == pattern {
			n += r.hits
		}
	}
	return n
}

// Mismatches returns the requests strict mode blocked because no rule
// matched them.
func (s *Session) Mismatches() []*MismatchError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*MismatchError, len(s.mismatches))
	copy(out, s.mismatches)
	return out
}

// startRouter enables request interception when the session has rules or
// runs in strict mode. It is a no-op otherwise and after the first call.
func (s *Session) startRouter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.router != nil || (len(s.rules) == 0 && !s.cfg.strict) {
		return nil
	}

	// The router is bound to the raw page so Close can still disable
	// interception after the session context is done.
	router := s.rawPage.HijackRequests()
	if err := router.Add("*", "", s.handle); err != nil {
		return fmt.Errorf("enable interception: %w", err)
	}
	go router.Run()
	s.router = router
	return nil
}

// responseHeaders returns the header pairs served with resp. Content-Type
// is left out when the rule does not set one.
func responseHeaders(resp Response) []string {
	pairs := []string{"Access-Control-Allow-Origin", "*"}
	if resp.ContentType != "" {
		pairs = append(pairs, "Content-Type", resp.ContentType)
	}
	return pairs
}

func (s *Session) handle(h *rod.Hijack) {
	u := h.Request.URL()
	method := h.Request.Method()

	s.mu.Lock()
	r, ok := matchRule(s.rules, u.String())
	if ok {
		r.hits++
	}
	origin := s.origin
	s.mu.Unlock()

	if ok {
		h.Response.Payload().ResponseCode = r.resp.Status
		h.Response.SetHeader(responseHeaders(r.resp)...)
		h.Response.SetBody(r.resp.Body)
		s.log.Debug().
			Str("method", method).
			Str("url", u.String()).
			Str("pattern", r.pattern).
			Int("status", r.resp.Status).
			Msg("request intercepted")
		return
	}

	if !s.cfg.strict || u.Scheme+"://"+u.Host == origin {
		h.ContinueRequest(&proto.FetchContinueRequest{})
		return
	}

	s.mu.Lock()
	s.mismatches = append(s.mismatches, &MismatchError{Method: method, URL: u.String()})
	s.mu.Unlock()
	s.log.Warn().Str("method", method).Str("url", u.String()).Msg("request matched no interceptor")
	h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
}
