package ghclient

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/spiffcs/dday/internal/constants"
	"github.com/spiffcs/dday/internal/log"
)

// ErrRateLimited is returned when the GitHub API rate limit has been exceeded.
var ErrRateLimited = errors.New("rate limited")

// RateLimitState tracks the rate limit reported by the most recent response.
type RateLimitState struct {
	mu        sync.RWMutex
	limited   bool
	resetAt   time.Time
	remaining int
	limit     int
	now       func() time.Time
}

func newRateLimitState() *RateLimitState {
	return &RateLimitState{remaining: -1, limit: -1, now: time.Now}
}

// IsLimited returns true if requests should not be attempted until reset.
func (s *RateLimitState) IsLimited() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limited && s.now().Before(s.resetAt)
}

// SetLimited marks the state as limited until resetAt.
func (s *RateLimitState) SetLimited(resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limited = true
	s.resetAt = resetAt
}

// Update records the quota values from a response.
func (s *RateLimitState) Update(remaining, limit int, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = remaining
	s.limit = limit
	s.resetAt = resetAt
	s.limited = remaining == 0
}

// Status returns the last observed quota.
func (s *RateLimitState) Status() (remaining, limit int, resetAt time.Time, limited bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remaining, s.limit, s.resetAt, s.limited && s.now().Before(s.resetAt)
}

// rateLimitTransport short-circuits requests once the quota is exhausted and
// turns GitHub's rate limit responses into ErrRateLimited.
type rateLimitTransport struct {
	base  http.RoundTripper
	state *RateLimitState
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.state.IsLimited() {
		return nil, ErrRateLimited
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		t.state.Update(remaining, limit, resetAt)
	}

	if remaining <= constants.RateLimitLowWatermark && remaining > 0 {
		log.Debug("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	if resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0") {
		t.state.SetLimited(resetAt)
		_ = resp.Body.Close()
		return nil, ErrRateLimited
	}

	return resp, nil
}

// parseRateLimitHeaders extracts rate limit info from response headers.
// Missing values are reported as -1.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = -1
	limit = -1

	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
			resetAt = time.Unix(sec, 0)
		}
	}

	return remaining, limit, resetAt
}
