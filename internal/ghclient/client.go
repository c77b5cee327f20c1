package ghclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/dday/internal/constants"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub REST API client.
type Client struct {
	client    *gh.Client
	rateLimit *RateLimitState
	perPage   int
}

// Option configures a Client.
type Option func(*Client) error

// WithPerPage sets the page size used when listing pull requests.
func WithPerPage(n int) Option {
	return func(c *Client) error {
		if n < 1 || n > constants.MaxPerPage {
			return fmt.Errorf("page size %d out of range [1, %d]", n, constants.MaxPerPage)
		}
		c.perPage = n
		return nil
	}
}

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", raw, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// NewClient creates a GitHub client authenticated with a token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	state := newRateLimitState()
	tc.Transport = &rateLimitTransport{
		base:  tc.Transport,
		state: state,
	}

	c := &Client{
		client:    gh.NewClient(tc),
		rateLimit: state,
		perPage:   constants.DefaultPerPage,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AuthenticatedUser returns the login of the token's owner.
// Installation tokens issued to GitHub Apps have no user and return an error.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}

// RateLimitState returns the quota observed on the client's responses.
func (c *Client) RateLimitState() *RateLimitState {
	return c.rateLimit
}
