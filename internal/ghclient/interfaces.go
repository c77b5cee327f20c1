// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"

	"github.com/spiffcs/dday/internal/model"
)

// PullRequestLister reads the open pull requests of a repository.
type PullRequestLister interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error)
}

// LabelMutator changes the labels on a pull request.
// Each RemoveLabel call is independent and safe to issue concurrently.
type LabelMutator interface {
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error
}

// Ensure Client implements both interfaces.
var (
	_ PullRequestLister = (*Client)(nil)
	_ LabelMutator      = (*Client)(nil)
)
