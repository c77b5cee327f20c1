package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/dday/internal/log"
	"github.com/spiffcs/dday/internal/model"
)

// ListOpenPullRequests fetches every open pull request in owner/repo.
//
// Pages are requested in order starting at 1. Fetching continues while a
// page comes back full and stops at the first short or empty page.
func (c *Client) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State: "open",
		ListOptions: gh.ListOptions{
			PerPage: c.perPage,
			Page:    1,
		},
	}

	var prs []model.PullRequest
	for {
		page, _, err := c.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list open pull requests for %s/%s (page %d): %w", owner, repo, opts.Page, err)
		}
		log.Debug("listed pull requests", "repo", owner+"/"+repo, "page", opts.Page, "count", len(page))

		for _, pr := range page {
			prs = append(prs, toPullRequest(pr))
		}

		if len(page) != c.perPage {
			break
		}
		opts.Page++
	}

	return prs, nil
}

func toPullRequest(pr *gh.PullRequest) model.PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		if l.GetName() == "" {
			continue
		}
		labels = append(labels, l.GetName())
	}

	return model.PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Author:  pr.GetUser().GetLogin(),
		HTMLURL: pr.GetHTMLURL(),
		Labels:  labels,
	}
}
