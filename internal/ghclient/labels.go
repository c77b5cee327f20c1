package ghclient

import (
	"context"
	"fmt"

	"github.com/spiffcs/dday/internal/log"
)

// AddLabels attaches labels to an issue or pull request in a single call.
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
		return fmt.Errorf("failed to add labels %v to #%d: %w", labels, number, err)
	}
	log.Debug("added labels", "number", number, "labels", labels)
	return nil
}

// RemoveLabel detaches a single label from an issue or pull request.
func (c *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	if _, err := c.client.Issues.RemoveLabelForIssue(ctx, owner, repo, number, label); err != nil {
		return fmt.Errorf("failed to remove label %q from #%d: %w", label, number, err)
	}
	log.Debug("removed label", "number", number, "label", label)
	return nil
}
