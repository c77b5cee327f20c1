package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"
	"github.com/spiffcs/dday/config"
	"github.com/spiffcs/dday/internal/constants"
	"github.com/spiffcs/dday/internal/ghclient"
	"github.com/spiffcs/dday/internal/log"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long: `Display current GitHub API rate limit status including remaining quota and reset time.

A countdown run costs one request per page of open pull requests plus one per
label change.`,
	}
	cmd.AddCommand(NewCmdRateLimitStatus())
	return cmd
}

// NewCmdRateLimitStatus creates the ratelimit status subcommand.
func NewCmdRateLimitStatus() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show current rate limit status",
		Long:  `Display the current GitHub API rate limit status for the core, search and GraphQL APIs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			client, err := newClient(cmd.Context(), cfg, baseURL, os.Getenv)
			if err != nil {
				return err
			}
			limits, err := client.RateLimits(cmd.Context())
			if err != nil {
				return err
			}
			printRateLimits(cmd.OutOrStdout(), limits, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "api-url", "", "GitHub API base URL (default: $GITHUB_API_URL or api.github.com)")
	return cmd
}

func printRateLimits(w io.Writer, limits *gh.RateLimits, now time.Time) {
	fmt.Fprintln(w, "GitHub API Rate Limits:")
	fmt.Fprintln(w)

	printRate(w, "Core API:  ", limits.Core, now)
	printRate(w, "Search API:", limits.Search, now)
	printRate(w, "GraphQL:   ", limits.GraphQL, now)
}

func printRate(w io.Writer, name string, rate *gh.Rate, now time.Time) {
	if rate == nil {
		return
	}
	resetIn := rate.Reset.Time.Sub(now).Round(time.Second)
	if resetIn < 0 {
		resetIn = 0
	}
	line := fmt.Sprintf("%s %d/%d remaining (resets in %s)", name, rate.Remaining, rate.Limit, resetIn)
	if rate.Remaining < constants.RateLimitLowWatermark {
		line += " - low"
	}
	fmt.Fprintln(w, line)
}

// logQuota reports the quota observed on the run's last response. It warns
// when the next scheduled run may not have enough requests left.
func logQuota(state *ghclient.RateLimitState) {
	remaining, limit, resetAt, limited := state.Status()
	if remaining < 0 {
		return
	}
	switch {
	case limited:
		log.Warn("GitHub API rate limit exhausted", "resets_at", resetAt.Format(time.RFC3339))
	case remaining < constants.RateLimitLowWatermark:
		log.Warn("GitHub API quota low", "remaining", remaining, "limit", limit, "resets_at", resetAt.Format(time.RFC3339))
	default:
		log.Info("GitHub API quota", "remaining", remaining, "limit", limit)
	}
}
