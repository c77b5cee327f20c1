// Package constants provides a centralized location for the configuration
// values and magic numbers used throughout dday.
package constants

import "time"

// Pagination constants
const (
	// DefaultPerPage is the page size used when listing open pull requests.
	DefaultPerPage = 80

	// MaxPerPage is the largest page size the GitHub REST API honors.
	MaxPerPage = 100
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)

// TUI constants
const (
	// TUIUpdateInterval is the minimum time between TUI progress updates.
	TUIUpdateInterval = 50 * time.Millisecond

	// LogThrottlePercent is the interval (in percent) at which progress
	// logs are emitted when not using the TUI.
	LogThrottlePercent = 10
)

// GitHub Actions integration
const (
	// OutputName is the step output that receives the per-PR summary.
	OutputName = "pull_requests"

	// EnvGitHubOutput names the file GitHub Actions reads step outputs from.
	EnvGitHubOutput = "GITHUB_OUTPUT"

	// EnvStepSummary names the file GitHub Actions renders as the job summary.
	EnvStepSummary = "GITHUB_STEP_SUMMARY"

	// EnvGitHubActions is set to "true" when running inside a workflow.
	EnvGitHubActions = "GITHUB_ACTIONS"
)
