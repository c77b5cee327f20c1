package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "dday",
		Short: "Advance D-day countdown labels on open pull requests",
		Long: `Moves every open pull request one step along a countdown of labels.

Given the labels D-0,D-1,...,D-5, a pull request labeled D-3 is relabeled D-2.
Pull requests already at the deadline label (D-0) keep it, and pull requests
without any countdown label are left alone. Run it once a day, typically from
a scheduled GitHub Actions workflow.`,
		Example: `  dday --repo octo/repo --labels D-0,D-1,D-2,D-3,D-4,D-5
  dday --dry-run -o json
  INPUT_DDAY-LABELS=D-0,D-1,D-2 GITHUB_REPOSITORY=octo/repo dday`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // main logs the error once, as a workflow annotation in Actions
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCountdown(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addRunFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())
	rootCmd.AddCommand(NewCmdRateLimit())

	return rootCmd
}

// addRunFlags adds the countdown run flags to a command.
func addRunFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Labels, "labels", "l", "", "Countdown labels, deadline first (e.g. D-0,D-1,D-2)")
	cmd.Flags().StringVarP(&opts.Repo, "repo", "r", "", "Repository as owner/name (default: $GITHUB_REPOSITORY)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Pull requests fetched per API page (1-100, default 80)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, yaml, markdown)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Resolve labels without changing them")
	cmd.Flags().StringVar(&opts.SummaryFile, "summary-file", "", "Also write the JSON summary to this file")
	cmd.Flags().StringVar(&opts.BaseURL, "api-url", "", "GitHub API base URL (default: $GITHUB_API_URL or api.github.com)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable TUI progress (default: auto-detect)")
}
