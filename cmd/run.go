package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spiffcs/dday/config"
	"github.com/spiffcs/dday/internal/constants"
	"github.com/spiffcs/dday/internal/countdown"
	"github.com/spiffcs/dday/internal/ghclient"
	"github.com/spiffcs/dday/internal/log"
	"github.com/spiffcs/dday/internal/model"
	"github.com/spiffcs/dday/internal/output"
	"github.com/spiffcs/dday/internal/service"
	"github.com/spiffcs/dday/internal/tui"
)

// runState bundles TUI-related state that's threaded through a run.
type runState struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

// startTUI starts the progress display if TUI mode is enabled. Quitting the
// display cancels the run through cancel.
func (rs *runState) startTUI(cancel context.CancelFunc, opts ...tui.ModelOption) {
	if !rs.useTUI {
		return
	}
	rs.events = make(chan tui.Event, 100)
	rs.tuiDone = make(chan error, 1)
	go func() {
		err := tui.Run(rs.events, opts...)
		if errors.Is(err, tui.ErrCanceled) {
			cancel()
		}
		rs.tuiDone <- err
	}()
}

// close closes the event channel and waits for the TUI to finish.
// It is safe to call more than once.
func (rs *runState) close() error {
	if rs.events == nil {
		return nil
	}
	close(rs.events)
	rs.events = nil
	return <-rs.tuiDone
}

// sendEvent sends a task event to the TUI channel if it exists.
func (rs *runState) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if rs.events == nil {
		return
	}
	tui.SendTaskEvent(rs.events, task, status, opts...)
}

// runEnv is what a run reads from and writes to outside its options.
type runEnv struct {
	getenv     func(string) string
	loadConfig func() (*config.Config, error)
	stdout     io.Writer
	stderr     io.Writer
}

func runCountdown(cmd *cobra.Command, opts *Options) error {
	return executeRun(cmd.Context(), cmd.Flags().Changed, opts, runEnv{
		getenv:     os.Getenv,
		loadConfig: config.Load,
		stdout:     cmd.OutOrStdout(),
		stderr:     os.Stderr,
	})
}

// executeRun performs one countdown run. On failure the partial summary is
// rendered but no step output, job summary or summary file is written.
func executeRun(ctx context.Context, changed func(string) bool, opts *Options, env runEnv) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Initialize(opts.Verbosity, env.stderr)
	log.EnableWorkflowCommands(env.getenv(constants.EnvGitHubActions) == "true")

	cfg, err := loadRunConfig(env.loadConfig, changed, opts, env.getenv)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.DefaultFormat)
	if err != nil {
		return err
	}
	owner, repo, err := config.ParseRepo(cfg.Repo)
	if err != nil {
		return err
	}
	seq, err := cfg.Sequence()
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg, opts.BaseURL, env.getenv)
	if err != nil {
		return err
	}

	rs := &runState{useTUI: shouldUseTUI(opts, format)}
	if rs.useTUI {
		// Logs would interleave with the display.
		log.Initialize(opts.Verbosity, io.Discard)
	}
	rs.startTUI(cancel, tui.WithRepository(cfg.Repo), tui.WithDryRun(cfg.DryRun))

	authenticate(ctx, client, rs)

	log.Info("starting countdown",
		"repo", cfg.Repo,
		"labels", seq.String(),
		"per_page", cfg.PerPage,
		"dry_run", cfg.DryRun)

	progress := newProgressReporter(rs)
	runner := service.NewRunner(client, client, progress.report)
	summary, runErr := runner.Run(ctx, service.Options{
		Owner:    owner,
		Repo:     repo,
		Sequence: seq,
		DryRun:   cfg.DryRun,
	})
	progress.finish(summary, runErr)

	tuiErr := rs.close()
	log.Initialize(opts.Verbosity, env.stderr)
	logQuota(client.RateLimitState())

	if runErr != nil {
		if errors.Is(tuiErr, tui.ErrCanceled) {
			return tuiErr
		}
		if n := len(summary.Results); n > 0 {
			log.Warn("run stopped early; label changes already applied were kept", "processed", n)
			if err := output.NewFormatter(format).Format(summary, env.stdout); err != nil {
				log.Debug("failed to render partial summary", "error", err)
			}
		}
		return runErr
	}
	if tuiErr != nil && !errors.Is(tuiErr, tui.ErrCanceled) {
		log.Warn("progress display failed", "error", tuiErr)
	}

	return publish(env.stdout, summary, format, opts.SummaryFile, env.getenv)
}

// loadRunConfig merges config files, environment and flags, in that order
// of increasing precedence, and validates the result.
func loadRunConfig(load func() (*config.Config, error), changed func(string) bool, opts *Options, getenv func(string) string) (*config.Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, opts, changed); err != nil {
		return nil, err
	}
	if len(cfg.Labels) == 0 {
		return nil, fmt.Errorf("%w: use --labels, the labels config key or %s", service.ErrNoLabels, config.EnvLabels)
	}
	if cfg.Repo == "" {
		return nil, fmt.Errorf("no repository given: use --repo or set %s", config.EnvRepository)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overlays explicitly set flags on cfg.
func applyFlags(cfg *config.Config, opts *Options, changed func(string) bool) error {
	if changed("labels") {
		seq, err := countdown.ParseSequence(opts.Labels)
		if err != nil {
			return fmt.Errorf("--labels: %w", err)
		}
		cfg.Labels = seq.Labels()
	}
	if opts.Repo != "" {
		cfg.Repo = opts.Repo
	}
	if changed("per-page") {
		cfg.PerPage = opts.PerPage
	}
	if opts.Format != "" {
		cfg.DefaultFormat = opts.Format
	}
	if opts.DryRun {
		cfg.DryRun = true
	}
	return nil
}

func newClient(ctx context.Context, cfg *config.Config, baseURL string, getenv func(string) string) (*ghclient.Client, error) {
	token := config.TokenFrom(getenv)
	if token == "" {
		return nil, fmt.Errorf("GitHub token not configured. Set the %s environment variable or the repo-token input", config.EnvToken)
	}

	clientOpts := []ghclient.Option{ghclient.WithPerPage(cfg.PerPage)}
	if baseURL == "" {
		baseURL = getenv("GITHUB_API_URL")
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, ghclient.WithBaseURL(baseURL))
	}
	return ghclient.NewClient(ctx, token, clientOpts...)
}

// authenticate resolves the token owner for display. Installation tokens
// (the default GITHUB_TOKEN in Actions) have no user, so failure is not fatal.
func authenticate(ctx context.Context, client *ghclient.Client, rs *runState) {
	rs.sendEvent(tui.TaskAuth, tui.StatusRunning)
	user, err := client.AuthenticatedUser(ctx)
	if err != nil {
		log.Debug("could not resolve token owner", "error", err)
		rs.sendEvent(tui.TaskAuth, tui.StatusSkipped, tui.WithMessage("(app token)"))
		return
	}
	log.Info("authenticated", "user", user)
	rs.sendEvent(tui.TaskAuth, tui.StatusComplete, tui.WithMessage(user))
}

// publish renders the summary and writes the GitHub Actions step output, job
// summary and summary file where configured.
func publish(w io.Writer, summary *model.Summary, format output.Format, summaryFile string, getenv func(string) string) error {
	if err := output.NewFormatter(format).Format(summary, w); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if path := getenv(constants.EnvGitHubOutput); path != "" {
		if err := output.AppendStepOutput(path, constants.OutputName, summary); err != nil {
			return err
		}
		log.Debug("wrote step output", "name", constants.OutputName, "file", path)
	}

	if path := getenv(constants.EnvStepSummary); path != "" {
		if err := output.AppendJobSummary(path, summary); err != nil {
			// The job summary is cosmetic; the labels are already updated.
			log.Warn("failed to write job summary", "error", err)
		}
	}

	if summaryFile != "" {
		if err := output.WriteSummaryFile(summaryFile, summary); err != nil {
			return err
		}
		log.Info("wrote summary file", "path", summaryFile)
	}

	return nil
}
