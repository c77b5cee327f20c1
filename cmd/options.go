package cmd

// Options holds the command-line options for a countdown run.
type Options struct {
	Labels      string // comma-separated countdown, deadline label first
	Repo        string // owner/name
	PerPage     int
	Format      string
	DryRun      bool
	SummaryFile string // write the JSON summary here as well
	BaseURL     string // GitHub API root, for GitHub Enterprise
	Verbosity   int
	TUI         *bool // nil = auto-detect, true = force TUI, false = disable TUI
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLabels sets the countdown labels as a comma-separated list.
func WithLabels(labels string) Option {
	return func(o *Options) {
		o.Labels = labels
	}
}

// WithRepo sets the target repository (owner/name).
func WithRepo(repo string) Option {
	return func(o *Options) {
		o.Repo = repo
	}
}

// WithPerPage sets the page size used when listing pull requests.
func WithPerPage(n int) Option {
	return func(o *Options) {
		o.PerPage = n
	}
}

// WithFormat sets the output format (table, json, yaml, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithDryRun resolves labels without changing them.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithSummaryFile sets the path the JSON summary is written to.
func WithSummaryFile(path string) Option {
	return func(o *Options) {
		o.SummaryFile = path
	}
}

// WithBaseURL sets the GitHub API root.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
