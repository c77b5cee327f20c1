package cmd

import (
	"fmt"
	"strconv"

	"github.com/spiffcs/dday/internal/output"
	"github.com/spiffcs/dday/internal/tui"
)

// tuiFlag implements pflag.Value for the tri-state --tui flag.
type tuiFlag struct {
	opts *Options
}

func newTUIFlag(opts *Options) *tuiFlag {
	return &tuiFlag{opts: opts}
}

func (f *tuiFlag) String() string {
	if f.opts.TUI == nil {
		return "auto"
	}
	return strconv.FormatBool(*f.opts.TUI)
}

func (f *tuiFlag) Set(s string) error {
	if s == "auto" {
		f.opts.TUI = nil
		return nil
	}
	switch s {
	case "yes":
		s = "true"
	case "no":
		s = "false"
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q: use true, false, or auto", s)
	}
	f.opts.TUI = &v
	return nil
}

func (f *tuiFlag) Type() string {
	return "bool"
}

func (f *tuiFlag) IsBoolFlag() bool {
	return true
}

// shouldUseTUI decides whether to show the progress display.
// Verbose logging and machine-readable output both turn it off unless forced.
func shouldUseTUI(opts *Options, format output.Format) bool {
	if opts.TUI != nil {
		return *opts.TUI
	}
	if opts.Verbosity > 0 {
		return false
	}
	if format != output.FormatTable {
		return false
	}
	return tui.ShouldUseTUI()
}
