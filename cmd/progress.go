package cmd

import (
	"fmt"
	"time"

	"github.com/spiffcs/dday/internal/constants"
	"github.com/spiffcs/dday/internal/log"
	"github.com/spiffcs/dday/internal/model"
	"github.com/spiffcs/dday/internal/tui"
)

// progressReporter turns runner progress callbacks into TUI events, or into
// throttled progress log lines when the TUI is off.
type progressReporter struct {
	rs         *runState
	listed     bool
	lastUpdate time.Time
	lastLogPct int
	now        func() time.Time
}

func newProgressReporter(rs *runState) *progressReporter {
	rs.sendEvent(tui.TaskList, tui.StatusRunning)
	return &progressReporter{rs: rs, lastLogPct: -1, now: time.Now}
}

// report is a service.ProgressFunc. The first call (completed == 0) marks
// the end of listing.
func (p *progressReporter) report(completed, total int) {
	if !p.listed {
		p.listed = true
		p.rs.sendEvent(tui.TaskList, tui.StatusComplete, tui.WithCount(total))
		if total == 0 {
			return
		}
		p.rs.sendEvent(tui.TaskApply, tui.StatusRunning)
	}
	if total == 0 || completed == 0 {
		return
	}

	if p.rs.useTUI {
		now := p.now()
		if completed < total && now.Sub(p.lastUpdate) < constants.TUIUpdateInterval {
			return
		}
		p.lastUpdate = now
		p.rs.sendEvent(tui.TaskApply, tui.StatusRunning,
			tui.WithProgress(float64(completed)/float64(total)),
			tui.WithMessage(fmt.Sprintf("%d/%d", completed, total)))
		return
	}

	pct := completed * 100 / total
	if pct/constants.LogThrottlePercent == p.lastLogPct/constants.LogThrottlePercent && completed < total {
		return
	}
	p.lastLogPct = pct
	log.Progress("Advancing countdown labels: %d/%d (%d%%)", completed, total, pct)
}

// finish marks the last running task as complete or failed.
func (p *progressReporter) finish(summary *model.Summary, err error) {
	switch {
	case err != nil && !p.listed:
		p.rs.sendEvent(tui.TaskList, tui.StatusError, tui.WithError(err))
		p.rs.sendEvent(tui.TaskApply, tui.StatusSkipped)
	case err != nil:
		p.rs.sendEvent(tui.TaskApply, tui.StatusError, tui.WithError(err))
	case len(summary.Results) == 0:
		p.rs.sendEvent(tui.TaskApply, tui.StatusSkipped, tui.WithMessage("nothing to do"))
	default:
		advanced, _, _ := summary.Counts()
		verb := "advanced"
		if summary.DryRun {
			verb = "would advance"
		}
		p.rs.sendEvent(tui.TaskApply, tui.StatusComplete, tui.WithMessage(fmt.Sprintf("%d %s", advanced, verb)))
		log.ProgressDone()
	}
}
