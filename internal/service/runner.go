package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spiffcs/dday/internal/countdown"
	"github.com/spiffcs/dday/internal/ghclient"
	"github.com/spiffcs/dday/internal/log"
	"github.com/spiffcs/dday/internal/model"
	"golang.org/x/sync/errgroup"
)

// ErrNoLabels is returned when a run is started with an empty countdown.
var ErrNoLabels = errors.New("no countdown labels configured")

// ProgressFunc is called after each pull request has been processed.
type ProgressFunc func(completed, total int)

// Options configures a single countdown run.
type Options struct {
	Owner    string
	Repo     string
	Sequence countdown.Sequence

	// DryRun resolves every pull request but skips all label mutations.
	DryRun bool
}

// Runner advances the countdown label on every open pull request.
type Runner struct {
	lister     ghclient.PullRequestLister
	mutator    ghclient.LabelMutator
	onProgress ProgressFunc
}

// NewRunner creates a Runner. onProgress may be nil (no-op).
func NewRunner(lister ghclient.PullRequestLister, mutator ghclient.LabelMutator, onProgress ProgressFunc) *Runner {
	return &Runner{
		lister:     lister,
		mutator:    mutator,
		onProgress: onProgress,
	}
}

func (r *Runner) reportProgress(completed, total int) {
	if r.onProgress != nil {
		r.onProgress(completed, total)
	}
}

// Run lists the open pull requests and applies one countdown step to each,
// in listing order.
//
// The returned summary is never nil. On failure it holds the results for
// every pull request that was fully processed before the error; label
// changes already applied are left in place.
func (r *Runner) Run(ctx context.Context, opts Options) (*model.Summary, error) {
	summary := &model.Summary{
		Repository: opts.Owner + "/" + opts.Repo,
		Labels:     opts.Sequence.Labels(),
		DryRun:     opts.DryRun,
	}

	if opts.Sequence.Len() == 0 {
		return summary, ErrNoLabels
	}

	prs, err := r.lister.ListOpenPullRequests(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return summary, fmt.Errorf("listing pull requests: %w", err)
	}
	log.Info("fetched open pull requests", "repo", summary.Repository, "count", len(prs))

	r.reportProgress(0, len(prs))
	for i, pr := range prs {
		log.Trace("resolving labels", "number", pr.Number, "labels", pr.Labels)
		res := countdown.Resolve(pr.Labels, opts.Sequence)

		if res.Changed() {
			log.Info("advancing countdown",
				"number", pr.Number,
				"prev", res.Prev.String(),
				"next", res.Next.String(),
				"add", res.Add,
				"remove", res.Remove,
				"dry_run", opts.DryRun)

			if !opts.DryRun {
				if err := r.apply(ctx, opts, pr.Number, res); err != nil {
					return summary, fmt.Errorf("pull request #%d: %w", pr.Number, err)
				}
			}
		} else {
			log.Debug("no label change", "number", pr.Number, "prev", res.Prev.String())
		}

		summary.Results = append(summary.Results, toResult(pr, res))
		r.reportProgress(i+1, len(prs))
	}

	return summary, nil
}

// apply adds the next label first, then fans out one removal per stale label
// and waits for all of them. Every removal is attempted even if another one
// fails; the first failure is returned.
func (r *Runner) apply(ctx context.Context, opts Options, number int, res countdown.Resolution) error {
	if len(res.Add) > 0 {
		if err := r.mutator.AddLabels(ctx, opts.Owner, opts.Repo, number, res.Add); err != nil {
			return err
		}
	}

	if len(res.Remove) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, label := range res.Remove {
		g.Go(func() error {
			return r.mutator.RemoveLabel(ctx, opts.Owner, opts.Repo, number, label)
		})
	}
	return g.Wait()
}

func toResult(pr model.PullRequest, res countdown.Resolution) model.Result {
	return model.Result{
		Number:   pr.Number,
		PrevDDay: res.Prev.Ptr(),
		NextDDay: res.Next.Ptr(),
		Title:    pr.Title,
		Author:   pr.Author,
		HTMLURL:  pr.HTMLURL,
		Added:    res.Add,
		Removed:  res.Remove,
	}
}
