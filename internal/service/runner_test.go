package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spiffcs/dday/internal/countdown"
	"github.com/spiffcs/dday/internal/model"
)

type fakeLister struct {
	prs []model.PullRequest
	err error

	gotOwner, gotRepo string
}

func (f *fakeLister) ListOpenPullRequests(_ context.Context, owner, repo string) ([]model.PullRequest, error) {
	f.gotOwner, f.gotRepo = owner, repo
	return f.prs, f.err
}

type labelCall struct {
	Number int
	Label  string
}

type fakeMutator struct {
	mu      sync.Mutex
	added   []labelCall
	removed []labelCall

	failAdd    map[int]error
	failRemove map[string]error
}

func (f *fakeMutator) AddLabels(_ context.Context, _, _ string, number int, labels []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failAdd[number]; err != nil {
		return err
	}
	for _, l := range labels {
		f.added = append(f.added, labelCall{number, l})
	}
	return nil
}

func (f *fakeMutator) RemoveLabel(_ context.Context, _, _ string, number int, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failRemove[label]; err != nil {
		return err
	}
	f.removed = append(f.removed, labelCall{number, label})
	return nil
}

func (f *fakeMutator) sortedRemoved() []labelCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]labelCall(nil), f.removed...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func testSequence(t *testing.T) countdown.Sequence {
	t.Helper()
	seq, err := countdown.ParseSequence("D0,D1,D2,D3,D4,D5")
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func intPtr(i int) *int { return &i }

func TestRunAppliesCountdown(t *testing.T) {
	lister := &fakeLister{prs: []model.PullRequest{
		{Number: 1, Title: "one", Author: "alice", Labels: []string{"D1"}},
		{Number: 2, Title: "two", Labels: []string{"D1", "D4"}},
		{Number: 3, Title: "three", Labels: []string{"asf", "test"}},
		{Number: 4, Title: "four", Labels: []string{"D0"}},
		{Number: 5, Title: "five", Labels: []string{"D0", "D2"}},
	}}
	mutator := &fakeMutator{}

	var progress [][2]int
	r := NewRunner(lister, mutator, func(completed, total int) {
		progress = append(progress, [2]int{completed, total})
	})

	summary, err := r.Run(context.Background(), Options{Owner: "octo", Repo: "repo", Sequence: testSequence(t)})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if lister.gotOwner != "octo" || lister.gotRepo != "repo" {
		t.Errorf("lister called with %s/%s", lister.gotOwner, lister.gotRepo)
	}

	wantResults := []model.Result{
		{Number: 1, Title: "one", Author: "alice", PrevDDay: intPtr(1), NextDDay: intPtr(0), Added: []string{"D0"}, Removed: []string{"D1"}},
		{Number: 2, Title: "two", PrevDDay: intPtr(1), NextDDay: intPtr(0), Added: []string{"D0"}, Removed: []string{"D1", "D4"}},
		{Number: 3, Title: "three"},
		{Number: 4, Title: "four", PrevDDay: intPtr(0), NextDDay: intPtr(0)},
		{Number: 5, Title: "five", PrevDDay: intPtr(0), NextDDay: intPtr(0), Removed: []string{"D2"}},
	}
	if diff := cmp.Diff(wantResults, summary.Results, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if summary.Repository != "octo/repo" {
		t.Errorf("Repository = %q", summary.Repository)
	}

	wantAdded := []labelCall{{1, "D0"}, {2, "D0"}}
	if diff := cmp.Diff(wantAdded, mutator.added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}
	wantRemoved := []labelCall{{1, "D1"}, {2, "D1"}, {2, "D4"}, {5, "D2"}}
	if diff := cmp.Diff(wantRemoved, mutator.sortedRemoved()); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}

	wantProgress := [][2]int{{0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5}, {5, 5}}
	if diff := cmp.Diff(wantProgress, progress); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDryRun(t *testing.T) {
	lister := &fakeLister{prs: []model.PullRequest{
		{Number: 9, Labels: []string{"D3"}},
	}}
	mutator := &fakeMutator{}

	summary, err := NewRunner(lister, mutator, nil).Run(context.Background(),
		Options{Owner: "o", Repo: "r", Sequence: testSequence(t), DryRun: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(mutator.added) != 0 || len(mutator.removed) != 0 {
		t.Errorf("dry run mutated labels: added=%v removed=%v", mutator.added, mutator.removed)
	}
	if !summary.DryRun {
		t.Error("expected summary to be marked as dry run")
	}
	if diff := cmp.Diff([]string{"D2"}, summary.Results[0].Added); diff != "" {
		t.Errorf("dry run should still report planned additions (-want +got):\n%s", diff)
	}
}

func TestRunNoLabels(t *testing.T) {
	lister := &fakeLister{}
	summary, err := NewRunner(lister, &fakeMutator{}, nil).Run(context.Background(), Options{Owner: "o", Repo: "r"})
	if !errors.Is(err, ErrNoLabels) {
		t.Fatalf("error = %v, want ErrNoLabels", err)
	}
	if summary == nil {
		t.Fatal("summary should never be nil")
	}
	if lister.gotRepo != "" {
		t.Error("lister should not be called without labels")
	}
}

func TestRunListError(t *testing.T) {
	listErr := errors.New("network down")
	lister := &fakeLister{err: listErr}

	summary, err := NewRunner(lister, &fakeMutator{}, nil).Run(context.Background(),
		Options{Owner: "o", Repo: "r", Sequence: testSequence(t)})
	if !errors.Is(err, listErr) {
		t.Fatalf("error = %v, want wrapped %v", err, listErr)
	}
	if len(summary.Results) != 0 {
		t.Errorf("expected no results, got %v", summary.Results)
	}
}

func TestRunStopsOnMutationErrorWithoutRollback(t *testing.T) {
	addErr := errors.New("forbidden")
	lister := &fakeLister{prs: []model.PullRequest{
		{Number: 1, Labels: []string{"D2"}},
		{Number: 2, Labels: []string{"D3"}},
		{Number: 3, Labels: []string{"D4"}},
	}}
	mutator := &fakeMutator{failAdd: map[int]error{2: addErr}}

	summary, err := NewRunner(lister, mutator, nil).Run(context.Background(),
		Options{Owner: "o", Repo: "r", Sequence: testSequence(t)})
	if !errors.Is(err, addErr) {
		t.Fatalf("error = %v, want wrapped %v", err, addErr)
	}

	if len(summary.Results) != 1 || summary.Results[0].Number != 1 {
		t.Errorf("expected only #1 in results, got %+v", summary.Results)
	}
	// #1 was already advanced and stays advanced; #3 was never reached.
	if diff := cmp.Diff([]labelCall{{1, "D1"}}, mutator.added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]labelCall{{1, "D2"}}, mutator.sortedRemoved()); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRemovalFanOutReportsFailure(t *testing.T) {
	removeErr := errors.New("label not found")
	lister := &fakeLister{prs: []model.PullRequest{
		{Number: 1, Labels: []string{"D1", "D3", "D5"}},
	}}
	mutator := &fakeMutator{failRemove: map[string]error{"D3": removeErr}}

	_, err := NewRunner(lister, mutator, nil).Run(context.Background(),
		Options{Owner: "o", Repo: "r", Sequence: testSequence(t)})
	if !errors.Is(err, removeErr) {
		t.Fatalf("error = %v, want wrapped %v", err, removeErr)
	}

	// The sibling removals are still issued.
	want := []labelCall{{1, "D1"}, {1, "D5"}}
	if diff := cmp.Diff(want, mutator.sortedRemoved()); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
}

func TestRunIsIdempotentAtDeadline(t *testing.T) {
	lister := &fakeLister{prs: []model.PullRequest{{Number: 1, Labels: []string{"D0"}}}}
	mutator := &fakeMutator{}
	r := NewRunner(lister, mutator, nil)

	for i := 0; i < 2; i++ {
		if _, err := r.Run(context.Background(), Options{Owner: "o", Repo: "r", Sequence: testSequence(t)}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(mutator.added) != 0 || len(mutator.removed) != 0 {
		t.Errorf("expected no mutations at deadline, got added=%v removed=%v", mutator.added, mutator.removed)
	}
}
