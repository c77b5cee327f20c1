package model

// Result records what a run did to one pull request.
type Result struct {
	Number   int  `json:"number" yaml:"number"`
	PrevDDay *int `json:"prevDDay,omitempty" yaml:"prev_dday,omitempty"`
	NextDDay *int `json:"nextDDay,omitempty" yaml:"next_dday,omitempty"`

	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author  string   `json:"author,omitempty" yaml:"author,omitempty"`
	HTMLURL string   `json:"htmlUrl,omitempty" yaml:"html_url,omitempty"`
	Added   []string `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// Changed reports whether any label was (or, in a dry run, would be) touched.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Summary is the outcome of one countdown run over a repository.
type Summary struct {
	Repository string   `json:"repository" yaml:"repository"`
	Labels     []string `json:"labels" yaml:"labels"`
	DryRun     bool     `json:"dryRun,omitempty" yaml:"dry_run,omitempty"`
	Results    []Result `json:"pullRequests" yaml:"pull_requests"`
}

// Counts returns how many pull requests were advanced, left unchanged, and
// carried no countdown label at all.
func (s Summary) Counts() (advanced, unchanged, untracked int) {
	for _, r := range s.Results {
		switch {
		case r.PrevDDay == nil:
			untracked++
		case r.Changed():
			advanced++
		default:
			unchanged++
		}
	}
	return advanced, unchanged, untracked
}
