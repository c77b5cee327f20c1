// Package model holds the data types shared between the GitHub client,
// the countdown runner and the output formatters.
package model

// PullRequest is a snapshot of an open pull request and its labels.
type PullRequest struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Author  string   `json:"author,omitempty"`
	HTMLURL string   `json:"htmlUrl,omitempty"`
	Labels  []string `json:"labels"`
}
