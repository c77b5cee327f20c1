package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spiffcs/dday/internal/model"
)

// StepResult is the per pull request entry published as a step output.
type StepResult struct {
	Number   int  `json:"number"`
	PrevDDay *int `json:"prevDDay,omitempty"`
	NextDDay *int `json:"nextDDay,omitempty"`
}

// StepResults projects a summary onto the step output shape.
func StepResults(summary *model.Summary) []StepResult {
	out := make([]StepResult, 0, len(summary.Results))
	for _, r := range summary.Results {
		out = append(out, StepResult{
			Number:   r.Number,
			PrevDDay: r.PrevDDay,
			NextDDay: r.NextDDay,
		})
	}
	return out
}

// WriteStepOutput writes "name=<json>" to w using the GitHub Actions
// key=value output syntax.
func WriteStepOutput(w io.Writer, name string, summary *model.Summary) error {
	data, err := json.Marshal(StepResults(summary))
	if err != nil {
		return fmt.Errorf("failed to marshal step output: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s=%s\n", name, data)
	return err
}

// AppendStepOutput appends the step output to the file GitHub Actions
// provides in $GITHUB_OUTPUT. Other steps' outputs in the file are kept.
func AppendStepOutput(path, name string, summary *model.Summary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open step output file: %w", err)
	}
	if err := WriteStepOutput(f, name, summary); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// AppendJobSummary appends the Markdown rendering of the summary to the
// file GitHub Actions provides in $GITHUB_STEP_SUMMARY.
func AppendJobSummary(path string, summary *model.Summary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open job summary file: %w", err)
	}
	if err := (&MarkdownFormatter{}).Format(summary, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteSummaryFile atomically replaces path with the JSON summary, so a
// reader never observes a partially written file.
func WriteSummaryFile(path string, summary *model.Summary) error {
	var buf bytes.Buffer
	if err := (&JSONFormatter{Pretty: true}).Format(summary, &buf); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write summary file %s: %w", path, err)
	}
	return nil
}
