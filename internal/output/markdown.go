package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/dday/internal/model"
)

// MarkdownFormatter formats output as Markdown, suitable for a GitHub
// Actions job summary.
type MarkdownFormatter struct{}

// Format outputs the run summary as a Markdown table
func (f *MarkdownFormatter) Format(summary *model.Summary, w io.Writer) error {
	title := "## D-Day countdown"
	if summary.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(w, "%s\n\n", title)

	if len(summary.Results) == 0 {
		_, err := fmt.Fprintf(w, "No open pull requests in %s.\n", codeSpan(summary.Repository))
		return err
	}

	fmt.Fprintln(w, "| PR | Author | Previous | Next | Added | Removed |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, r := range summary.Results {
		pr := fmt.Sprintf("#%d", r.Number)
		if r.HTMLURL != "" {
			pr = fmt.Sprintf("[#%d](%s)", r.Number, r.HTMLURL)
		}
		author := ""
		if r.Author != "" {
			author = "@" + r.Author
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(pr),
			escapeCell(author),
			escapeCell(labelAt(summary.Labels, r.PrevDDay)),
			escapeCell(labelAt(summary.Labels, r.NextDDay)),
			escapeCell(codeList(r.Added)),
			escapeCell(codeList(r.Removed)),
		)
	}

	advanced, unchanged, untracked := summary.Counts()
	_, err := fmt.Fprintf(w, "\n%d advanced, %d unchanged, %d without a countdown label.\n",
		advanced, unchanged, untracked)
	return err
}

// escapeCell keeps a pipe inside a value from ending the table cell.
// GitHub honors the escape inside code spans too.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func codeList(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = codeSpan(l)
	}
	return strings.Join(quoted, " ")
}

// codeSpan wraps s in a backtick fence one longer than the longest run of
// backticks inside it.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
