package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spiffcs/dday/internal/model"
	"golang.org/x/term"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// Column widths
const (
	colNumber = 7
	colAuthor = 16
	colDDay   = 12
	colChange = 18
	colTitle  = 50
)

// stdoutIsTerminal decides whether hyperlinks are emitted.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// hyperlink creates a clickable terminal hyperlink using OSC 8
func hyperlink(text, url string) string {
	if url == "" || !stdoutIsTerminal() {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// displayWidth returns the visible width of a string in terminal columns,
// ignoring ANSI escape sequences.
func displayWidth(s string) int {
	return runewidth.StringWidth(ansiRegex.ReplaceAllString(s, ""))
}

// padRight pads s to width columns. visibleWidth is the width of s as shown
// on screen, measured before any hyperlink or color codes were added.
func padRight(s string, visibleWidth, width int) string {
	if visibleWidth < width {
		return s + strings.Repeat(" ", width-visibleWidth)
	}
	return s
}

// Format outputs the run summary as a table
func (f *TableFormatter) Format(summary *model.Summary, w io.Writer) error {
	if len(summary.Results) == 0 {
		_, err := fmt.Fprintf(w, "No open pull requests in %s.\n", summary.Repository)
		return err
	}

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %s\n",
		colNumber, "PR",
		colAuthor, "Author",
		colDDay, "D-Day",
		colChange, "Change",
		"Title")
	fmt.Fprintln(w, strings.Repeat("-", colNumber+colAuthor+colDDay+colChange+colTitle+8))

	for _, r := range summary.Results {
		number := fmt.Sprintf("#%d", r.Number)
		author := runewidth.Truncate(r.Author, colAuthor, "...")
		title := runewidth.Truncate(r.Title, colTitle, "...")
		dday := formatDDay(summary.Labels, r)
		change := formatChange(r)

		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			padRight(hyperlink(number, r.HTMLURL), displayWidth(number), colNumber),
			padRight(author, displayWidth(author), colAuthor),
			padRight(dday, displayWidth(dday), colDDay),
			padRight(change, displayWidth(change), colChange),
			title,
		)
	}

	printFooter(summary, w)
	return nil
}

// labelAt returns the countdown label at idx, or "-" when absent.
func labelAt(labels []string, idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(labels) {
		return "-"
	}
	return labels[*idx]
}

func formatDDay(labels []string, r model.Result) string {
	prev := labelAt(labels, r.PrevDDay)
	if r.PrevDDay == nil {
		return color.HiBlackString(prev)
	}
	if *r.PrevDDay == 0 {
		return color.RedString(prev)
	}
	return fmt.Sprintf("%s → %s", prev, color.YellowString(labelAt(labels, r.NextDDay)))
}

func formatChange(r model.Result) string {
	if !r.Changed() {
		return color.HiBlackString("-")
	}
	var parts []string
	for _, l := range r.Added {
		parts = append(parts, color.GreenString("+"+l))
	}
	for _, l := range r.Removed {
		parts = append(parts, color.RedString("-"+l))
	}
	return strings.Join(parts, " ")
}

func printFooter(summary *model.Summary, w io.Writer) {
	advanced, unchanged, untracked := summary.Counts()

	verb := "advanced"
	if summary.DryRun {
		verb = "would advance"
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s, %d unchanged, %d without a countdown label",
		color.GreenString("%d", advanced), verb, unchanged, untracked)
	if summary.DryRun {
		fmt.Fprint(w, color.YellowString(" (dry run)"))
	}
	fmt.Fprintln(w)
}
