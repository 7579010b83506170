// Package observability provides formatted terminal output for the CLI commands.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 72

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and word-wrapped content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", inner, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s%s │\n", wrapped, strings.Repeat(" ", inner-len([]rune(wrapped))))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobSummary outputs the summarized job description.
func (p *Printer) PrintJobSummary(job *types.JobPostingData) {
	if job == nil {
		return
	}
	p.printBox(strings.ToUpper(job.Title), job.Description)
}

// PrintResumePreview outputs the start of the extracted resume text.
func (p *Printer) PrintResumePreview(resume *types.ResumeData) {
	if resume == nil {
		return
	}
	p.printBox("RESUME TEXT (PREVIEW)", resume.Preview())
}

// PrintSuggestions outputs the suggestion list in parser order.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		p.printBox("SUGGESTIONS", "No suggestions yet.")
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s.Message))
		sb.WriteString(fmt.Sprintf("   Type: %s", s.Type))
		if i < len(suggestions)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox(fmt.Sprintf("SUGGESTIONS (%d)", len(suggestions)), sb.String())
}

// wrap splits line into chunks of at most width runes, breaking on spaces when possible.
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
