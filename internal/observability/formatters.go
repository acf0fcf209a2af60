// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxSkillsWidth truncates joined skill lists inside a box
	maxSkillsWidth = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func joinSkills(skills []string) string {
	return truncate(strings.Join(skills, ", "), maxSkillsWidth)
}

// PrintRankedJobs outputs the top ranked jobs with scores and skill coverage.
func (p *Printer) PrintRankedJobs(jobs []types.ScoredJob) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total jobs ranked: %d\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, job.Title, job.ID))
		sb.WriteString(fmt.Sprintf("    Score: %.0f", job.RelevanceScore))
		if job.Boost > 0 {
			sb.WriteString(fmt.Sprintf(" (boost +%.0f)", job.Boost))
		}
		sb.WriteString("\n")
		if len(job.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Matched: %s\n", joinSkills(job.MatchedSkills)))
		}
		if len(job.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", joinSkills(job.MissingSkills)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox("TOP RANKED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGaps outputs the gap list grouped by priority.
func (p *Printer) PrintSkillGaps(items []types.SkillGapItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	for _, priority := range []types.Priority{types.PriorityHigh, types.PriorityMedium, types.PriorityLow} {
		var group []types.SkillGapItem
		for _, item := range items {
			if item.Priority == priority {
				group = append(group, item)
			}
		}
		if len(group) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s priority:\n", strings.ToUpper(string(priority))))
		for _, item := range group {
			sb.WriteString(fmt.Sprintf("  • %-20s importance %.2f\n", item.Skill, item.Importance))
		}
	}

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}
