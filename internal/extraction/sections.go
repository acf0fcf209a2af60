package extraction

import (
	"strings"
	"unicode"
)

// maxHeaderWords keeps prose sentences that merely mention "experience" from opening a section.
const maxHeaderWords = 5

// sections returns the text under each recognized header, each bounded to MaxSectionLength.
func (e *Extractor) sections(text string) []string {
	var (
		out     []string
		current strings.Builder
		open    bool
	)

	flush := func() {
		if open && current.Len() > 0 {
			out = append(out, truncate(current.String(), MaxSectionLength))
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if rest, ok := e.headerOf(line); ok {
			flush()
			open = true
			if rest != "" {
				// Inline lists after the colon are scanned like a bullet.
				current.WriteString("- " + rest + "\n")
			}
			continue
		}
		if !open || current.Len() >= MaxSectionLength {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	flush()

	return out
}

// headerOf reports whether line opens a skills section and returns any text
// following the header's colon.
func (e *Extractor) headerOf(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || bulletRe.MatchString(trimmed) {
		return "", false
	}

	head, rest, hasColon := strings.Cut(trimmed, ":")
	heading := strings.HasPrefix(head, "#") || strings.HasPrefix(head, "**")

	words := strings.FieldsFunc(strings.ToLower(strings.ReplaceAll(head, "’", "'")), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	if len(words) == 0 || len(words) > maxHeaderWords {
		return "", false
	}
	if !hasColon && !heading && len(words) > 3 {
		return "", false
	}

	phrase := " " + strings.Join(words, " ") + " "
	for _, h := range e.catalog.SectionHeaders() {
		if strings.Contains(phrase, " "+h+" ") {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
