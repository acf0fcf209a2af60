package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// DefaultListLimit applies when ListJobPostings is called with limit <= 0.
	DefaultListLimit = 100
	// MaxListLimit caps a single ListJobPostings call.
	MaxListLimit = 5000
)

// jobPostingRow mirrors a job_postings row.
type jobPostingRow struct {
	ID             string
	Source         string
	Title          string
	Company        string
	Location       string
	URL            string
	Description    string
	SkillsRequired []string
	PostedAt       *time.Time
}

func (r jobPostingRow) toInput() types.JobPostingInput {
	return types.JobPostingInput{
		ID:             r.ID,
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		URL:            r.URL,
		Source:         r.Source,
		Description:    r.Description,
		SkillsRequired: r.SkillsRequired,
		PostedAt:       r.PostedAt,
	}
}

func rowFromInput(in types.JobPostingInput) jobPostingRow {
	skills := in.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return jobPostingRow{
		ID:             in.ID,
		Source:         in.Source,
		Title:          in.Title,
		Company:        in.Company,
		Location:       in.Location,
		URL:            in.URL,
		Description:    in.Description,
		SkillsRequired: skills,
		PostedAt:       in.PostedAt,
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// orderByIDs returns the postings in ids order, skipping duplicates, plus the
// ids that have no posting.
func orderByIDs(ids []string, found map[string]types.JobPostingInput) ([]types.JobPostingInput, []string) {
	out := make([]types.JobPostingInput, 0, len(ids))
	var missing []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p, ok := found[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, p)
	}
	return out, missing
}

// NotFoundError names the requested posting ids that do not exist.
type NotFoundError struct {
	IDs []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job postings not found: %s", strings.Join(e.IDs, ", "))
}
