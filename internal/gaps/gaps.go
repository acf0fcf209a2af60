// Package gaps aggregates the skills missing across a ranked job batch into a
// prioritized, bounded gap list.
package gaps

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

// DefaultTopN is the gap list length used when the caller does not choose one.
const DefaultTopN = 5

const (
	topPositionCount    = 10
	topPositionFactor   = 1.5
	otherPositionFactor = 1.0

	maxContextTitles = 3
	maxReasonTitles  = 2

	highRankLimit        = 2
	highFrequencyShare   = 0.6
	mediumRankLimit      = 5
	mediumFrequencyShare = 0.3
)

// Normalizer canonicalizes skill names.
type Normalizer interface {
	Normalize(raw string) string
	NormalizeAll(raws []string) []string
}

type accumulator struct {
	skill      string
	frequency  float64
	importance float64
	titles     []string
}

// Compute returns at most topN gap items ordered by descending importance.
// jobs must already be ranked; a job's position affects its weight. Skills the
// candidate has are never reported. topN <= 0 is an InvalidArgumentError.
func Compute(n Normalizer, candidateSkills []string, jobs []types.ScoredJob, topN int) ([]types.SkillGapItem, error) {
	if topN <= 0 {
		return nil, &InvalidArgumentError{Argument: "top_n", Message: fmt.Sprintf("must be positive, got %d", topN)}
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range n.NormalizeAll(candidateSkills) {
		have[s] = struct{}{}
	}

	bySkill := make(map[string]*accumulator)
	var ordered []*accumulator

	for i, job := range jobs {
		positionFactor := otherPositionFactor
		if i < topPositionCount {
			positionFactor = topPositionFactor
		}
		jobWeight := job.RelevanceScore / 100

		seen := make(map[string]struct{}, len(job.MissingSkills))
		for _, raw := range job.MissingSkills {
			skill := n.Normalize(raw)
			if skill == "" {
				continue
			}
			if _, ok := have[skill]; ok {
				continue
			}
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}

			acc, ok := bySkill[skill]
			if !ok {
				acc = &accumulator{skill: skill}
				bySkill[skill] = acc
				ordered = append(ordered, acc)
			}
			acc.frequency += jobWeight
			acc.importance += jobWeight * positionFactor
			acc.addTitle(job.Title)
		}
	}

	// Ties keep first-seen order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].importance > ordered[j].importance
	})
	if len(ordered) > topN {
		ordered = ordered[:topN]
	}

	totalJobs := float64(len(jobs))
	items := make([]types.SkillGapItem, 0, len(ordered))
	for rank, acc := range ordered {
		items = append(items, types.SkillGapItem{
			Skill:      acc.skill,
			Priority:   priorityFor(rank, acc.frequency, totalJobs),
			Reason:     reasonFor(acc, totalJobs),
			Frequency:  acc.frequency,
			Importance: acc.importance,
		})
	}
	return items, nil
}

func (a *accumulator) addTitle(title string) {
	if title == "" || len(a.titles) >= maxContextTitles {
		return
	}
	for _, t := range a.titles {
		if t == title {
			return
		}
	}
	a.titles = append(a.titles, title)
}

func priorityFor(rank int, frequency, totalJobs float64) types.Priority {
	switch {
	case rank < highRankLimit || frequency >= highFrequencyShare*totalJobs:
		return types.PriorityHigh
	case rank < mediumRankLimit || frequency >= mediumFrequencyShare*totalJobs:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

func reasonFor(acc *accumulator, totalJobs float64) string {
	percentage := 0.0
	if totalJobs > 0 {
		percentage = math.Round(acc.frequency/totalJobs*100*10) / 10
	}

	titles := acc.titles
	if len(titles) > maxReasonTitles {
		titles = titles[:maxReasonTitles]
	}

	return fmt.Sprintf("Missing in %d relevant job(s) (%s%% of positions). Required for roles like: %s.",
		int(math.Round(acc.frequency)),
		strconv.FormatFloat(percentage, 'f', -1, 64),
		strings.Join(titles, ", "))
}
