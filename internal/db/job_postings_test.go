package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillmatch/internal/types"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"zero uses default", 0, DefaultListLimit},
		{"negative uses default", -3, DefaultListLimit},
		{"in range", 25, 25},
		{"capped", MaxListLimit + 1, MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampLimit(tt.limit))
		})
	}
}

func TestOrderByIDs(t *testing.T) {
	found := map[string]types.JobPostingInput{
		"a": {ID: "a", Title: "A"},
		"b": {ID: "b", Title: "B"},
	}

	ordered, missing := orderByIDs([]string{"b", "x", "a", "b"}, found)

	assert.Equal(t, []types.JobPostingInput{found["b"], found["a"]}, ordered)
	assert.Equal(t, []string{"x"}, missing)
}

func TestRowRoundTrip(t *testing.T) {
	posted := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := types.JobPostingInput{
		ID:             "job-1",
		Title:          "Backend Engineer",
		Company:        "Acme",
		Location:       "Remote",
		URL:            "https://example.com/jobs/1",
		Source:         "greenhouse",
		Description:    "Go and PostgreSQL",
		SkillsRequired: []string{"go", "postgresql"},
		PostedAt:       &posted,
	}

	assert.Equal(t, in, rowFromInput(in).toInput())
}

func TestRowFromInput_NilSkills(t *testing.T) {
	r := rowFromInput(types.JobPostingInput{ID: "1", Title: "Engineer"})
	assert.NotNil(t, r.SkillsRequired)
	assert.Empty(t, r.SkillsRequired)
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{IDs: []string{"a", "b"}}
	assert.Equal(t, "job postings not found: a, b", err.Error())
}
