package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemas_ValidJSON(t *testing.T) {
	all := map[string]string{
		"skill_catalog": SkillCatalog,
		"scored_jobs":   ScoredJobs,
		"skill_gaps":    SkillGaps,
	}

	for name, content := range all {
		t.Run(name, func(t *testing.T) {
			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(content), &schemaObj))

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestScoredJobsSchema_AcceptsScoredJob(t *testing.T) {
	doc := `{
		"jobs": [{
			"id": "job-1",
			"title": "Frontend Engineer",
			"source": "test",
			"relevance_score": 64,
			"matched_skills": ["react"],
			"match_count": 1,
			"missing_skills": ["typescript", "docker"]
		}]
	}`
	assert.NoError(t, schemas.ValidateJSONString(ScoredJobs, doc))
}

func TestSkillGapsSchema_RejectsUnknownPriority(t *testing.T) {
	doc := `{"gaps": [{"skill": "docker", "priority": "urgent", "reason": "x", "frequency": 1, "importance": 1.5}]}`
	assert.Error(t, schemas.ValidateJSONString(SkillGaps, doc))
}
