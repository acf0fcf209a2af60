// Package schemas embeds the JSON Schema documents for the artifacts skillmatch reads and writes.
package schemas

import _ "embed"

// SkillCatalog is the schema every skill catalog document must satisfy.
//
//go:embed skill_catalog.schema.json
var SkillCatalog string

// ScoredJobs describes the output of the score command and endpoint.
//
//go:embed scored_jobs.schema.json
var ScoredJobs string

// SkillGaps describes the output of the gaps command and endpoint.
//
//go:embed skill_gaps.schema.json
var SkillGaps string
