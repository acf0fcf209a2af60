package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillmatch/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

const selectJobPostings = `SELECT id, source, title, company, location, url, description,
        skills_required, posted_at
 FROM job_postings`

// ListJobPostings returns the newest postings, optionally filtered by source.
// Undated postings come last.
func (db *DB) ListJobPostings(ctx context.Context, source string, limit int) ([]types.JobPostingInput, error) {
	rows, err := db.pool.Query(ctx,
		selectJobPostings+`
		 WHERE ($1 = '' OR source = $1)
		 ORDER BY posted_at DESC NULLS LAST, id
		 LIMIT $2`,
		source, clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	return collectPostings(rows)
}

// GetJobPostingsByIDs returns the postings in ids order. Any unknown id yields
// a *NotFoundError.
func (db *DB) GetJobPostingsByIDs(ctx context.Context, ids []string) ([]types.JobPostingInput, error) {
	if len(ids) == 0 {
		return []types.JobPostingInput{}, nil
	}

	rows, err := db.pool.Query(ctx, selectJobPostings+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get job postings: %w", err)
	}
	postings, err := collectPostings(rows)
	if err != nil {
		return nil, err
	}

	found := make(map[string]types.JobPostingInput, len(postings))
	for _, p := range postings {
		found[p.ID] = p
	}
	ordered, missing := orderByIDs(ids, found)
	if len(missing) > 0 {
		return nil, &NotFoundError{IDs: missing}
	}
	return ordered, nil
}

// UpsertJobPostings inserts or replaces postings by id in one transaction.
func (db *DB) UpsertJobPostings(ctx context.Context, postings []types.JobPostingInput) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, p := range postings {
		r := rowFromInput(p)
		batch.Queue(
			`INSERT INTO job_postings (id, source, title, company, location, url, description, skills_required, posted_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE SET
			   source = $2, title = $3, company = $4, location = $5, url = $6,
			   description = $7, skills_required = $8, posted_at = $9, updated_at = NOW()`,
			r.ID, r.Source, r.Title, r.Company, r.Location, r.URL, r.Description, r.SkillsRequired, r.PostedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert job postings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit job postings: %w", err)
	}
	return nil
}

// DeleteJobPostings removes postings by id.
func (db *DB) DeleteJobPostings(ctx context.Context, ids []string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete job postings: %w", err)
	}
	return nil
}

func collectPostings(rows pgx.Rows) ([]types.JobPostingInput, error) {
	defer rows.Close()

	postings := []types.JobPostingInput{}
	for rows.Next() {
		var r jobPostingRow
		if err := rows.Scan(&r.ID, &r.Source, &r.Title, &r.Company, &r.Location, &r.URL,
			&r.Description, &r.SkillsRequired, &r.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, r.toInput())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}
