//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestIntegration_JobPostings(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	source := "test-" + uuid.NewString()
	older := time.Now().Add(-48 * time.Hour).UTC().Truncate(time.Second)
	newer := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	postings := []types.JobPostingInput{
		{ID: uuid.NewString(), Title: "Backend Engineer", Source: source, SkillsRequired: []string{"go", "postgresql"}, PostedAt: &older},
		{ID: uuid.NewString(), Title: "Frontend Engineer", Source: source, Description: "React and TypeScript", PostedAt: &newer},
		{ID: uuid.NewString(), Title: "Data Engineer", Source: source},
	}
	ids := []string{postings[0].ID, postings[1].ID, postings[2].ID}
	defer func() { _ = db.DeleteJobPostings(ctx, ids) }()

	require.NoError(t, db.UpsertJobPostings(ctx, postings))

	t.Run("list newest first", func(t *testing.T) {
		listed, err := db.ListJobPostings(ctx, source, 10)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, postings[1].ID, listed[0].ID)
		assert.Equal(t, postings[0].ID, listed[1].ID)
		assert.Nil(t, listed[2].PostedAt)
		assert.Equal(t, []string{"go", "postgresql"}, listed[1].SkillsRequired)
	})

	t.Run("limit", func(t *testing.T) {
		listed, err := db.ListJobPostings(ctx, source, 1)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("by ids keeps request order", func(t *testing.T) {
		got, err := db.GetJobPostingsByIDs(ctx, []string{ids[2], ids[0]})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, ids[2], got[0].ID)
		assert.Equal(t, ids[0], got[1].ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := db.GetJobPostingsByIDs(ctx, []string{ids[0], "missing-" + uuid.NewString()})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Len(t, nf.IDs, 1)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		updated := postings[2]
		updated.Title = "Senior Data Engineer"
		require.NoError(t, db.UpsertJobPostings(ctx, []types.JobPostingInput{updated}))

		got, err := db.GetJobPostingsByIDs(ctx, []string{updated.ID})
		require.NoError(t, err)
		assert.Equal(t, "Senior Data Engineer", got[0].Title)
	})
}
