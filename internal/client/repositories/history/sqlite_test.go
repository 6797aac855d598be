package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rajanimaurya/internship-recommender/internal/client/models"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func TestAddAndList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := &models.AnalysisRecord{FileName: "resume.pdf", Summary: "ok", TopTitle: "Backend Developer Intern", TopScore: 90}
	require.NoError(t, repo.Add(ctx, first))
	assert.NotZero(t, first.ID)

	second := &models.AnalysisRecord{FileName: "resume2.pdf", Summary: "better", TopTitle: "Data Analyst Intern", TopScore: 95}
	require.NoError(t, repo.Add(ctx, second))

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "resume2.pdf", list[0].FileName)
	assert.Equal(t, 95, list[0].TopScore)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestList_Limit(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Add(ctx, &models.AnalysisRecord{FileName: "r.pdf"}))
	}
	list, err := repo.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestClear(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &models.AnalysisRecord{FileName: "r.pdf"}))
	require.NoError(t, repo.Clear(ctx))

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
