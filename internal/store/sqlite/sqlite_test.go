package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/domain"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return repo
}

func TestRepository_Projects(t *testing.T) {
	t.Run("should return an empty slice when there are no projects", func(t *testing.T) {
		repo := setupTestDB(t)

		got, err := repo.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should list projects newest first with their lists intact", func(t *testing.T) {
		repo := setupTestDB(t)
		ctx := context.Background()

		_, err := repo.InsertProject(ctx, domain.Project{Title: "old", Role: "r", Tags: []string{"Go", "SQL"}})
		require.NoError(t, err)
		created, err := repo.InsertProject(ctx, domain.Project{Title: "new", Role: "r", Details: []string{"d1"}})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := repo.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "new", got[0].Title)
		assert.Equal(t, []string{"d1"}, got[0].Details)
		assert.Equal(t, []string{}, got[0].Tags)
		assert.Equal(t, []string{"Go", "SQL"}, got[1].Tags)
		assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
	})

	t.Run("should update and delete a project by id", func(t *testing.T) {
		repo := setupTestDB(t)
		ctx := context.Background()

		p, err := repo.InsertProject(ctx, domain.Project{Title: "X", Role: "Y", Description: "Z"})
		require.NoError(t, err)

		p.Title = "X2"
		p.Tags = []string{"Design"}
		updated, err := repo.UpdateProject(ctx, p.ID, p)
		require.NoError(t, err)
		assert.Equal(t, "X2", updated.Title)
		assert.Equal(t, []string{"Design"}, updated.Tags)

		require.NoError(t, repo.DeleteProject(ctx, p.ID))
		assert.ErrorIs(t, repo.DeleteProject(ctx, p.ID), domain.ErrNotFound)

		_, err = repo.UpdateProject(ctx, p.ID, p)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRepository_Experiences(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, period := range []string{"2017 — 2020", "2020 — Present"} {
		_, err := repo.InsertExperience(ctx, domain.Experience{
			Company:    "c",
			Role:       "r",
			Period:     period,
			Highlights: []string{"h"},
		})
		require.NoError(t, err)
	}

	got, err := repo.ListExperiences(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2020 — Present", got[0].Period)
	assert.Equal(t, []string{"h"}, got[0].Highlights)
	assert.Equal(t, []string{}, got[0].Details)

	got[0].Summary = "s"
	updated, err := repo.UpdateExperience(ctx, got[0].ID, got[0])
	require.NoError(t, err)
	assert.Equal(t, "s", updated.Summary)

	require.NoError(t, repo.DeleteExperience(ctx, got[1].ID))
	left, err := repo.ListExperiences(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestRepository_Messages(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	at := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)

	_, err := repo.InsertMessage(ctx, domain.Message{Name: "Ada", Email: "ada@example.com", Message: "hi", CreatedAt: at})
	require.NoError(t, err)
	_, err = repo.InsertMessage(ctx, domain.Message{Name: "Bob", Email: "bob@example.com", Message: "yo", CreatedAt: at.Add(time.Hour)})
	require.NoError(t, err)

	got, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].Name)
	assert.True(t, got[1].CreatedAt.Equal(at))
}

func TestRepository_Check(t *testing.T) {
	repo := setupTestDB(t)

	for _, c := range domain.Collections {
		assert.NoError(t, repo.Check(context.Background(), c))
	}
	assert.Error(t, repo.Check(context.Background(), domain.Collection("nope")))
}

func TestStringList(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan([]byte("null")))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
