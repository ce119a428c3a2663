package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/seed"
	"github.com/Zachkp/portfolio/internal/store/memstore"
)

func TestLoad(t *testing.T) {
	t.Run("should show the seed when the store is empty", func(t *testing.T) {
		page := Load(context.Background(), memstore.New())

		assert.Equal(t, seed.Projects(), page.Projects)
		assert.Equal(t, seed.Experiences(), page.Experiences)
		assert.Equal(t, SourceSeed, page.ProjectSource)
		assert.Equal(t, SourceSeed, page.ExperienceSource)
	})

	t.Run("should show the seed when reads fail", func(t *testing.T) {
		st := memstore.New()
		st.FailAll(errors.New("dial tcp: connection refused"))

		page := Load(context.Background(), st)

		assert.Equal(t, seed.Projects(), page.Projects)
		assert.Equal(t, seed.Experiences(), page.Experiences)
	})

	t.Run("should show remote rows in store order without the seed", func(t *testing.T) {
		ctx := context.Background()
		st := memstore.New()
		_, err := st.InsertProject(ctx, domain.Project{Title: "one", Role: "r"})
		require.NoError(t, err)
		_, err = st.InsertProject(ctx, domain.Project{Title: "two", Role: "r"})
		require.NoError(t, err)

		want, err := st.ListProjects(ctx)
		require.NoError(t, err)

		page := Load(ctx, st)

		assert.Equal(t, want, page.Projects)
		assert.Equal(t, SourceRemote, page.ProjectSource)
		assert.Equal(t, SourceSeed, page.ExperienceSource)
		assert.Equal(t, seed.Experiences(), page.Experiences)
	})

	t.Run("should decide each collection on its own", func(t *testing.T) {
		ctx := context.Background()
		st := memstore.New()
		_, err := st.InsertExperience(ctx, domain.Experience{Company: "Acme", Role: "Lead", Period: "2024"})
		require.NoError(t, err)
		st.Fail(domain.Projects, errors.New("timeout"))

		page := Load(ctx, st)

		assert.Equal(t, SourceSeed, page.ProjectSource)
		assert.Equal(t, SourceRemote, page.ExperienceSource)
		require.Len(t, page.Experiences, 1)
		assert.Equal(t, "Acme", page.Experiences[0].Company)
	})

	t.Run("should keep remote as the source when rows are invalid", func(t *testing.T) {
		ctx := context.Background()
		st := memstore.New()
		_, err := st.InsertProject(ctx, domain.Project{Role: "no title"})
		require.NoError(t, err)

		page := Load(ctx, st)

		assert.Equal(t, SourceRemote, page.ProjectSource)
		assert.Empty(t, page.Projects)
		assert.Equal(t, 1, page.InvalidRows)
	})
}

func TestLoadAll(t *testing.T) {
	t.Run("should return empty lists without a seed fallback", func(t *testing.T) {
		snap := LoadAll(context.Background(), memstore.New())

		assert.NotNil(t, snap.Projects)
		assert.Empty(t, snap.Projects)
		assert.Empty(t, snap.Experiences)
		assert.Empty(t, snap.Messages)
		assert.Empty(t, snap.Errors)
	})

	t.Run("should record failures and return empty lists", func(t *testing.T) {
		ctx := context.Background()
		st := memstore.New()
		_, err := st.InsertMessage(ctx, domain.Message{Name: "a", Email: "b", Message: "c"})
		require.NoError(t, err)
		boom := errors.New("unavailable")
		st.Fail(domain.Messages, boom)

		snap := LoadAll(ctx, st)

		assert.Empty(t, snap.Messages)
		assert.ErrorIs(t, snap.Errors[domain.Messages], boom)
		assert.NotContains(t, snap.Errors, domain.Projects)
	})

	t.Run("should return every collection in store order", func(t *testing.T) {
		ctx := context.Background()
		st := memstore.New()
		_, err := st.InsertProject(ctx, domain.Project{Title: "p", Role: "r"})
		require.NoError(t, err)
		_, err = st.InsertExperience(ctx, domain.Experience{Company: "c", Role: "r"})
		require.NoError(t, err)
		_, err = st.InsertMessage(ctx, domain.Message{Name: "a", Email: "b", Message: "c"})
		require.NoError(t, err)

		snap := LoadAll(ctx, st)

		assert.Len(t, snap.Projects, 1)
		assert.Len(t, snap.Experiences, 1)
		assert.Len(t, snap.Messages, 1)
	})
}
