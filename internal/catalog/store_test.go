package catalog_test

import (
	"sync"
	"testing"
	"time"

	"github.com/UnknownOlympus/kiez/internal/catalog"
	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset(category models.Category, ids ...string) catalog.Dataset {
	candidates := make([]models.Candidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, models.Candidate{ID: id})
	}
	return catalog.Dataset{Category: category, Candidates: candidates, FetchedAt: time.Now(), Source: "test"}
}

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("new store is empty", func(t *testing.T) {
		t.Parallel()
		store := catalog.NewStore()

		snapshot := store.Current()

		require.NotNil(t, snapshot)
		assert.NotEmpty(t, snapshot.ID)
		assert.Empty(t, snapshot.Categories())
		assert.False(t, snapshot.Loaded(models.CategoryToilets))
	})

	t.Run("swap merges with previous datasets", func(t *testing.T) {
		t.Parallel()
		store := catalog.NewStore()

		first := store.Swap(dataset(models.CategoryToilets, "t1"), dataset(models.CategoryFountains, "f1"))
		second := store.Swap(dataset(models.CategoryFountains, "f2", "f3"))

		assert.NotEqual(t, first.ID, second.ID)
		assert.Same(t, second, store.Current())

		toilets, ok := second.Dataset(models.CategoryToilets)
		require.True(t, ok)
		assert.Equal(t, "t1", toilets.Candidates[0].ID)

		fountains, ok := second.Dataset(models.CategoryFountains)
		require.True(t, ok)
		assert.Len(t, fountains.Candidates, 2)
		assert.Equal(t, []models.Category{models.CategoryToilets, models.CategoryFountains}, second.Categories())
	})

	t.Run("published snapshot is untouched by later swaps", func(t *testing.T) {
		t.Parallel()
		store := catalog.NewStore()
		old := store.Swap(dataset(models.CategoryDemonstrations, "d1"))

		store.Swap(dataset(models.CategoryDemonstrations, "d2", "d3"))

		ds, ok := old.Dataset(models.CategoryDemonstrations)
		require.True(t, ok)
		require.Len(t, ds.Candidates, 1)
		assert.Equal(t, "d1", ds.Candidates[0].ID)
	})

	t.Run("caller slice is copied", func(t *testing.T) {
		t.Parallel()
		store := catalog.NewStore()
		ds := dataset(models.CategoryToilets, "t1")

		snapshot := store.Swap(ds)
		ds.Candidates[0].ID = "mutated"

		got, _ := snapshot.Dataset(models.CategoryToilets)
		assert.Equal(t, "t1", got.Candidates[0].ID)
	})

	t.Run("concurrent readers see whole snapshots", func(t *testing.T) {
		t.Parallel()
		store := catalog.NewStore()
		store.Swap(dataset(models.CategoryToilets, "a", "b"), dataset(models.CategoryFountains, "a", "b"))

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 200 {
					snapshot := store.Current()
					toilets, _ := snapshot.Dataset(models.CategoryToilets)
					fountains, _ := snapshot.Dataset(models.CategoryFountains)
					assert.Len(t, fountains.Candidates, len(toilets.Candidates))
				}
			}()
		}
		for i := range 50 {
			ids := make([]string, i%5+1)
			for j := range ids {
				ids[j] = "x"
			}
			store.Swap(dataset(models.CategoryToilets, ids...), dataset(models.CategoryFountains, ids...))
		}
		wg.Wait()
	})
}
