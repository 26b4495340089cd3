package preference

import (
	"context"
	"testing"
	"time"

	"pizza-orders-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		prefs, err := repo.Load(ctx, order.PreferenceKey)
		assert.NoError(t, err)
		assert.Nil(t, prefs)
	})

	t.Run("RoundTrip with date range", func(t *testing.T) {
		want := order.Preferences{
			Sort: order.SortConfig{Key: order.SortByCustomerName, Direction: order.SortAsc},
			Filter: order.FilterConfig{
				Status: order.StatusAll,
				DateRange: &order.DateRange{
					Start: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2024, 12, 1, 23, 59, 0, 0, time.UTC),
				},
			},
		}
		require.NoError(t, repo.Save(ctx, order.PreferenceKey, want))

		got, err := repo.Load(ctx, order.PreferenceKey)
		require.NoError(t, err)
		assert.Equal(t, want.Sort, got.Sort)
		require.NotNil(t, got.Filter.DateRange)
		assert.True(t, want.Filter.DateRange.Start.Equal(got.Filter.DateRange.Start))
	})
}

func TestMemoryRepository_SurvivesStoreRestart(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := order.NewStore(ctx, order.SeedOrders(), order.WithPreferences(repo))
	first.SetSearchQuery(ctx, "chen")
	require.NoError(t, first.SetSortConfig(ctx, order.SortConfig{Key: order.SortByPrice, Direction: order.SortAsc}))
	require.NoError(t, first.SetFilterConfig(ctx, order.FilterConfig{Status: order.StatusFilter(order.StatusPreparing)}))

	second := order.NewStore(ctx, order.SeedOrders(), order.WithPreferences(repo))

	view := second.View()
	assert.Empty(t, view.SearchQuery, "search query is not persisted")
	assert.Equal(t, order.SortByPrice, view.Sort.Key)
	assert.Equal(t, order.StatusFilter(order.StatusPreparing), view.Filter.Status)
	assert.Equal(t, "PZA010", second.VisibleOrders()[0].ID)
}
