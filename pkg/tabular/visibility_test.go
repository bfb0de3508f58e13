package tabular_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func TestResolve(t *testing.T) {
	table := testTable()

	t.Run("stored order is authoritative", func(t *testing.T) {
		got := tabular.Resolve([]string{"address", "id", "status"}, table)
		require.Equal(t, []string{"address", "id", "status"}, got)
	})

	t.Run("unknown keys from stale preferences are dropped", func(t *testing.T) {
		got := tabular.Resolve([]string{"address", "legacyColumn", "id"}, table)
		require.Equal(t, []string{"address", "id"}, got)
	})

	t.Run("required keys are forced in", func(t *testing.T) {
		got := tabular.Resolve([]string{"address", "status"}, table)
		require.Equal(t, []string{"address", "status", "id"}, got)
	})

	t.Run("empty store yields required keys only", func(t *testing.T) {
		got := tabular.Resolve(nil, table)
		require.Equal(t, []string{"id"}, got)
	})

	t.Run("duplicates are dropped", func(t *testing.T) {
		got := tabular.Resolve([]string{"id", "id", "status"}, table)
		require.Equal(t, []string{"id", "status"}, got)
	})
}

func TestResolveKeys(t *testing.T) {
	declared := []string{"search", "status", "dateFrom", "dateTo"}
	required := []string{"search"}

	got := tabular.ResolveKeys([]string{"dateTo", "legacy", "status"}, declared, required)
	require.Equal(t, []string{"dateTo", "status", "search"}, got)

	require.Equal(t, []string{"search"}, tabular.ResolveKeys(nil, declared, required))
}

func TestInMemoryPreferenceStore(t *testing.T) {
	ctx := context.Background()
	store := tabular.NewInMemoryPreferenceStore()

	keys, err := store.Get(ctx, 1, "work_orders", tabular.KindColumns)
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, store.Set(ctx, 1, "work_orders", tabular.KindColumns, []string{"id", "status"}))
	require.NoError(t, store.Set(ctx, 2, "work_orders", tabular.KindColumns, []string{"id"}))
	require.NoError(t, store.Set(ctx, 1, "work_orders", tabular.KindFilters, []string{"status"}))

	keys, err = store.Get(ctx, 1, "work_orders", tabular.KindColumns)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "status"}, keys)

	keys, err = store.Get(ctx, 2, "work_orders", tabular.KindColumns)
	require.NoError(t, err)
	require.Equal(t, []string{"id"}, keys)

	keys, err = store.Get(ctx, 1, "work_orders", tabular.KindFilters)
	require.NoError(t, err)
	require.Equal(t, []string{"status"}, keys)
}
