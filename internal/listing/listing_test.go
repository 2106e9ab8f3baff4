package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func paramGetter(params map[string]string) func(string) string {
	return func(name string) string { return params[name] }
}

func TestParsePagination(t *testing.T) {
	t.Parallel()

	t.Run("defaults when absent", func(t *testing.T) {
		q := Parse(paramGetter(nil), DefaultLimits)
		require.Equal(t, 1, q.Page)
		require.Equal(t, 10, q.PageSize)
		require.Equal(t, 0, q.Offset())
	})

	t.Run("page zero or junk normalizes to one", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{"page": "0"}), DefaultLimits)
		require.Equal(t, 1, q.Page)

		q = Parse(paramGetter(map[string]string{"page": "-3"}), DefaultLimits)
		require.Equal(t, 1, q.Page)

		q = Parse(paramGetter(map[string]string{"page": "banana"}), DefaultLimits)
		require.Equal(t, 1, q.Page)
	})

	t.Run("page size clamps to the maximum", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{"limit": "1000"}), DefaultLimits)
		require.Equal(t, 100, q.PageSize)
	})

	t.Run("offset derives from page and size", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{"page": "3", "limit": "10"}), DefaultLimits)
		require.Equal(t, 20, q.Offset())
	})
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	t.Run("descending prefix", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{"sort": "-username"}), DefaultLimits)
		require.Equal(t, "username", q.SortField)
		require.True(t, q.SortDesc)
		require.Equal(t, "username", q.SortColumn())
	})

	t.Run("unknown field falls back to the default", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{"sort": "password_hash"}), DefaultLimits)
		require.Equal(t, "created", q.SortField)
		require.False(t, q.SortDesc)
		require.Equal(t, "created_at", q.SortColumn())
	})
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	t.Run("allow-listed fields pass", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{
			"filter[role]":     "admin",
			"filter[username]": "alice",
		}), DefaultLimits)
		require.Equal(t, map[string]string{"role": "admin", "username": "alice"}, q.Filters)
	})

	t.Run("invalid role value drops", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{"filter[role]": "root"}), DefaultLimits)
		require.Empty(t, q.Filters)
	})

	t.Run("non-allow-listed fields never reach the query", func(t *testing.T) {
		q := Parse(paramGetter(map[string]string{
			"filter[password_hash]": "x",
			"filter[$where]":        "1==1",
		}), DefaultLimits)
		require.Empty(t, q.Filters)
	})
}

func TestParseSearch(t *testing.T) {
	t.Parallel()

	q := Parse(paramGetter(map[string]string{"search": "  bob  "}), DefaultLimits)
	require.Equal(t, "bob", q.Search)

	q = Parse(paramGetter(map[string]string{"search": "   "}), DefaultLimits)
	require.Empty(t, q.Search)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	require.Equal(t, 3, TotalPages(25, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 0, TotalPages(5, 0))
}
