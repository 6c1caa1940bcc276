package query_test

import (
	"testing"

	"github.com/niksmo/visionframe/internal/core/catalog"
	"github.com/niksmo/visionframe/internal/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	all := catalog.Default().All()

	t.Run("EmptyQuery", func(t *testing.T) {
		for _, q := range []string{"", "   ", "\t\n"} {
			got := query.Search(all, q)
			require.NotNil(t, got)
			assert.Empty(t, got)
		}
	})

	t.Run("DescriptionOnly", func(t *testing.T) {
		got := query.Search(all, "wRAP-aROUND")
		assert.Equal(t, []string{"sg-002"}, ids(got))
	})

	t.Run("Name", func(t *testing.T) {
		got := query.Search(all, "wayfarer")
		assert.Equal(t, []string{"sg-001"}, ids(got))
	})

	t.Run("Type", func(t *testing.T) {
		got := query.Search(all, "EYEGLASSES")
		assert.Equal(t,
			[]string{"feat-002", "eg-001", "eg-002", "eg-003", "eg-004"},
			ids(got),
		)
	})

	t.Run("Brand", func(t *testing.T) {
		got := query.Search(all, "oliver")
		assert.Equal(t, []string{"eg-001"}, ids(got))
	})

	t.Run("TrimmedQuery", func(t *testing.T) {
		got := query.Search(all, "  aviator ")
		assert.Equal(t, []string{"feat-003"}, ids(got))
	})

	t.Run("NoMatch", func(t *testing.T) {
		got := query.Search(all, "monocle")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, query.Fold("ray-ban"), query.Fold("RAY-BAN"))
	assert.Equal(t, query.Fold("strasse"), query.Fold("STRASSE"))
}
