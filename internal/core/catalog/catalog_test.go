package catalog_test

import (
	"testing"

	"github.com/niksmo/visionframe/internal/core/catalog"
	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func testProduct(id string, t domain.ProductType) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      "name-" + id,
		Type:      t,
		Price:     decimal.NewFromInt(10),
		Colors:    []string{"Black"},
		ImageURLs: []string{"https://example.com/" + id},
	}
}

func TestDefault(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, 11, c.Len())
	assert.Equal(t,
		[]string{
			"feat-001", "feat-002", "feat-003",
			"eg-001", "eg-002", "eg-003", "eg-004",
			"sg-001", "sg-002", "sg-003", "sg-004",
		},
		ids(c.All()),
	)
}

func TestByID(t *testing.T) {
	c := catalog.Default()

	t.Run("EveryProduct", func(t *testing.T) {
		for _, p := range c.All() {
			got, err := c.ByID(p.ID)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		for _, id := range []string{"", "feat-999", "SG-001", "sg-001 "} {
			_, err := c.ByID(id)
			assert.ErrorIs(t, err, domain.ErrProductNotFound, id)
		}
	})

	t.Run("ReturnsCopy", func(t *testing.T) {
		p, err := c.ByID("sg-001")
		require.NoError(t, err)
		p.Colors[0] = "Mutated"

		again, err := c.ByID("sg-001")
		require.NoError(t, err)
		assert.Equal(t, "Black", again.Colors[0])
	})
}

func TestByType(t *testing.T) {
	c := catalog.Default()

	for _, typ := range []domain.ProductType{domain.Eyeglasses, domain.Sunglasses} {
		t.Run(string(typ), func(t *testing.T) {
			var want []string
			for _, p := range c.All() {
				if p.Type == typ {
					want = append(want, p.ID)
				}
			}
			assert.Equal(t, want, ids(c.ByType(typ)))
		})
	}

	assert.Equal(t,
		[]string{"feat-002", "eg-001", "eg-002", "eg-003", "eg-004"},
		ids(c.ByType(domain.Eyeglasses)),
	)
	assert.Empty(t, c.ByType("monocle"))
}

func TestFeaturedAndNew(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t,
		[]string{"feat-001", "feat-002", "feat-003", "sg-004"},
		ids(c.Featured()),
	)
	assert.Equal(t,
		[]string{"eg-001", "eg-004", "sg-002"},
		ids(c.New()),
	)
}

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c, err := catalog.New([]domain.Product{
			testProduct("b", domain.Sunglasses),
			testProduct("a", domain.Eyeglasses),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, ids(c.All()))
	})

	t.Run("DuplicateID", func(t *testing.T) {
		_, err := catalog.New([]domain.Product{
			testProduct("a", domain.Sunglasses),
			testProduct("a", domain.Eyeglasses),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate id "a"`)
	})

	t.Run("InvalidProducts", func(t *testing.T) {
		negative := testProduct("neg", domain.Sunglasses)
		negative.Price = decimal.NewFromInt(-1)

		noColors := testProduct("nocolor", domain.Sunglasses)
		noColors.Colors = nil

		noImages := testProduct("noimage", domain.Sunglasses)
		noImages.ImageURLs = nil

		badType := testProduct("type", "monocle")

		badRating := testProduct("rating", domain.Eyeglasses)
		badRating.Rating = 5.5

		for _, p := range []domain.Product{
			negative, noColors, noImages, badType, badRating,
		} {
			_, err := catalog.New([]domain.Product{p})
			assert.Error(t, err, p.ID)
		}
	})

	t.Run("SourceMutationDoesNotLeak", func(t *testing.T) {
		src := []domain.Product{testProduct("a", domain.Eyeglasses)}
		c, err := catalog.New(src)
		require.NoError(t, err)

		src[0].Name = "changed"
		src[0].Colors[0] = "changed"

		p, err := c.ByID("a")
		require.NoError(t, err)
		assert.Equal(t, "name-a", p.Name)
		assert.Equal(t, "Black", p.Colors[0])
	})
}
