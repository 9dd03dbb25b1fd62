package product_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []*product.Product) []kernel.ID {
	out := make([]kernel.ID, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID())
	}
	return out
}

func TestRegroup(t *testing.T) {
	t.Run("should group pending products by producer in first-seen order", func(t *testing.T) {
		groups := product.Regroup([]*product.Product{
			newProduct(t, 1, 20, product.Pending),
			newProduct(t, 2, 10, product.Pending),
			newProduct(t, 3, 20, product.Pending),
			newProduct(t, 4, 10, product.Approved),
			newProduct(t, 5, 30, product.Declined),
		})

		require.Len(t, groups, 2)
		assert.Equal(t, kernel.ID(20), groups[0].Producer.ID)
		assert.Equal(t, []kernel.ID{1, 3}, ids(groups[0].Products))
		assert.Equal(t, kernel.ID(10), groups[1].Producer.ID)
		assert.Equal(t, []kernel.ID{2}, ids(groups[1].Products))
	})

	t.Run("should return no groups when nothing is pending", func(t *testing.T) {
		groups := product.Regroup([]*product.Product{newProduct(t, 1, 1, product.Approved)})
		assert.Empty(t, groups)
		assert.NotNil(t, groups)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		in := []*product.Product{newProduct(t, 1, 2, product.Pending), newProduct(t, 2, 1, product.Pending)}
		assert.Equal(t, product.Regroup(in), product.Regroup(in))
	})
}

func TestWithout(t *testing.T) {
	groups := product.Regroup([]*product.Product{
		newProduct(t, 1, 10, product.Pending),
		newProduct(t, 2, 20, product.Pending),
		newProduct(t, 3, 20, product.Pending),
	})

	t.Run("should drop the group of a producer whose last product was moderated", func(t *testing.T) {
		got := product.Without(groups, 1)

		require.Len(t, got, 1)
		assert.Equal(t, kernel.ID(20), got[0].Producer.ID)
		for _, g := range got {
			assert.NotZero(t, g.ProductCount())
		}
	})

	t.Run("should keep the group while it still has products", func(t *testing.T) {
		got := product.Without(groups, 3)

		require.Len(t, got, 2)
		assert.Equal(t, []kernel.ID{2}, ids(got[1].Products))
	})

	t.Run("should leave the input untouched", func(t *testing.T) {
		_ = product.Without(groups, 2)
		assert.Equal(t, []kernel.ID{2, 3}, ids(groups[1].Products))
	})

	t.Run("should be a no-op for unknown ids", func(t *testing.T) {
		assert.Equal(t, groups, product.Without(groups, 99))
	})
}
