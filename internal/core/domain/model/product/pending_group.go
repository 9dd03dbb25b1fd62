package product

import "marketplace/internal/core/domain/model/kernel"

// PendingGroup pairs a producer with its products awaiting moderation.
// Groups are derived, never stored, and never hold zero products.
type PendingGroup struct {
	Producer Producer
	Products []*Product
}

// ProductCount returns the number of pending products in the group.
func (g PendingGroup) ProductCount() int {
	return len(g.Products)
}

// ProductNames returns the names of the group's products.
func (g PendingGroup) ProductNames() []string {
	names := make([]string, 0, len(g.Products))
	for _, p := range g.Products {
		names = append(names, p.Name())
	}
	return names
}

// Regroup groups PENDING products by producer. Groups appear in the order their
// producer is first seen and products keep their input order, so the result is
// deterministic. Non-pending products are skipped and empty groups never appear.
func Regroup(products []*Product) []PendingGroup {
	index := make(map[kernel.ID]int)
	groups := make([]PendingGroup, 0)

	for _, p := range products {
		if p == nil || !p.IsPending() {
			continue
		}
		i, ok := index[p.Producer().ID]
		if !ok {
			i = len(groups)
			index[p.Producer().ID] = i
			groups = append(groups, PendingGroup{Producer: p.Producer()})
		}
		groups[i].Products = append(groups[i].Products, p)
	}

	return groups
}

// Flatten returns every product of the groups in group order.
func Flatten(groups []PendingGroup) []*Product {
	var products []*Product
	for _, g := range groups {
		products = append(products, g.Products...)
	}
	return products
}

// Without regroups the products of groups after dropping the product with id.
// Applied after a successful moderation so that a producer whose last pending
// product was moderated disappears from the result.
func Without(groups []PendingGroup, id kernel.ID) []PendingGroup {
	remaining := make([]*Product, 0)
	for _, p := range Flatten(groups) {
		if p.ID() != id {
			remaining = append(remaining, p)
		}
	}
	return Regroup(remaining)
}
