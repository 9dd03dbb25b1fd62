package services

import (
	"cmp"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"

	"github.com/shopspring/decimal"
)

// Field names shared by the schemas.
const (
	FieldID         = "id"
	FieldStatus     = "status"
	FieldCustomer   = "customer"
	FieldProduct    = "product"
	FieldProducer   = "producer"
	FieldName       = "name"
	FieldCategory   = "category"
	FieldPrice      = "price"
	FieldTotalPrice = "totalPrice"
	FieldQuantity   = "quantity"
	FieldCreatedAt  = "createdAt"
	FieldProducts   = "productCount"
)

// OrderSchema describes the producer's order collection.
//
// Search matches the order id, the customer name and any product name.
// Filters: status (equality), customer (customer id equality),
// totalPrice and quantity (ranges).
func OrderSchema() *query.Schema[*order.Order] {
	return query.NewSchema(func(o *order.Order) int64 { return o.ID().Int64() }).
		Search(FieldID, func(o *order.Order) []string { return []string{o.ID().String()} }).
		Search(FieldCustomer, func(o *order.Order) []string { return []string{o.Customer().Name} }).
		Search(FieldProduct, (*order.Order).ProductNames).
		Equality(FieldStatus, func(o *order.Order) string { return o.Status().String() }).
		Equality(FieldCustomer, func(o *order.Order) string { return o.Customer().ID.String() }).
		Range(FieldTotalPrice, func(o *order.Order) decimal.Decimal { return o.TotalPrice().Decimal() }).
		Range(FieldQuantity, func(o *order.Order) decimal.Decimal { return decimal.NewFromInt(int64(o.Quantity())) }).
		Sort(FieldID, func(a, b *order.Order) int { return cmp.Compare(a.ID(), b.ID()) }).
		Sort(FieldStatus, func(a, b *order.Order) int { return cmp.Compare(a.Status(), b.Status()) }).
		Sort(FieldTotalPrice, func(a, b *order.Order) int { return a.TotalPrice().Cmp(b.TotalPrice()) }).
		Sort(FieldQuantity, func(a, b *order.Order) int { return cmp.Compare(a.Quantity(), b.Quantity()) }).
		Sort(FieldCreatedAt, func(a, b *order.Order) int { return a.CreatedAt().Compare(b.CreatedAt()) }).
		Sort(FieldCustomer, func(a, b *order.Order) int {
			return strings.Compare(strings.ToLower(a.Customer().Name), strings.ToLower(b.Customer().Name))
		})
}

// ProductSchema describes a producer's product catalog.
func ProductSchema() *query.Schema[*product.Product] {
	return query.NewSchema(func(p *product.Product) int64 { return p.ID().Int64() }).
		Search(FieldID, func(p *product.Product) []string { return []string{p.ID().String()} }).
		Search(FieldName, func(p *product.Product) []string { return []string{p.Name()} }).
		Search(FieldCategory, (*product.Product).CategoryNames).
		Equality(FieldStatus, func(p *product.Product) string { return p.Status().String() }).
		Equality(FieldProducer, func(p *product.Product) string { return p.Producer().ID.String() }).
		Range(FieldPrice, func(p *product.Product) decimal.Decimal { return p.Price().Decimal() }).
		Range(FieldQuantity, func(p *product.Product) decimal.Decimal { return decimal.NewFromInt(int64(p.Quantity())) }).
		Sort(FieldID, func(a, b *product.Product) int { return cmp.Compare(a.ID(), b.ID()) }).
		Sort(FieldName, func(a, b *product.Product) int {
			return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
		}).
		Sort(FieldPrice, func(a, b *product.Product) int { return a.Price().Cmp(b.Price()) }).
		Sort(FieldQuantity, func(a, b *product.Product) int { return cmp.Compare(a.Quantity(), b.Quantity()) }).
		Sort(FieldStatus, func(a, b *product.Product) int { return cmp.Compare(a.Status(), b.Status()) }).
		Sort(FieldCreatedAt, func(a, b *product.Product) int { return a.CreatedAt().Compare(b.CreatedAt()) })
}

// PendingGroupSchema describes the grouped moderation queue. A group is identified
// by its producer.
func PendingGroupSchema() *query.Schema[product.PendingGroup] {
	return query.NewSchema(func(g product.PendingGroup) int64 { return g.Producer.ID.Int64() }).
		Search(FieldProducer, func(g product.PendingGroup) []string { return []string{g.Producer.Name} }).
		Search(FieldProduct, product.PendingGroup.ProductNames).
		Equality(FieldProducer, func(g product.PendingGroup) string { return g.Producer.ID.String() }).
		Range(FieldProducts, func(g product.PendingGroup) decimal.Decimal { return decimal.NewFromInt(int64(g.ProductCount())) }).
		Sort(FieldProducer, func(a, b product.PendingGroup) int {
			return strings.Compare(strings.ToLower(a.Producer.Name), strings.ToLower(b.Producer.Name))
		}).
		Sort(FieldProducts, func(a, b product.PendingGroup) int { return cmp.Compare(a.ProductCount(), b.ProductCount()) }).
		Sort(FieldCreatedAt, func(a, b product.PendingGroup) int { return earliest(a).Compare(earliest(b)) })
}

// earliest returns the creation time of the group's oldest product.
func earliest(g product.PendingGroup) time.Time {
	var t time.Time
	for i, p := range g.Products {
		if i == 0 || p.CreatedAt().Before(t) {
			t = p.CreatedAt()
		}
	}
	return t
}
