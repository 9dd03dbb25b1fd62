package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"

	"github.com/shopspring/decimal"
)

type PageDescriptor struct {
	Index         int  `json:"index"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// Page is the body of every collection endpoint.
type Page[T any] struct {
	Items []T            `json:"items"`
	Page  PageDescriptor `json:"page"`
}

type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Order struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Items        []OrderItem     `json:"items"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Product struct {
	ID            int64           `json:"id"`
	ProducerID    int64           `json:"producerId"`
	ProducerName  string          `json:"producerName"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	DeclineReason string          `json:"declineReason,omitempty"`
	Categories    []string        `json:"categories"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type PendingGroup struct {
	ProducerID   int64     `json:"producerId"`
	ProducerName string    `json:"producerName"`
	Products     []Product `json:"products"`
}

type AllowedTransitions struct {
	OrderID int64    `json:"orderId"`
	Current string   `json:"current"`
	Allowed []string `json:"allowed"`
}

type JournalEntry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	EntityID   int64     `json:"entityId"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toPage[T, R any](page query.Page[T], convert func(T) R) Page[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return Page[R]{
		Items: items,
		Page: PageDescriptor{
			Index:         page.Page.Index,
			Size:          page.Page.Size,
			TotalElements: page.Page.TotalElements,
			TotalPages:    page.Page.TotalPages,
			First:         page.Page.First,
			Last:          page.Page.Last,
		},
	}
}

func toOrder(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ProductID:   item.ProductID().Int64(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Decimal(),
		})
	}
	return Order{
		ID:           o.ID().Int64(),
		CustomerID:   o.Customer().ID.Int64(),
		CustomerName: o.Customer().Name,
		Items:        items,
		TotalPrice:   o.TotalPrice().Decimal(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toProduct(p *product.Product) Product {
	return Product{
		ID:            p.ID().Int64(),
		ProducerID:    p.Producer().ID.Int64(),
		ProducerName:  p.Producer().Name,
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price().Decimal(),
		Quantity:      p.Quantity(),
		Status:        p.Status().String(),
		DeclineReason: p.DeclineReason().String(),
		Categories:    p.CategoryNames(),
		ImageURL:      p.ImageURL(),
		CreatedAt:     p.CreatedAt(),
	}
}

func toPendingGroup(g product.PendingGroup) PendingGroup {
	products := make([]Product, 0, len(g.Products))
	for _, p := range g.Products {
		products = append(products, toProduct(p))
	}
	return PendingGroup{
		ProducerID:   g.Producer.ID.Int64(),
		ProducerName: g.Producer.Name,
		Products:     products,
	}
}

func toAllowedTransitions(r queries.GetAllowedTransitionsQueryResponse) AllowedTransitions {
	allowed := make([]string, 0, len(r.Allowed))
	for _, s := range r.Allowed {
		allowed = append(allowed, s.String())
	}
	return AllowedTransitions{
		OrderID: r.OrderID.Int64(),
		Current: r.Current.String(),
		Allowed: allowed,
	}
}

func toJournalEntry(e journal.Entry) JournalEntry {
	return JournalEntry{
		ID:         e.ID().String(),
		Kind:       e.Kind().String(),
		EntityID:   e.EntityID().Int64(),
		From:       e.From(),
		To:         e.To(),
		Reason:     e.Reason(),
		OccurredAt: e.OccurredAt(),
	}
}
