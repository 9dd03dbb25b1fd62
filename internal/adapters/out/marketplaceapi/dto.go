package marketplaceapi

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"

	"github.com/shopspring/decimal"
)

// OrderDTO is the marketplace's order record.
type OrderDTO struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Items        []OrderItemDTO  `json:"items"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type OrderItemDTO struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type ProducerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductDTO is the marketplace's product record.
type ProductDTO struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	DeclineReason *string         `json:"declineReason"`
	ImageURL      string          `json:"imageUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
	Producer      ProducerDTO     `json:"producer"`
	Categories    []CategoryDTO   `json:"categories"`
}

type PendingGroupDTO struct {
	Producer ProducerDTO  `json:"producer"`
	Products []ProductDTO `json:"products"`
}

// PageDTO is the Spring Data page envelope.
type PageDTO[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

type declineRequest struct {
	Reason string `json:"reason"`
}

type errorDTO struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func orderToDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		price, priceErr := kernel.NewMoney(i.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(kernel.ID(i.ProductID), i.ProductName, i.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		kernel.ID(dto.ID),
		order.Customer{ID: kernel.ID(dto.CustomerID), Name: dto.CustomerName},
		items,
		total,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func productToDomain(dto ProductDTO) (*product.Product, error) {
	status, err := product.ParseModerationStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	moderation := product.Moderation{Status: status}
	if dto.DeclineReason != nil && status == product.Declined {
		moderation.Reason = product.DeclineReason(*dto.DeclineReason)
	}

	categories := make([]product.Category, 0, len(dto.Categories))
	for _, c := range dto.Categories {
		categories = append(categories, product.Category{ID: kernel.ID(c.ID), Name: c.Name})
	}

	return product.RestoreProduct(
		kernel.ID(dto.ID),
		product.Producer{ID: kernel.ID(dto.Producer.ID), Name: dto.Producer.Name},
		product.Details{
			Name:        dto.Name,
			Description: dto.Description,
			Price:       price,
			Quantity:    dto.Quantity,
		},
		moderation,
		categories,
		dto.ImageURL,
		dto.CreatedAt,
	)
}

// groupsToDomain maps the groups and regroups their products, so that a group
// whose products are no longer pending never reaches the caller.
func groupsToDomain(dtos []PendingGroupDTO) ([]product.PendingGroup, error) {
	products := make([]*product.Product, 0)
	for _, g := range dtos {
		for _, p := range g.Products {
			if p.Producer.ID == 0 {
				p.Producer = g.Producer
			}
			mapped, err := productToDomain(p)
			if err != nil {
				return nil, fmt.Errorf("product %d of producer %d: %w", p.ID, g.Producer.ID, err)
			}
			products = append(products, mapped)
		}
	}
	return product.Regroup(products), nil
}

func pageDescriptor[T any](dto PageDTO[T]) query.PageDescriptor {
	return query.PageDescriptor{
		Index:         dto.Number,
		Size:          dto.Size,
		TotalElements: dto.TotalElements,
		TotalPages:    dto.TotalPages,
		First:         dto.First,
		Last:          dto.Last,
	}
}

func mapAll[D any, T any](dtos []D, fn func(D) (T, error)) ([]T, error) {
	out := make([]T, 0, len(dtos))
	var errList []error
	for _, dto := range dtos {
		item, err := fn(dto)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		out = append(out, item)
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return out, nil
}
