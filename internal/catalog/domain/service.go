package domain

import (
	"context"
	"errors"

	"github.com/faktur-app/faktur/pkg/db/pagination"
)

type CreateRequest struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Unit      Unit   `json:"unit"`
}

type UpdateRequest struct {
	ID        string
	Name      *string `json:"name,omitempty"`
	UnitPrice *int64  `json:"unit_price,omitempty"`
	Unit      *Unit   `json:"unit,omitempty"`
}

type ListRequest struct {
	PageToken string
	PageSize  int32
	Name      string
}

type ListResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

// Service manages the product catalog.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Product, error)
	Update(ctx context.Context, req UpdateRequest) (Product, error)
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID        = errors.New("invalid_product_id")
	ErrNotFound         = errors.New("product_not_found")
	ErrInvalidName      = errors.New("invalid_product_name")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
	ErrInvalidUnit      = errors.New("invalid_unit")
)
