package domain

import (
	"context"
	"errors"
	"time"

	"github.com/faktur-app/faktur/pkg/db/pagination"
)

// LineItemInput is one item row supplied by the caller. Aggregates are
// recomputed server-side; client-supplied totals are ignored.
type LineItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type SaveInvoiceRequest struct {
	Number            string
	CustomerID        string
	Items             []LineItemInput
	TaxPercent        float64
	DiscountValue     int64
	UnderpaymentValue int64
	InvoiceDate       time.Time
	DueDate           time.Time
	Notes             string
}

type UpdateInvoiceRequest struct {
	ID string
	SaveInvoiceRequest
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int32
	Status    string
	Customer  string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// Service manages invoice persistence, derived aggregates and document
// rendering.
type Service interface {
	Create(ctx context.Context, req SaveInvoiceRequest) (Invoice, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) (Invoice, error)
	Delete(ctx context.Context, id string) error

	// RenderPDF and RenderImage are all-or-nothing: a missing invoice
	// fails with ErrInvoiceNotFound and produces no output.
	RenderPDF(ctx context.Context, id string) ([]byte, error)
	RenderImage(ctx context.Context, id string) ([]byte, error)
}

var (
	ErrInvalidID          = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
	ErrInvalidNumber      = errors.New("invalid_invoice_number")
	ErrDuplicateNumber    = errors.New("duplicate_invoice_number")
	ErrInvalidCustomer    = errors.New("invalid_customer")
	ErrCustomerNotFound   = errors.New("customer_not_found")
	ErrInvalidProduct     = errors.New("invalid_product")
	ErrProductNotFound    = errors.New("product_not_found")
	ErrNoLineItems        = errors.New("at_least_one_item_required")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrInvalidItemIndex   = errors.New("invalid_item_index")
	ErrInvalidTaxPercent  = errors.New("invalid_tax_percent")
	ErrInvalidDiscount    = errors.New("invalid_discount")
	ErrInvalidUnderpay    = errors.New("invalid_underpayment")
	ErrInvalidDueDate     = errors.New("due_date_before_invoice_date")
	ErrInvalidInvoiceDate = errors.New("invalid_invoice_date")
	ErrInvalidStatus      = errors.New("invalid_status")
)
