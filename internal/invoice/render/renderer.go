// Package render produces the PDF and image documents for an invoice.
//
// Both renderers consume the same RenderInput and the same formatting
// functions, so a number shown on one surface is character-for-character
// identical on the other.
package render

import "time"

// RenderInput is the deterministic input for document rendering. The
// service assembles it from already validated records; renderers perform
// no lookups and no recomputation.
type RenderInput struct {
	Company  CompanyView
	Customer CustomerView
	Invoice  InvoiceView
	Items    []LineItemView
}

// CompanyView is the issuing company identity.
type CompanyView struct {
	Name     string
	Address  string
	LogoURL  string
	Currency string
	Language string
}

// CustomerView is the billed party. Resolved is false when the customer
// record no longer exists; renderers then show a placeholder.
type CustomerView struct {
	Name     string
	Email    string
	Address  string
	Phone    string
	Resolved bool
}

// InvoiceView carries the invoice fields and precomputed aggregates.
type InvoiceView struct {
	Number            string
	Status            string
	InvoiceDate       time.Time
	DueDate           time.Time
	Subtotal          int64
	TaxPercent        float64
	TaxAmount         int64
	DiscountValue     int64
	UnderpaymentValue int64
	Total             int64
	Notes             string
}

type LineItemView struct {
	Name      string
	Quantity  int64
	UnitPrice int64
	Total     int64
}

// PDFRenderer lays out a fixed-geometry single-page document.
type PDFRenderer interface {
	RenderPDF(input RenderInput) ([]byte, error)
}

// ImageRenderer produces a box-layout visual summary as markup.
type ImageRenderer interface {
	RenderImage(input RenderInput) ([]byte, error)
}
