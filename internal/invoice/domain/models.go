// Package domain contains persistence models and core calculations for invoicing.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// InvoiceStatus represents invoice payment states. Transitions are set
// explicitly by the caller, never derived.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "Unpaid"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

// Valid reports whether the status is one of the known states.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// ParseStatus matches a status string case-insensitively.
func ParseStatus(value string) (InvoiceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "unpaid":
		return InvoiceStatusUnpaid, true
	case "paid":
		return InvoiceStatusPaid, true
	case "overdue":
		return InvoiceStatusOverdue, true
	}
	return "", false
}

// Invoice represents a persisted invoice. Monetary fields are whole
// currency units. The invoice owns its line items: saving an invoice
// replaces the item rows wholesale.
type Invoice struct {
	ID                snowflake.ID  `gorm:"primaryKey" json:"id"`
	Number            string        `gorm:"type:text;not null;uniqueIndex" json:"invoice_number"`
	CustomerID        snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	Items             []LineItem    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"line_items"`
	Subtotal          int64         `gorm:"not null;default:0" json:"subtotal"`
	TaxPercent        float64       `gorm:"not null;default:0" json:"tax_percent"`
	TaxAmount         int64         `gorm:"not null;default:0" json:"tax_amount"`
	DiscountValue     int64         `gorm:"not null;default:0" json:"discount_value"`
	UnderpaymentValue int64         `gorm:"not null;default:0" json:"underpayment_value"`
	Total             int64         `gorm:"not null;default:0" json:"total"`
	Status            InvoiceStatus `gorm:"type:text;not null;default:'Unpaid'" json:"status"`
	InvoiceDate       time.Time     `gorm:"not null" json:"invoice_date"`
	DueDate           time.Time     `gorm:"not null" json:"due_date"`
	Notes             string        `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// LineItem represents one product row on an invoice. The product name and
// unit price are snapshots taken when the item was added; Total is always
// UnitPrice * Quantity and is never edited independently.
type LineItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"index" json:"invoice_id"`
	ProductID snowflake.ID `gorm:"not null;index" json:"product_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Quantity  int64        `gorm:"not null" json:"quantity"`
	UnitPrice int64        `gorm:"not null" json:"unit_price"`
	Total     int64        `gorm:"not null" json:"total"`
	Position  int          `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "invoice_items" }
