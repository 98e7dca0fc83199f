// Package domain contains the product catalog models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Unit is the sales unit a product is priced in.
type Unit string

const (
	UnitPcs   Unit = "pcs"
	UnitBoxes Unit = "boxes"
)

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool {
	return u == UnitPcs || u == UnitBoxes
}

// Product is a catalog entry. Invoices reference products by ID but
// snapshot the name and unit price at add time, so editing or deleting
// a product never rewrites existing invoices.
type Product struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	UnitPrice int64        `gorm:"not null" json:"unit_price"`
	Unit      Unit         `gorm:"type:text;not null;default:'pcs'" json:"unit"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
