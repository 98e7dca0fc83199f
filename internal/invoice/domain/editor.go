package domain

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Editor maintains the ordered line-item list for one invoice editing
// session. Entries are keyed by a generated entry ID rather than the
// product ID, though the current add policy merges rows per product.
// It holds no reference to storage; persisting the result is the
// caller's job.
type Editor struct {
	genID *snowflake.Node
	items []LineItem
}

// NewEditor creates an editor seeded with existing items, e.g. when an
// already persisted invoice is reopened for editing.
func NewEditor(genID *snowflake.Node, existing []LineItem) *Editor {
	items := make([]LineItem, len(existing))
	copy(items, existing)
	return &Editor{genID: genID, items: items}
}

// Items returns a copy of the current item list in order.
func (e *Editor) Items() []LineItem {
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// Len returns the number of item rows.
func (e *Editor) Len() int { return len(e.items) }

// AddOrMergeItem appends a row for the product, or, when a row for the
// same product already exists, merges into it: the quantity is
// incremented by the new quantity and the newly supplied unit price wins.
// The row total is recomputed either way.
func (e *Editor) AddOrMergeItem(productID snowflake.ID, name string, quantity, unitPrice int64) error {
	if productID == 0 {
		return ErrInvalidProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return ErrInvalidUnitPrice
	}

	for i := range e.items {
		if e.items[i].ProductID == productID {
			e.items[i].Quantity += quantity
			e.items[i].UnitPrice = unitPrice
			e.items[i].Total = unitPrice * e.items[i].Quantity
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				e.items[i].Name = trimmed
			}
			return nil
		}
	}

	e.items = append(e.items, LineItem{
		ID:        e.genID.Generate(),
		ProductID: productID,
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice * quantity,
		Position:  len(e.items),
	})
	return nil
}

// UpdateQuantity sets the quantity of the row at idx and recomputes its
// total. Quantities below one are rejected and the list is left unchanged.
func (e *Editor) UpdateQuantity(idx int, quantity int64) error {
	if idx < 0 || idx >= len(e.items) {
		return ErrInvalidItemIndex
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	e.items[idx].Quantity = quantity
	e.items[idx].Total = e.items[idx].UnitPrice * quantity
	return nil
}

// UpdateUnitPrice sets the unit price of the row at idx and recomputes its
// total. Negative prices are rejected and the list is left unchanged.
func (e *Editor) UpdateUnitPrice(idx int, unitPrice int64) error {
	if idx < 0 || idx >= len(e.items) {
		return ErrInvalidItemIndex
	}
	if unitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	e.items[idx].UnitPrice = unitPrice
	e.items[idx].Total = unitPrice * e.items[idx].Quantity
	return nil
}

// RemoveItem drops the row at idx and reindexes the remaining positions.
func (e *Editor) RemoveItem(idx int) error {
	if idx < 0 || idx >= len(e.items) {
		return ErrInvalidItemIndex
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	for i := range e.items {
		e.items[i].Position = i
	}
	return nil
}
