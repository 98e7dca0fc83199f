package domain

import (
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
)

func newTestEditor(t *testing.T, existing []LineItem) *Editor {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	return NewEditor(node, existing)
}

func TestAddOrMergeItemMergesByProduct(t *testing.T) {
	e := newTestEditor(t, nil)
	product := snowflake.ID(42)

	if err := e.AddOrMergeItem(product, "Widget", 2, 100); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := e.AddOrMergeItem(product, "Widget", 3, 120); err != nil {
		t.Fatalf("merge item: %v", err)
	}

	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item after merge, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if items[0].UnitPrice != 120 {
		t.Fatalf("expected latest unit price 120, got %d", items[0].UnitPrice)
	}
	if items[0].Total != 600 {
		t.Fatalf("expected total 600, got %d", items[0].Total)
	}
}

func TestAddOrMergeItemAppendsDistinctProducts(t *testing.T) {
	e := newTestEditor(t, nil)

	if err := e.AddOrMergeItem(1, "Alpha", 1, 500); err != nil {
		t.Fatalf("add alpha: %v", err)
	}
	if err := e.AddOrMergeItem(2, "Beta", 2, 250); err != nil {
		t.Fatalf("add beta: %v", err)
	}

	items := e.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Alpha" || items[1].Name != "Beta" {
		t.Fatalf("expected insertion order preserved, got %q then %q", items[0].Name, items[1].Name)
	}
	if items[0].ID == items[1].ID {
		t.Fatalf("expected distinct entry ids")
	}
	if items[1].Position != 1 {
		t.Fatalf("expected position 1, got %d", items[1].Position)
	}
}

func TestAddOrMergeItemValidation(t *testing.T) {
	e := newTestEditor(t, nil)

	if err := e.AddOrMergeItem(0, "Ghost", 1, 10); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
	if err := e.AddOrMergeItem(1, "Widget", 0, 10); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := e.AddOrMergeItem(1, "Widget", 1, -10); !errors.Is(err, ErrInvalidUnitPrice) {
		t.Fatalf("expected ErrInvalidUnitPrice, got %v", err)
	}
	if e.Len() != 0 {
		t.Fatalf("expected list unchanged, got %d items", e.Len())
	}
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	e := newTestEditor(t, nil)
	if err := e.AddOrMergeItem(7, "Widget", 1, 250); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := e.UpdateQuantity(0, 4); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := e.Items()[0].Total; got != 1000 {
		t.Fatalf("expected total 1000, got %d", got)
	}
}

func TestUpdateQuantityRejectsZeroAndKeepsList(t *testing.T) {
	e := newTestEditor(t, nil)
	if err := e.AddOrMergeItem(7, "Widget", 3, 250); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := e.UpdateQuantity(0, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	item := e.Items()[0]
	if item.Quantity != 3 || item.Total != 750 {
		t.Fatalf("expected item untouched, got qty=%d total=%d", item.Quantity, item.Total)
	}
}

func TestUpdateUnitPrice(t *testing.T) {
	e := newTestEditor(t, nil)
	if err := e.AddOrMergeItem(7, "Widget", 2, 250); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := e.UpdateUnitPrice(0, 300); err != nil {
		t.Fatalf("update unit price: %v", err)
	}
	if got := e.Items()[0].Total; got != 600 {
		t.Fatalf("expected total 600, got %d", got)
	}
	if err := e.UpdateUnitPrice(0, -1); !errors.Is(err, ErrInvalidUnitPrice) {
		t.Fatalf("expected ErrInvalidUnitPrice, got %v", err)
	}
	if err := e.UpdateUnitPrice(5, 100); !errors.Is(err, ErrInvalidItemIndex) {
		t.Fatalf("expected ErrInvalidItemIndex, got %v", err)
	}
}

func TestRemoveItemReindexes(t *testing.T) {
	e := newTestEditor(t, nil)
	for i, name := range []string{"A", "B", "C"} {
		if err := e.AddOrMergeItem(snowflake.ID(i+1), name, 1, 100); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	if err := e.RemoveItem(1); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	items := e.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "A" || items[1].Name != "C" {
		t.Fatalf("expected A then C, got %q then %q", items[0].Name, items[1].Name)
	}
	if items[1].Position != 1 {
		t.Fatalf("expected position reindexed to 1, got %d", items[1].Position)
	}
	if err := e.RemoveItem(9); !errors.Is(err, ErrInvalidItemIndex) {
		t.Fatalf("expected ErrInvalidItemIndex, got %v", err)
	}
}

func TestEditorSeededFromExistingItems(t *testing.T) {
	existing := []LineItem{
		{ID: 100, ProductID: 9, Name: "Legacy", Quantity: 2, UnitPrice: 50, Total: 100},
	}
	e := newTestEditor(t, existing)

	if err := e.AddOrMergeItem(9, "Legacy", 1, 60); err != nil {
		t.Fatalf("merge into existing: %v", err)
	}
	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("expected merge into seeded row, got %d rows", len(items))
	}
	if items[0].Quantity != 3 || items[0].UnitPrice != 60 || items[0].Total != 180 {
		t.Fatalf("unexpected merged row: %+v", items[0])
	}
	// seeding copies the slice; the caller's slice must not change
	if existing[0].Quantity != 2 {
		t.Fatalf("expected caller slice untouched, got qty %d", existing[0].Quantity)
	}
}
