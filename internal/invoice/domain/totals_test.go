package domain

import (
	"errors"
	"testing"
)

func TestComputeTotalsScenario(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 5000000, Quantity: 1, Total: 5000000},
		{UnitPrice: 2500000, Quantity: 2, Total: 5000000},
	}

	totals, err := ComputeTotals(items, 11, 500000, 0)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Subtotal != 10000000 {
		t.Fatalf("expected subtotal 10000000, got %d", totals.Subtotal)
	}
	if totals.TaxAmount != 1100000 {
		t.Fatalf("expected tax 1100000, got %d", totals.TaxAmount)
	}
	if totals.Total != 10600000 {
		t.Fatalf("expected total 10600000, got %d", totals.Total)
	}
}

func TestComputeTotalsSubtotalIsItemSum(t *testing.T) {
	items := []LineItem{
		{Total: 120},
		{Total: 5},
		{Total: 875},
	}
	totals, err := ComputeTotals(items, 0, 0, 0)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Subtotal != 1000 {
		t.Fatalf("expected subtotal 1000, got %d", totals.Subtotal)
	}
	if totals.Total != 1000 {
		t.Fatalf("expected total 1000, got %d", totals.Total)
	}
}

func TestComputeTotalsRoundsTaxToWholeUnit(t *testing.T) {
	// 333 * 11% = 36.63 -> 37
	totals, err := ComputeTotals([]LineItem{{Total: 333}}, 11, 0, 0)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.TaxAmount != 37 {
		t.Fatalf("expected tax 37, got %d", totals.TaxAmount)
	}
	// 150 * 1% = 1.5 -> 2 (half rounds away from zero)
	totals, err = ComputeTotals([]LineItem{{Total: 150}}, 1, 0, 0)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.TaxAmount != 2 {
		t.Fatalf("expected tax 2, got %d", totals.TaxAmount)
	}
}

func TestComputeTotalsUnderpaymentAdds(t *testing.T) {
	totals, err := ComputeTotals([]LineItem{{Total: 1000}}, 0, 200, 300)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Total != 1100 {
		t.Fatalf("expected total 1100, got %d", totals.Total)
	}
}

func TestComputeTotalsDiscountMayGoNegative(t *testing.T) {
	totals, err := ComputeTotals([]LineItem{{Total: 100}}, 0, 500, 0)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Total != -400 {
		t.Fatalf("expected total -400, got %d", totals.Total)
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 750, Quantity: 4, Total: 3000},
		{UnitPrice: 99, Quantity: 1, Total: 99},
	}
	first, err := ComputeTotals(items, 7.5, 100, 50)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	second, err := ComputeTotals(items, 7.5, 100, 50)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestComputeTotalsRejectsOutOfRangeInputs(t *testing.T) {
	if _, err := ComputeTotals(nil, -1, 0, 0); !errors.Is(err, ErrInvalidTaxPercent) {
		t.Fatalf("expected ErrInvalidTaxPercent, got %v", err)
	}
	if _, err := ComputeTotals(nil, 101, 0, 0); !errors.Is(err, ErrInvalidTaxPercent) {
		t.Fatalf("expected ErrInvalidTaxPercent, got %v", err)
	}
	if _, err := ComputeTotals(nil, 10, -1, 0); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("expected ErrInvalidDiscount, got %v", err)
	}
	if _, err := ComputeTotals(nil, 10, 0, -1); !errors.Is(err, ErrInvalidUnderpay) {
		t.Fatalf("expected ErrInvalidUnderpay, got %v", err)
	}
}

func TestComputeTotalsEmptyList(t *testing.T) {
	totals, err := ComputeTotals(nil, 11, 0, 0)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if totals.Subtotal != 0 || totals.TaxAmount != 0 || totals.Total != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
