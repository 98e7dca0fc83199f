package sheetstore

import "testing"

func TestDecodeAcceptsValidRows(t *testing.T) {
	records := [][]string{
		{"Name", "unit_price", "unit"},
		{"Steel Pipe", "1000000", "pcs"},
		{"Cement Bag", "85000", ""},
	}

	rows, errs := productSchema.decode(records)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["name"] != "Steel Pipe" || rowInt(rows[0], "unit_price") != 1000000 {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["unit"] != "" {
		t.Errorf("optional empty field should stay empty, got %q", rows[1]["unit"])
	}
}

func TestDecodeRejectsMissingColumn(t *testing.T) {
	records := [][]string{
		{"name", "unit"},
		{"Steel Pipe", "pcs"},
	}

	rows, errs := productSchema.decode(records)
	if rows != nil {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if len(errs) != 1 || errs[0].Code != "missing_column" || errs[0].Field != "unit_price" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestDecodeRejectsMalformedRows(t *testing.T) {
	records := [][]string{
		{"name", "unit_price", "unit"},
		{"", "1000", "pcs"},
		{"Cement Bag", "cheap", ""},
	}

	rows, errs := productSchema.decode(records)
	if rows != nil {
		t.Fatalf("all-or-nothing: expected no rows, got %d", len(rows))
	}
	if len(errs) != 2 {
		t.Fatalf("errs = %v, want 2", errs)
	}
	if errs[0].Row != 2 || errs[0].Code != "required" {
		t.Errorf("first error = %+v", errs[0])
	}
	if errs[1].Row != 3 || errs[1].Code != "not_a_number" {
		t.Errorf("second error = %+v", errs[1])
	}
}

func TestDecodeRejectsEmptySheet(t *testing.T) {
	rows, errs := customerSchema.decode(nil)
	if rows != nil || len(errs) != 1 || errs[0].Code != "empty_sheet" {
		t.Fatalf("rows=%v errs=%v", rows, errs)
	}
}

func TestDecodeShortRecord(t *testing.T) {
	records := [][]string{
		{"name", "email", "address", "phone"},
		{"PT Maju Jaya"},
	}

	rows, errs := customerSchema.decode(records)
	if len(errs) != 0 {
		t.Fatalf("short record with optional tail should pass, got %v", errs)
	}
	if rows[0]["name"] != "PT Maju Jaya" || rows[0]["email"] != "" {
		t.Errorf("row = %v", rows[0])
	}
}
