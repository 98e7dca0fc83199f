// Package sheetstore moves catalog and invoice data in and out of
// spreadsheet-shaped CSV files. Rows pass through an explicit schema;
// a file with missing or malformed fields is rejected before any row
// is applied.
package sheetstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSheet = errors.New("invalid_sheet")

// RowError pins a validation failure to a row and field. Row numbers
// are 1-based and include the header row, matching what a user sees in
// a spreadsheet.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Field, e.Message)
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindInt
	kindEmail
)

// column describes one sheet field. The checks mirror what the target
// service rejects at create time, so a decoded sheet imports cleanly or
// not at all.
type column struct {
	name        string
	required    bool
	kind        fieldKind
	nonNegative bool
	allowed     []string
}

type schema struct {
	columns []column
}

// decode validates the header and every row, returning one string map
// per data row. Any error means no rows are returned: imports are
// all-or-nothing.
func (s schema) decode(records [][]string) ([]map[string]string, []RowError) {
	if len(records) == 0 {
		return nil, []RowError{{Row: 1, Field: "", Code: "empty_sheet", Message: "sheet has no header row"}}
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var errs []RowError
	for _, col := range s.columns {
		if _, ok := index[col.name]; !ok {
			errs = append(errs, RowError{
				Row:     1,
				Field:   col.name,
				Code:    "missing_column",
				Message: "column " + col.name + " not found in header",
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2
		row := make(map[string]string, len(s.columns))
		for _, col := range s.columns {
			pos := index[col.name]
			value := ""
			if pos < len(record) {
				value = strings.TrimSpace(record[pos])
			}
			if value == "" && col.required {
				errs = append(errs, RowError{
					Row:     rowNum,
					Field:   col.name,
					Code:    "required",
					Message: col.name + " is required",
				})
				continue
			}
			if value != "" && col.kind == kindInt {
				parsed, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					errs = append(errs, RowError{
						Row:     rowNum,
						Field:   col.name,
						Code:    "not_a_number",
						Message: col.name + " must be a whole number",
					})
					continue
				}
				if col.nonNegative && parsed < 0 {
					errs = append(errs, RowError{
						Row:     rowNum,
						Field:   col.name,
						Code:    "negative_number",
						Message: col.name + " must not be negative",
					})
					continue
				}
			}
			if value != "" && col.kind == kindEmail && !strings.Contains(value, "@") {
				errs = append(errs, RowError{
					Row:     rowNum,
					Field:   col.name,
					Code:    "invalid_email",
					Message: col.name + " must be an email address",
				})
				continue
			}
			if value != "" && len(col.allowed) > 0 && !allowedValue(col.allowed, value) {
				errs = append(errs, RowError{
					Row:     rowNum,
					Field:   col.name,
					Code:    "invalid_value",
					Message: col.name + " must be one of " + strings.Join(col.allowed, ", "),
				})
				continue
			}
			row[col.name] = value
		}
		rows = append(rows, row)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return rows, nil
}

func allowedValue(allowed []string, value string) bool {
	for _, entry := range allowed {
		if value == entry {
			return true
		}
	}
	return false
}

func rowInt(row map[string]string, name string) int64 {
	value, err := strconv.ParseInt(row[name], 10, 64)
	if err != nil {
		return 0
	}
	return value
}
