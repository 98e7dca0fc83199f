package sheetstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	invoicedomain "github.com/faktur-app/faktur/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	productSchema = schema{columns: []column{
		{name: "name", required: true, kind: kindText},
		{name: "unit_price", required: true, kind: kindInt, nonNegative: true},
		{name: "unit", required: false, kind: kindText, allowed: []string{string(catalogdomain.UnitPcs), string(catalogdomain.UnitBoxes)}},
	}}
	customerSchema = schema{columns: []column{
		{name: "name", required: true, kind: kindText},
		{name: "email", required: false, kind: kindEmail},
		{name: "address", required: false, kind: kindText},
		{name: "phone", required: false, kind: kindText},
	}}
)

// ImportResult reports what an accepted import created.
type ImportResult struct {
	Created int `json:"created"`
}

// Service imports products and customers from CSV sheets and exports
// the current data back out. Rejected sheets apply nothing.
type Service interface {
	ImportProducts(ctx context.Context, sheet []byte) (ImportResult, []RowError, error)
	ImportCustomers(ctx context.Context, sheet []byte) (ImportResult, []RowError, error)
	ExportProducts(ctx context.Context) ([]byte, error)
	ExportCustomers(ctx context.Context) ([]byte, error)
	ExportInvoices(ctx context.Context) ([]byte, error)
}

type ServiceParam struct {
	fx.In

	Log         *zap.Logger
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
	InvoiceSvc  invoicedomain.Service
}

type service struct {
	log         *zap.Logger
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	invoiceSvc  invoicedomain.Service
}

func NewService(p ServiceParam) Service {
	return &service{
		log:         p.Log.Named("sheetstore.service"),
		catalogSvc:  p.CatalogSvc,
		customerSvc: p.CustomerSvc,
		invoiceSvc:  p.InvoiceSvc,
	}
}

func (s *service) ImportProducts(ctx context.Context, sheet []byte) (ImportResult, []RowError, error) {
	rows, rowErrs, err := parseSheet(sheet, productSchema)
	if err != nil || len(rowErrs) > 0 {
		return ImportResult{}, rowErrs, err
	}

	created := 0
	for i, row := range rows {
		unit := catalogdomain.Unit(row["unit"])
		if row["unit"] == "" {
			unit = catalogdomain.UnitPcs
		}
		if _, err := s.catalogSvc.Create(ctx, catalogdomain.CreateRequest{
			Name:      row["name"],
			UnitPrice: rowInt(row, "unit_price"),
			Unit:      unit,
		}); err != nil {
			return ImportResult{}, []RowError{{
				Row:     i + 2,
				Field:   "",
				Code:    "rejected",
				Message: err.Error(),
			}}, nil
		}
		created++
	}

	s.log.Info("products imported", zap.Int("created", created))
	return ImportResult{Created: created}, nil, nil
}

func (s *service) ImportCustomers(ctx context.Context, sheet []byte) (ImportResult, []RowError, error) {
	rows, rowErrs, err := parseSheet(sheet, customerSchema)
	if err != nil || len(rowErrs) > 0 {
		return ImportResult{}, rowErrs, err
	}

	created := 0
	for i, row := range rows {
		if _, err := s.customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{
			Name:    row["name"],
			Email:   row["email"],
			Address: row["address"],
			Phone:   row["phone"],
		}); err != nil {
			return ImportResult{}, []RowError{{
				Row:     i + 2,
				Field:   "",
				Code:    "rejected",
				Message: err.Error(),
			}}, nil
		}
		created++
	}

	s.log.Info("customers imported", zap.Int("created", created))
	return ImportResult{Created: created}, nil, nil
}

func (s *service) ExportProducts(ctx context.Context) ([]byte, error) {
	var out [][]string
	out = append(out, []string{"id", "name", "unit_price", "unit"})

	pageToken := ""
	for {
		resp, err := s.catalogSvc.List(ctx, catalogdomain.ListRequest{PageToken: pageToken, PageSize: 200})
		if err != nil {
			return nil, err
		}
		for _, product := range resp.Products {
			out = append(out, []string{
				product.ID.String(),
				product.Name,
				strconv.FormatInt(product.UnitPrice, 10),
				string(product.Unit),
			})
		}
		if !resp.HasMore {
			break
		}
		pageToken = resp.NextPageToken
	}
	return writeSheet(out)
}

func (s *service) ExportCustomers(ctx context.Context) ([]byte, error) {
	var out [][]string
	out = append(out, []string{"id", "name", "email", "address", "phone"})

	pageToken := ""
	for {
		resp, err := s.customerSvc.List(ctx, customerdomain.ListCustomerRequest{PageToken: pageToken, PageSize: 200})
		if err != nil {
			return nil, err
		}
		for _, customer := range resp.Customers {
			out = append(out, []string{
				customer.ID.String(),
				customer.Name,
				customer.Email,
				customer.Address,
				customer.Phone,
			})
		}
		if !resp.HasMore {
			break
		}
		pageToken = resp.NextPageToken
	}
	return writeSheet(out)
}

func (s *service) ExportInvoices(ctx context.Context) ([]byte, error) {
	var out [][]string
	out = append(out, []string{
		"id", "number", "customer_id", "status",
		"invoice_date", "due_date",
		"subtotal", "tax_percent", "tax_amount", "discount", "underpayment", "total",
	})

	pageToken := ""
	for {
		resp, err := s.invoiceSvc.List(ctx, invoicedomain.ListInvoiceRequest{PageToken: pageToken, PageSize: 200})
		if err != nil {
			return nil, err
		}
		for _, invoice := range resp.Invoices {
			out = append(out, []string{
				invoice.ID.String(),
				invoice.Number,
				invoice.CustomerID.String(),
				string(invoice.Status),
				invoice.InvoiceDate.Format(time.DateOnly),
				invoice.DueDate.Format(time.DateOnly),
				strconv.FormatInt(invoice.Subtotal, 10),
				strconv.FormatFloat(invoice.TaxPercent, 'f', -1, 64),
				strconv.FormatInt(invoice.TaxAmount, 10),
				strconv.FormatInt(invoice.DiscountValue, 10),
				strconv.FormatInt(invoice.UnderpaymentValue, 10),
				strconv.FormatInt(invoice.Total, 10),
			})
		}
		if !resp.HasMore {
			break
		}
		pageToken = resp.NextPageToken
	}
	return writeSheet(out)
}

func parseSheet(sheet []byte, s schema) ([]map[string]string, []RowError, error) {
	reader := csv.NewReader(bytes.NewReader(sheet))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSheet, err)
	}
	rows, rowErrs := s.decode(records)
	return rows, rowErrs, nil
}

func writeSheet(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
