package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/faktur-app/faktur/internal/cache"
	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	catalogservice "github.com/faktur-app/faktur/internal/catalog/service"
	"github.com/faktur-app/faktur/internal/clock"
	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	companyservice "github.com/faktur-app/faktur/internal/company/service"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	customerservice "github.com/faktur-app/faktur/internal/customer/service"
	"github.com/faktur-app/faktur/internal/invoice/domain"
	"github.com/faktur-app/faktur/internal/invoice/render"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	genID    *snowflake.Node
	customer customerdomain.Customer
	product  catalogdomain.Product
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Invoice{},
		&domain.LineItem{},
		&catalogdomain.Product{},
		&customerdomain.Customer{},
		&companydomain.Profile{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	genID, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()

	fixedClock := clock.FixedClock{Instant: time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)}
	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{DB: db, Log: log, GenID: genID, Clock: fixedClock})
	customerSvc := customerservice.NewService(customerservice.ServiceParam{DB: db, Log: log, GenID: genID, Clock: fixedClock})
	companySvc := companyservice.NewService(companyservice.ServiceParam{DB: db, Log: log, Clock: fixedClock})

	svc := &Service{
		db:           db,
		log:          log,
		genID:        genID,
		clock:        fixedClock,
		catalogSvc:   catalogSvc,
		customerSvc:  customerSvc,
		companySvc:   companySvc,
		pdf:          render.NewPDFRenderer(),
		image:        render.NewImageRenderer(),
		productCache: cache.NewTTLCache[string, catalogdomain.Product](),
	}

	ctx := context.Background()
	customer, err := customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:    "PT Maju Jaya",
		Email:   "billing@majujaya.co.id",
		Address: "Jl. Sudirman No. 10\nJakarta",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product, err := catalogSvc.Create(ctx, catalogdomain.CreateRequest{
		Name:      "Steel Pipe 2in",
		UnitPrice: 1000000,
		Unit:      catalogdomain.UnitPcs,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(&companydomain.Profile{
		ID:       genID.Generate(),
		Name:     "PT Sinar Abadi",
		Address:  "Jl. Industri Raya No. 5, Bekasi",
		Currency: "Rp",
		Language: "id",
	}).Error; err != nil {
		t.Fatalf("seed company profile: %v", err)
	}

	return &fixture{svc: svc, db: db, genID: genID, customer: customer, product: product}
}

func (f *fixture) saveRequest(t *testing.T, number string) domain.SaveInvoiceRequest {
	t.Helper()
	return domain.SaveInvoiceRequest{
		Number:     number,
		CustomerID: f.customer.ID.String(),
		Items: []domain.LineItemInput{
			{ProductID: f.product.ID.String(), Quantity: 10, UnitPrice: 1000000},
		},
		TaxPercent:  11,
		InvoiceDate: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, time.August, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateComputesAggregates(t *testing.T) {
	f := setupFixture(t)

	req := f.saveRequest(t, "INV-2024-001")
	req.DiscountValue = 500000

	inv, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.Subtotal != 10000000 {
		t.Errorf("subtotal = %d, want 10000000", inv.Subtotal)
	}
	if inv.TaxAmount != 1100000 {
		t.Errorf("tax amount = %d, want 1100000", inv.TaxAmount)
	}
	if inv.Total != 10600000 {
		t.Errorf("total = %d, want 10600000", inv.Total)
	}
	if inv.Status != domain.InvoiceStatusUnpaid {
		t.Errorf("status = %q, want unpaid", inv.Status)
	}

	stored, err := f.svc.GetByID(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(stored.Items))
	}
	if stored.Items[0].Name != "Steel Pipe 2in" {
		t.Errorf("item name = %q, want product name snapshot", stored.Items[0].Name)
	}
	if stored.Items[0].Total != 10000000 {
		t.Errorf("item total = %d, want 10000000", stored.Items[0].Total)
	}
}

func TestCreateAppliesDiscountAndUnderpayment(t *testing.T) {
	f := setupFixture(t)

	req := f.saveRequest(t, "INV-2024-002")
	req.DiscountValue = 750000
	req.UnderpaymentValue = 250000

	inv, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := int64(10000000 + 1100000 - 750000 + 250000)
	if inv.Total != want {
		t.Errorf("total = %d, want %d", inv.Total, want)
	}
}

func TestCreateMergesDuplicateProductRows(t *testing.T) {
	f := setupFixture(t)

	req := f.saveRequest(t, "INV-2024-003")
	req.Items = []domain.LineItemInput{
		{ProductID: f.product.ID.String(), Quantity: 2, UnitPrice: 100},
		{ProductID: f.product.ID.String(), Quantity: 3, UnitPrice: 120},
	}
	req.TaxPercent = 0

	inv, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("items = %d, want 1 merged row", len(inv.Items))
	}
	item := inv.Items[0]
	if item.Quantity != 5 || item.UnitPrice != 120 || item.Total != 600 {
		t.Errorf("merged row = qty %d price %d total %d, want 5/120/600",
			item.Quantity, item.UnitPrice, item.Total)
	}
}

func TestCreateValidation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(req *domain.SaveInvoiceRequest)
		wantErr error
	}{
		{
			name:    "empty number",
			mutate:  func(req *domain.SaveInvoiceRequest) { req.Number = "  " },
			wantErr: domain.ErrInvalidNumber,
		},
		{
			name:    "no items",
			mutate:  func(req *domain.SaveInvoiceRequest) { req.Items = nil },
			wantErr: domain.ErrNoLineItems,
		},
		{
			name: "unknown product",
			mutate: func(req *domain.SaveInvoiceRequest) {
				req.Items[0].ProductID = f.genID.Generate().String()
			},
			wantErr: domain.ErrProductNotFound,
		},
		{
			name: "zero quantity",
			mutate: func(req *domain.SaveInvoiceRequest) {
				req.Items[0].Quantity = 0
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "negative unit price",
			mutate: func(req *domain.SaveInvoiceRequest) {
				req.Items[0].UnitPrice = -1
			},
			wantErr: domain.ErrInvalidUnitPrice,
		},
		{
			name: "unknown customer",
			mutate: func(req *domain.SaveInvoiceRequest) {
				req.CustomerID = f.genID.Generate().String()
			},
			wantErr: domain.ErrCustomerNotFound,
		},
		{
			name: "due date before invoice date",
			mutate: func(req *domain.SaveInvoiceRequest) {
				req.DueDate = req.InvoiceDate.AddDate(0, 0, -1)
			},
			wantErr: domain.ErrInvalidDueDate,
		},
		{
			name: "tax percent out of range",
			mutate: func(req *domain.SaveInvoiceRequest) {
				req.TaxPercent = 101
			},
			wantErr: domain.ErrInvalidTaxPercent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := f.saveRequest(t, "INV-2024-900")
			tc.mutate(&req)
			_, err := f.svc.Create(ctx, req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("create err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-010")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-010"))
	if !errors.Is(err, domain.ErrDuplicateNumber) {
		t.Fatalf("second create err = %v, want %v", err, domain.ErrDuplicateNumber)
	}
}

func TestUpdateReplacesItemRows(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-020"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other, err := f.svc.catalogSvc.Create(ctx, catalogdomain.CreateRequest{
		Name:      "Cement Bag 50kg",
		UnitPrice: 85000,
		Unit:      catalogdomain.UnitPcs,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	req := f.saveRequest(t, "INV-2024-020")
	req.Items = []domain.LineItemInput{
		{ProductID: other.ID.String(), Quantity: 4, UnitPrice: 85000},
	}
	updated, err := f.svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:                 inv.ID.String(),
		SaveInvoiceRequest: req,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Name != "Cement Bag 50kg" {
		t.Fatalf("updated items = %+v, want single cement row", updated.Items)
	}
	if updated.Subtotal != 340000 {
		t.Errorf("subtotal = %d, want 340000", updated.Subtotal)
	}

	var count int64
	if err := f.db.Model(&domain.LineItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 1 {
		t.Errorf("stored item rows = %d, want old rows replaced", count)
	}
}

func TestUpdateValidationLeavesInvoiceUntouched(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-021"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := f.saveRequest(t, "INV-2024-021")
	req.Items = nil
	_, err = f.svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:                 inv.ID.String(),
		SaveInvoiceRequest: req,
	})
	if !errors.Is(err, domain.ErrNoLineItems) {
		t.Fatalf("update err = %v, want %v", err, domain.ErrNoLineItems)
	}

	stored, err := f.svc.GetByID(ctx, inv.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Items) != 1 || stored.Total != inv.Total {
		t.Errorf("invoice changed after rejected update")
	}
}

func TestUpdateStatus(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-030"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, inv.ID.String(), domain.InvoiceStatusPaid)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.InvoiceStatusPaid {
		t.Errorf("status = %q, want paid", updated.Status)
	}

	if _, err := f.svc.UpdateStatus(ctx, inv.ID.String(), domain.InvoiceStatus("void")); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("invalid status err = %v, want %v", err, domain.ErrInvalidStatus)
	}
}

func TestDeleteRemovesItemRows(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-040"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.Delete(ctx, inv.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.svc.GetByID(ctx, inv.ID.String()); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("get after delete err = %v, want %v", err, domain.ErrInvoiceNotFound)
	}
	var count int64
	if err := f.db.Model(&domain.LineItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Errorf("item rows = %d, want 0 after delete", count)
	}

	if err := f.svc.Delete(ctx, f.genID.Generate().String()); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("delete missing err = %v, want %v", err, domain.ErrInvoiceNotFound)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inv, err := f.svc.Create(ctx, f.saveRequest(t, fmt.Sprintf("INV-2024-05%d", i)))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if i == 0 {
			if _, err := f.svc.UpdateStatus(ctx, inv.ID.String(), domain.InvoiceStatusPaid); err != nil {
				t.Fatalf("update status: %v", err)
			}
		}
	}

	paid, err := f.svc.List(ctx, domain.ListInvoiceRequest{Status: "paid"})
	if err != nil {
		t.Fatalf("list paid: %v", err)
	}
	if len(paid.Invoices) != 1 {
		t.Fatalf("paid invoices = %d, want 1", len(paid.Invoices))
	}

	page, err := f.svc.List(ctx, domain.ListInvoiceRequest{PageSize: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page.Invoices) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Invoices))
	}
	if !page.HasMore || page.NextPageToken == "" {
		t.Fatalf("expected more pages, got %+v", page.PageInfo)
	}

	rest, err := f.svc.List(ctx, domain.ListInvoiceRequest{PageSize: 2, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("list rest: %v", err)
	}
	if len(rest.Invoices) != 1 || rest.HasMore {
		t.Fatalf("rest = %d invoices hasMore=%v, want 1/false", len(rest.Invoices), rest.HasMore)
	}

	if _, err := f.svc.List(ctx, domain.ListInvoiceRequest{Status: "void"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("list invalid status err = %v, want %v", err, domain.ErrInvalidStatus)
	}
}

func TestRenderMissingInvoiceProducesNoOutput(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	missing := f.genID.Generate().String()
	if out, err := f.svc.RenderPDF(ctx, missing); !errors.Is(err, domain.ErrInvoiceNotFound) || out != nil {
		t.Fatalf("render pdf = (%d bytes, %v), want not found and nil output", len(out), err)
	}
	if out, err := f.svc.RenderImage(ctx, missing); !errors.Is(err, domain.ErrInvoiceNotFound) || out != nil {
		t.Fatalf("render image = (%d bytes, %v), want not found and nil output", len(out), err)
	}
}

func TestRenderResolvesReferences(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-060"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pdf, err := f.svc.RenderPDF(ctx, inv.ID.String())
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("pdf output missing header")
	}

	img, err := f.svc.RenderImage(ctx, inv.ID.String())
	if err != nil {
		t.Fatalf("render image: %v", err)
	}
	if !bytes.Contains(img, []byte("PT Maju Jaya")) {
		t.Errorf("image output missing customer name")
	}
	if !bytes.Contains(img, []byte("Rp 10.000.000")) {
		t.Errorf("image output missing formatted subtotal")
	}
}

func TestRenderFallsBackWhenCustomerDeleted(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, f.saveRequest(t, "INV-2024-061"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.customerSvc.Delete(ctx, f.customer.ID.String()); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	img, err := f.svc.RenderImage(ctx, inv.ID.String())
	if err != nil {
		t.Fatalf("render image: %v", err)
	}
	if !bytes.Contains(img, []byte("N/A")) {
		t.Errorf("image output missing placeholder for deleted customer")
	}
	if bytes.Contains(img, []byte("PT Maju Jaya")) {
		t.Errorf("image output still names the deleted customer")
	}
}
