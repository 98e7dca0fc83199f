package migration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	catalogservice "github.com/faktur-app/faktur/internal/catalog/service"
	"github.com/faktur-app/faktur/internal/clock"
	companyservice "github.com/faktur-app/faktur/internal/company/service"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	customerservice "github.com/faktur-app/faktur/internal/customer/service"
	invoicedomain "github.com/faktur-app/faktur/internal/invoice/domain"
	"github.com/faktur-app/faktur/internal/invoice/render"
	invoiceservice "github.com/faktur-app/faktur/internal/invoice/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Run(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	db := setupMigratedDB(t)

	if err := Run(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var applied int64
	if err := db.Model(&appliedMigration{}).Count(&applied).Error; err != nil {
		t.Fatalf("count applied: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied migrations = %d, want 1", applied)
	}
}

// Saves an invoice against a database provisioned only by the embedded
// migrations, so the DDL is held to the same columns gorm writes.
func TestMigratedSchemaAcceptsInvoiceSave(t *testing.T) {
	db := setupMigratedDB(t)
	ctx := context.Background()

	genID, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()
	fixed := clock.FixedClock{Instant: time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)}

	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{DB: db, Log: log, GenID: genID, Clock: fixed})
	customerSvc := customerservice.NewService(customerservice.ServiceParam{DB: db, Log: log, GenID: genID, Clock: fixed})
	companySvc := companyservice.NewService(companyservice.ServiceParam{DB: db, Log: log, Clock: fixed})
	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:          db,
		Log:         log,
		GenID:       genID,
		Clock:       fixed,
		CatalogSvc:  catalogSvc,
		CustomerSvc: customerSvc,
		CompanySvc:  companySvc,
		PDF:         render.NewPDFRenderer(),
		Image:       render.NewImageRenderer(),
	})

	product, err := catalogSvc.Create(ctx, catalogdomain.CreateRequest{Name: "Steel Pipe 2in", UnitPrice: 1000000})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	customer, err := customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{Name: "PT Maju Jaya"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	inv, err := invoiceSvc.Create(ctx, invoicedomain.SaveInvoiceRequest{
		Number:     "INV-2024-001",
		CustomerID: customer.ID.String(),
		Items: []invoicedomain.LineItemInput{
			{ProductID: product.ID.String(), Quantity: 2, UnitPrice: 1000000},
		},
		TaxPercent:  11,
		InvoiceDate: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, time.August, 14, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if inv.Total != 2220000 {
		t.Fatalf("total = %d, want 2220000", inv.Total)
	}

	var items int64
	if err := db.Model(&invoicedomain.LineItem{}).Where("invoice_id = ?", inv.ID).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 1 {
		t.Fatalf("item rows = %d, want 1", items)
	}
}
