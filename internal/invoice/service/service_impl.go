// Package service implements invoice management: persistence, aggregate
// recomputation and document rendering.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/faktur-app/faktur/internal/cache"
	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	"github.com/faktur-app/faktur/internal/clock"
	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	"github.com/faktur-app/faktur/internal/invoice/domain"
	"github.com/faktur-app/faktur/internal/invoice/render"
	"github.com/faktur-app/faktur/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const productCacheTTL = 30 * time.Second

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
	CompanySvc  companydomain.Service
	PDF         render.PDFRenderer
	Image       render.ImageRenderer
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	companySvc  companydomain.Service
	pdf         render.PDFRenderer
	image       render.ImageRenderer

	productCache *cache.TTLCache[string, catalogdomain.Product]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		catalogSvc:   p.CatalogSvc,
		customerSvc:  p.CustomerSvc,
		companySvc:   p.CompanySvc,
		pdf:          p.PDF,
		image:        p.Image,
		productCache: cache.NewTTLCache[string, catalogdomain.Product](),
	}
}

func (s *Service) Create(ctx context.Context, req domain.SaveInvoiceRequest) (domain.Invoice, error) {
	validated, err := s.validateSave(ctx, req)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := s.clock.Now().UTC()
	record := domain.Invoice{
		ID:                s.genID.Generate(),
		Number:            validated.number,
		CustomerID:        validated.customerID,
		Items:             validated.items,
		Subtotal:          validated.totals.Subtotal,
		TaxPercent:        req.TaxPercent,
		TaxAmount:         validated.totals.TaxAmount,
		DiscountValue:     req.DiscountValue,
		UnderpaymentValue: req.UnderpaymentValue,
		Total:             validated.totals.Total,
		Status:            domain.InvoiceStatusUnpaid,
		InvoiceDate:       req.InvoiceDate,
		DueDate:           req.DueDate,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i := range record.Items {
		record.Items[i].InvoiceID = record.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Invoice{}).Where("number = ?", record.Number).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateNumber
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", record.ID.String()),
		zap.String("number", record.Number),
		zap.Int64("total", record.Total),
	)
	return record, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	existing, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	validated, err := s.validateSave(ctx, req.SaveInvoiceRequest)
	if err != nil {
		return domain.Invoice{}, err
	}

	existing.Number = validated.number
	existing.CustomerID = validated.customerID
	existing.Subtotal = validated.totals.Subtotal
	existing.TaxPercent = req.TaxPercent
	existing.TaxAmount = validated.totals.TaxAmount
	existing.DiscountValue = req.DiscountValue
	existing.UnderpaymentValue = req.UnderpaymentValue
	existing.Total = validated.totals.Total
	existing.InvoiceDate = req.InvoiceDate
	existing.DueDate = req.DueDate
	existing.Notes = req.Notes
	existing.UpdatedAt = s.clock.Now().UTC()

	items := validated.items
	for i := range items {
		items[i].InvoiceID = existing.ID
	}

	// Replace the item rows wholesale inside one transaction so a failed
	// save never leaves a half-written invoice behind.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Invoice{}).
			Where("number = ? AND id <> ?", existing.Number, existing.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateNumber
		}
		if err := tx.Where("invoice_id = ?", existing.ID).Delete(&domain.LineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		existing.Items = nil
		if err := tx.Omit("Items").Save(&existing).Error; err != nil {
			return err
		}
		existing.Items = items
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return existing, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	parsed, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Invoice{}, err
	}

	var record domain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&record, "id = ?", parsed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Invoice{}, domain.ErrInvoiceNotFound
		}
		return domain.Invoice{}, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	query := s.db.WithContext(ctx).Model(&domain.Invoice{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC, id DESC")

	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	if customer := strings.TrimSpace(req.Customer); customer != "" {
		customerID, err := parseID(customer, domain.ErrInvalidCustomer)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		query = query.Where("customer_id = ?", customerID)
	}
	if cursor, err := pagination.DecodeCursor(req.PageToken); err == nil {
		if createdAt, id, ok := cursor.Keys(); ok {
			query = query.Where("(created_at, id) < (?, ?)", createdAt, id)
		}
	}

	var records []*domain.Invoice
	if err := query.Limit(int(pageSize) + 1).Find(&records).Error; err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(records, pageSize, func(record *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        record.ID.String(),
			CreatedAt: record.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(records) > int(pageSize) {
		records = records[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(records))
	for _, record := range records {
		invoices = append(invoices, *record)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (domain.Invoice, error) {
	if !status.Valid() {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	record.Status = status
	record.UpdatedAt = s.clock.Now().UTC()
	if err := s.db.WithContext(ctx).Omit("Items").Save(&record).Error; err != nil {
		return domain.Invoice{}, err
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Invoice{}, "id = ?", parsed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvoiceNotFound
		}
		return tx.Where("invoice_id = ?", parsed).Delete(&domain.LineItem{}).Error
	})
}

func (s *Service) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	input, err := s.buildRenderInput(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.pdf.RenderPDF(input)
}

func (s *Service) RenderImage(ctx context.Context, id string) ([]byte, error) {
	input, err := s.buildRenderInput(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.image.RenderImage(input)
}

func (s *Service) buildRenderInput(ctx context.Context, id string) (render.RenderInput, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return render.RenderInput{}, err
	}

	profile, err := s.companySvc.Get(ctx)
	if err != nil {
		return render.RenderInput{}, err
	}

	// A deleted customer must not break rendering; the documents show a
	// placeholder instead.
	customerView := render.CustomerView{}
	customer, err := s.customerSvc.GetByID(ctx, invoice.CustomerID.String())
	switch {
	case err == nil:
		customerView = render.CustomerView{
			Name:     customer.Name,
			Email:    customer.Email,
			Address:  customer.Address,
			Phone:    customer.Phone,
			Resolved: true,
		}
	case errors.Is(err, customerdomain.ErrNotFound), errors.Is(err, customerdomain.ErrInvalidID):
		s.log.Warn("rendering invoice with unresolved customer",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("customer_id", invoice.CustomerID.String()),
		)
	default:
		return render.RenderInput{}, err
	}

	items := make([]render.LineItemView, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, render.LineItemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return render.RenderInput{
		Company: render.CompanyView{
			Name:     profile.Name,
			Address:  profile.Address,
			LogoURL:  profile.LogoURL,
			Currency: profile.Currency,
			Language: profile.Language,
		},
		Customer: customerView,
		Invoice: render.InvoiceView{
			Number:            invoice.Number,
			Status:            string(invoice.Status),
			InvoiceDate:       invoice.InvoiceDate,
			DueDate:           invoice.DueDate,
			Subtotal:          invoice.Subtotal,
			TaxPercent:        invoice.TaxPercent,
			TaxAmount:         invoice.TaxAmount,
			DiscountValue:     invoice.DiscountValue,
			UnderpaymentValue: invoice.UnderpaymentValue,
			Total:             invoice.Total,
			Notes:             invoice.Notes,
		},
		Items: items,
	}, nil
}

type validatedSave struct {
	number     string
	customerID snowflake.ID
	items      []domain.LineItem
	totals     domain.Totals
}

// validateSave checks a save request end to end and assembles the item
// rows through the editor so the merge and recompute rules apply to API
// writes exactly as they do to interactive edits.
func (s *Service) validateSave(ctx context.Context, req domain.SaveInvoiceRequest) (validatedSave, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return validatedSave{}, domain.ErrInvalidNumber
	}

	customerID, err := parseID(req.CustomerID, domain.ErrInvalidCustomer)
	if err != nil {
		return validatedSave{}, err
	}
	if _, err := s.customerSvc.GetByID(ctx, customerID.String()); err != nil {
		if errors.Is(err, customerdomain.ErrNotFound) {
			return validatedSave{}, domain.ErrCustomerNotFound
		}
		return validatedSave{}, err
	}

	if req.InvoiceDate.IsZero() {
		return validatedSave{}, domain.ErrInvalidInvoiceDate
	}
	if req.DueDate.Before(req.InvoiceDate) {
		return validatedSave{}, domain.ErrInvalidDueDate
	}

	if len(req.Items) == 0 {
		return validatedSave{}, domain.ErrNoLineItems
	}

	editor := domain.NewEditor(s.genID, nil)
	for _, item := range req.Items {
		productID, err := parseID(item.ProductID, domain.ErrInvalidProduct)
		if err != nil {
			return validatedSave{}, err
		}
		product, err := s.resolveProduct(ctx, productID)
		if err != nil {
			return validatedSave{}, err
		}
		if err := editor.AddOrMergeItem(productID, product.Name, item.Quantity, item.UnitPrice); err != nil {
			return validatedSave{}, err
		}
	}

	items := editor.Items()
	totals, err := domain.ComputeTotals(items, req.TaxPercent, req.DiscountValue, req.UnderpaymentValue)
	if err != nil {
		return validatedSave{}, err
	}

	return validatedSave{
		number:     number,
		customerID: customerID,
		items:      items,
		totals:     totals,
	}, nil
}

func (s *Service) resolveProduct(ctx context.Context, id snowflake.ID) (catalogdomain.Product, error) {
	key := id.String()
	if product, ok := s.productCache.Get(key); ok {
		return product, nil
	}

	product, err := s.catalogSvc.Get(ctx, key)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) || errors.Is(err, catalogdomain.ErrInvalidID) {
			return catalogdomain.Product{}, domain.ErrProductNotFound
		}
		return catalogdomain.Product{}, err
	}

	s.productCache.Set(key, product, productCacheTTL)
	return product, nil
}

func parseID(value string, invalidErr error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalidErr
	}
	return id, nil
}
