// Package service implements the product catalog on gorm.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/faktur-app/faktur/internal/catalog/domain"
	"github.com/faktur-app/faktur/internal/clock"
	"github.com/faktur-app/faktur/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.UnitPrice < 0 {
		return domain.Product{}, domain.ErrInvalidUnitPrice
	}
	unit := req.Unit
	if unit == "" {
		unit = domain.UnitPcs
	}
	if !unit.Valid() {
		return domain.Product{}, domain.ErrInvalidUnit
	}

	now := s.clock.Now().UTC()
	record := domain.Product{
		ID:        s.genID.Generate(),
		Name:      name,
		UnitPrice: req.UnitPrice,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Product{}, err
	}
	return record, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Product, error) {
	record, err := s.Get(ctx, req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, domain.ErrInvalidName
		}
		record.Name = name
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return domain.Product{}, domain.ErrInvalidUnitPrice
		}
		record.UnitPrice = *req.UnitPrice
	}
	if req.Unit != nil {
		if !req.Unit.Valid() {
			return domain.Product{}, domain.ErrInvalidUnit
		}
		record.Unit = *req.Unit
	}
	record.UpdatedAt = s.clock.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return domain.Product{}, err
	}
	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	var record domain.Product
	if err := s.db.WithContext(ctx).First(&record, "id = ?", parsed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	query := s.db.WithContext(ctx).Model(&domain.Product{}).Order("created_at DESC, id DESC")
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if cursor, err := pagination.DecodeCursor(req.PageToken); err == nil {
		if createdAt, id, ok := cursor.Keys(); ok {
			query = query.Where("(created_at, id) < (?, ?)", createdAt, id)
		}
	}

	var records []*domain.Product
	if err := query.Limit(int(pageSize) + 1).Find(&records).Error; err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(records, pageSize, func(record *domain.Product) string {
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

	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, *record)
	}

	resp := domain.ListResponse{Products: products}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	// Invoices keep their snapshots; no cascade.
	result := s.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", parsed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
