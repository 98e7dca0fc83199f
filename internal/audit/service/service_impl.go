// Package service persists the activity log on gorm.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/faktur-app/faktur/internal/audit/domain"
	"github.com/faktur-app/faktur/internal/clock"
	"github.com/faktur-app/faktur/internal/observability/logger"
	"github.com/faktur-app/faktur/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Record(ctx context.Context, actor domain.ActorType, action, targetType string, targetID *string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	entry := domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  string(actor),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   datatypes.JSONMap(metadata),
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("audit log write failed",
			zap.String("action", action),
			zap.Any("metadata", logger.MaskJSON(metadata)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	query := s.db.WithContext(ctx).Model(&domain.AuditLog{}).
		Order("created_at DESC, id DESC")

	if action := strings.TrimSpace(req.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if targetType := strings.TrimSpace(req.TargetType); targetType != "" {
		query = query.Where("target_type = ?", targetType)
	}
	if targetID := strings.TrimSpace(req.TargetID); targetID != "" {
		query = query.Where("target_id = ?", targetID)
	}
	if cursor, err := pagination.DecodeCursor(req.PageToken); err == nil {
		if createdAt, id, ok := cursor.Keys(); ok {
			query = query.Where("(created_at, id) < (?, ?)", createdAt, id)
		}
	}

	var records []*domain.AuditLog
	if err := query.Limit(int(pageSize) + 1).Find(&records).Error; err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(records, pageSize, func(record *domain.AuditLog) string {
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

	entries := make([]domain.AuditLog, 0, len(records))
	for _, record := range records {
		entries = append(entries, *record)
	}

	resp := domain.ListResponse{Entries: entries}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
