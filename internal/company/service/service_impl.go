// Package service implements company profile access on gorm.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/faktur-app/faktur/internal/clock"
	"github.com/faktur-app/faktur/internal/company/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var supportedLanguages = map[string]bool{"en": true, "id": true}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		clock: p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Profile, error) {
	var record domain.Profile
	if err := s.db.WithContext(ctx).Order("id ASC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return record, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProfileRequest) (domain.Profile, error) {
	record, err := s.Get(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Profile{}, domain.ErrInvalidName
		}
		record.Name = name
	}
	if req.Address != nil {
		record.Address = *req.Address
	}
	if req.LogoURL != nil {
		record.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.Currency != nil {
		record.Currency = strings.TrimSpace(*req.Currency)
	}
	if req.Language != nil {
		language := strings.ToLower(strings.TrimSpace(*req.Language))
		if !supportedLanguages[language] {
			return domain.Profile{}, domain.ErrInvalidLanguage
		}
		record.Language = language
	}
	record.UpdatedAt = s.clock.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return domain.Profile{}, err
	}
	return record, nil
}
