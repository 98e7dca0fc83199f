// Package seed bootstraps the rows the app needs before first use.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultCompanyName = "My Company"
	defaultCurrency    = "Rp"
	defaultLanguage    = "id"
)

var Module = fx.Module("seed",
	fx.Invoke(func(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
		return EnsureCompanyProfile(db, genID, log)
	}),
)

// EnsureCompanyProfile creates the single company profile row if none
// exists yet. Renderers and reminders read seller identity from it.
func EnsureCompanyProfile(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile companydomain.Profile
		err := tx.Order("id ASC").First(&profile).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		profile = companydomain.Profile{
			ID:        genID.Generate(),
			Name:      defaultCompanyName,
			Currency:  defaultCurrency,
			Language:  defaultLanguage,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		log.Info("company profile seeded", zap.String("name", profile.Name))
		return nil
	})
}
