// Package domain contains the company profile consumed by renderers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Profile is the single company identity printed on every document.
// The app is single-tenant: exactly one row exists, seeded at startup.
type Profile struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Address   string       `gorm:"type:text" json:"address"`
	LogoURL   string       `gorm:"type:text" json:"logo_url"`
	Currency  string       `gorm:"type:text;not null;default:'Rp'" json:"currency"`
	Language  string       `gorm:"type:text;not null;default:'id'" json:"language"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "company_profiles" }
