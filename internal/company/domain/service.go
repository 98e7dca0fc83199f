package domain

import (
	"context"
	"errors"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	LogoURL  *string `json:"logo_url,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Language *string `json:"language,omitempty"`
}

// Service exposes the company profile. Get always returns the single row.
type Service interface {
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) (Profile, error)
}

var (
	ErrProfileNotFound = errors.New("company_profile_not_found")
	ErrInvalidName     = errors.New("invalid_company_name")
	ErrInvalidLanguage = errors.New("invalid_language")
)
