package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UpdateSettingsRequest struct {
	CompanyName     *string         `json:"company_name,omitempty"`
	CompanyInfo     *string         `json:"company_info,omitempty"`
	ReceiptTitle    *string         `json:"receipt_title,omitempty"`
	FieldVisibility map[string]bool `json:"field_visibility,omitempty"`
}

type Service interface {
	Get(ctx context.Context) (View, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (View, error)
}

type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*Settings, error)
	Save(ctx context.Context, db *gorm.DB, settings *Settings) error
}

// Cache holds the resolved settings between reads.
type Cache interface {
	Get(ctx context.Context) (View, bool)
	Set(ctx context.Context, view View, ttl time.Duration)
	Invalidate(ctx context.Context)
}

var (
	ErrInvalidCompanyName = errors.New("invalid_company_name")
	ErrInvalidPayload     = errors.New("invalid_settings_payload")
)
