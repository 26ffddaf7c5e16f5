package domain

import (
	"context"
	"errors"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
)

type CreateRequest struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	IsDefault    bool           `json:"is_default"`
	CustomerName string         `json:"customer_name"`
	CustomerNIT  string         `json:"customer_nit"`
	Notes        string         `json:"notes"`
	Items        []TemplateItem `json:"items"`
}

type UpdateRequest struct {
	ID           string         `json:"-"`
	Name         *string        `json:"name"`
	Description  *string        `json:"description"`
	CustomerName *string        `json:"customer_name"`
	CustomerNIT  *string        `json:"customer_nit"`
	Notes        *string        `json:"notes"`
	Items        []TemplateItem `json:"items"`
}

type ListRequest struct {
	Name      string `form:"name"`
	IsDefault *bool  `form:"is_default"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ReceiptTemplate, error)
	List(ctx context.Context, req ListRequest) ([]ReceiptTemplate, error)
	GetByID(ctx context.Context, id string) (*ReceiptTemplate, error)
	Update(ctx context.Context, req UpdateRequest) (*ReceiptTemplate, error)
	SetDefault(ctx context.Context, id string) (*ReceiptTemplate, error)
	Delete(ctx context.Context, id string) error
	// Apply returns unsaved receipt content pre-filled from the template.
	Apply(ctx context.Context, id string) (receiptdomain.Content, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tmpl *ReceiptTemplate) error
	Update(ctx context.Context, db *gorm.DB, tmpl *ReceiptTemplate) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ReceiptTemplate, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]ReceiptTemplate, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	UnsetDefault(ctx context.Context, db *gorm.DB) error
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidItem = errors.New("invalid_template_item")
	ErrNotFound    = errors.New("not_found")
	ErrNameTaken   = errors.New("template_name_taken")
)

func ParseID(value string) (snowflake.ID, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return snowflake.ID(id), nil
}
