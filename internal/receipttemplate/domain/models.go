package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ReceiptTemplate is a named preset that pre-fills a new receipt.
type ReceiptTemplate struct {
	ID           snowflake.ID                      `gorm:"primaryKey" json:"id"`
	Name         string                            `gorm:"not null;uniqueIndex" json:"name"`
	Description  string                            `json:"description"`
	IsDefault    bool                              `gorm:"not null;default:false" json:"is_default"`
	CustomerName string                            `json:"customer_name"`
	CustomerNIT  string                            `gorm:"column:customer_nit" json:"customer_nit"`
	Notes        string                            `json:"notes"`
	Items        datatypes.JSONSlice[TemplateItem] `json:"items"`
	CreatedAt    time.Time                         `json:"created_at"`
	UpdatedAt    time.Time                         `json:"updated_at"`
}

func (ReceiptTemplate) TableName() string { return "receipt_templates" }

type TemplateItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
