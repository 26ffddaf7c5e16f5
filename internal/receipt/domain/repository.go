package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Receipt, error)
	List(ctx context.Context, db *gorm.DB, filter ListReceiptFilter, page pagination.Pagination) ([]*Receipt, int64, error)
	Update(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ReplaceItems(ctx context.Context, db *gorm.DB, receiptID snowflake.ID, items []LineItem) error
	LastSequence(ctx context.Context, db *gorm.DB) (int64, error)
}
