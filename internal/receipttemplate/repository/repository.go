package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	templatedomain "github.com/smallbiznis/recibo/internal/receipttemplate/domain"
)

type repo struct{}

func Provide() templatedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tmpl *templatedomain.ReceiptTemplate) error {
	return db.WithContext(ctx).Create(tmpl).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tmpl *templatedomain.ReceiptTemplate) error {
	return db.WithContext(ctx).
		Model(&templatedomain.ReceiptTemplate{}).
		Where("id = ?", tmpl.ID).
		Updates(map[string]any{
			"name":          tmpl.Name,
			"description":   tmpl.Description,
			"is_default":    tmpl.IsDefault,
			"customer_name": tmpl.CustomerName,
			"customer_nit":  tmpl.CustomerNIT,
			"notes":         tmpl.Notes,
			"items":         tmpl.Items,
			"updated_at":    tmpl.UpdatedAt,
		}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*templatedomain.ReceiptTemplate, error) {
	var tmpl templatedomain.ReceiptTemplate
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&tmpl).Error
	if err != nil {
		return nil, err
	}
	if tmpl.ID == 0 {
		return nil, nil
	}
	return &tmpl, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter templatedomain.ListRequest) ([]templatedomain.ReceiptTemplate, error) {
	var items []templatedomain.ReceiptTemplate
	stmt := db.WithContext(ctx).Model(&templatedomain.ReceiptTemplate{})

	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.IsDefault != nil {
		stmt = stmt.Where("is_default = ?", *filter.IsDefault)
	}

	if err := stmt.Order("is_default DESC").Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&templatedomain.ReceiptTemplate{}).Error
}

func (r *repo) UnsetDefault(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Model(&templatedomain.ReceiptTemplate{}).
		Where("is_default = ?", true).
		Updates(map[string]any{"is_default": false, "updated_at": time.Now().UTC()}).Error
}
