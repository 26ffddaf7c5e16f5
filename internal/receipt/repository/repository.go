package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_order asc, id asc")
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, receipt *domain.Receipt) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(receipt).Error; err != nil {
		return err
	}
	if len(receipt.Items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&receipt.Items).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		Limit(1).
		Find(&receipt).Error
	if err != nil {
		return nil, err
	}
	if receipt.ID == 0 {
		return nil, nil
	}
	return &receipt, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListReceiptFilter, page pagination.Pagination) ([]*domain.Receipt, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Receipt{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		stmt = stmt.Where(
			"LOWER(receipt_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_nit) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.DateFrom != nil {
		stmt = stmt.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		stmt = stmt.Where("date <= ?", *filter.DateTo)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var receipts []*domain.Receipt
	err := page.Apply(stmt.Session(&gorm.Session{})).
		Preload("Items", orderedItems).
		Order("created_at desc, id desc").
		Find(&receipts).Error
	if err != nil {
		return nil, 0, err
	}
	return receipts, total, nil
}

// Update replaces the mutable content columns. Number, sequence and date are left alone.
func (r *repo) Update(ctx context.Context, db *gorm.DB, receipt *domain.Receipt) error {
	return db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Where("id = ?", receipt.ID).
		Updates(map[string]any{
			"status":           receipt.Status,
			"customer_name":    receipt.CustomerName,
			"customer_nit":     receipt.CustomerNIT,
			"customer_phone":   receipt.CustomerPhone,
			"customer_email":   receipt.CustomerEmail,
			"customer_address": receipt.CustomerAddress,
			"institution":      receipt.Institution,
			"concept":          receipt.Concept,
			"payment_method":   receipt.PaymentMethod,
			"check_number":     receipt.CheckNumber,
			"bank_account":     receipt.BankAccount,
			"received_by_name": receipt.ReceivedByName,
			"notes":            receipt.Notes,
			"signature":        receipt.Signature,
			"subtotal_cents":   receipt.Subtotal,
			"total_cents":      receipt.Total,
			"updated_at":       receipt.UpdatedAt,
		}).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status) error {
	return db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).Where("receipt_id = ?", id).Delete(&domain.LineItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Receipt{}).Error
}

func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, receiptID snowflake.ID, items []domain.LineItem) error {
	if err := db.WithContext(ctx).Where("receipt_id = ?", receiptID).Delete(&domain.LineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) LastSequence(ctx context.Context, db *gorm.DB) (int64, error) {
	var last int64
	err := db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last, nil
}
