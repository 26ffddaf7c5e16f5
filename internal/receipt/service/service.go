package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/internal/receipt/format"
	"github.com/smallbiznis/recibo/internal/receipt/totals"
	"github.com/smallbiznis/recibo/pkg/db"
	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

const maxNumberAttempts = 3

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Cfg   config.Config
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	repo           domain.Repository
	numberTemplate string
}

func New(p Params) domain.Service {
	tmpl := strings.TrimSpace(p.Cfg.ReceiptNumberTemplate)
	if tmpl == "" {
		tmpl = format.DefaultNumberTemplate
	}
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("receipt.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		repo:           p.Repo,
		numberTemplate: tmpl,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReceiptRequest) (domain.Receipt, error) {
	content := req.Content.Normalize()
	if err := content.Validate(); err != nil {
		return domain.Receipt{}, err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	if !status.Valid() {
		return domain.Receipt{}, domain.ErrInvalidStatus
	}

	sums, err := totals.Compute(content.Items)
	if err != nil {
		return domain.Receipt{}, err
	}

	now := s.clock.Now()
	date := calendarDay(now)
	if content.Date != nil && !content.Date.IsZero() {
		date = calendarDay(*content.Date)
	}

	receipt := domain.Receipt{
		ID:        s.genID.Generate(),
		Date:      date,
		Status:    status,
		Subtotal:  sums.Subtotal,
		Total:     sums.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyContent(&receipt, content)
	receipt.Items = s.buildItems(receipt.ID, content, sums, now)

	for attempt := 1; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			last, err := s.repo.LastSequence(ctx, tx)
			if err != nil {
				return err
			}
			number, err := format.ReceiptNumber(s.numberTemplate, receipt.Date, last+1)
			if err != nil {
				return err
			}
			receipt.Sequence = last + 1
			receipt.ReceiptNumber = number
			return s.repo.Insert(ctx, tx, &receipt)
		})
		if err == nil {
			break
		}
		if !db.IsDuplicateKeyErr(err) {
			return domain.Receipt{}, err
		}
		if attempt == maxNumberAttempts {
			return domain.Receipt{}, domain.ErrNumberConflict
		}
		s.log.Warn("receipt number taken, retrying", zap.String("receipt_number", receipt.ReceiptNumber), zap.Int("attempt", attempt))
	}

	s.log.Info("receipt created",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("total", receipt.Total.String()),
	)
	return receipt, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Receipt, error) {
	receiptID, err := parseID(id)
	if err != nil {
		return domain.Receipt{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, receiptID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if item == nil {
		return domain.Receipt{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReceiptRequest) (domain.ListReceiptResponse, error) {
	filter := domain.ListReceiptFilter{
		Search: strings.TrimSpace(req.Search),
		Status: req.Status,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return domain.ListReceiptResponse{}, domain.ErrInvalidStatus
	}
	if req.DateFrom != nil {
		from := calendarDay(*req.DateFrom)
		filter.DateFrom = &from
	}
	if req.DateTo != nil {
		to := calendarDay(*req.DateTo)
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return domain.ListReceiptResponse{}, domain.ErrInvalidDateRange
	}

	page := req.Pagination.Normalize()
	items, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListReceiptResponse{}, err
	}

	receipts := make([]domain.Receipt, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		receipts = append(receipts, *item)
	}
	return domain.ListReceiptResponse{
		PageInfo: pagination.BuildPageInfo(page, len(receipts), total),
		Receipts: receipts,
	}, nil
}

// Update replaces content and items. Number and date never change.
func (s *Service) Update(ctx context.Context, req domain.UpdateReceiptRequest) (domain.Receipt, error) {
	receiptID, err := parseID(req.ID)
	if err != nil {
		return domain.Receipt{}, err
	}

	content := req.Content.Normalize()
	if err := content.Validate(); err != nil {
		return domain.Receipt{}, err
	}
	if req.Status != "" && !req.Status.Valid() {
		return domain.Receipt{}, domain.ErrInvalidStatus
	}

	sums, err := totals.Compute(content.Items)
	if err != nil {
		return domain.Receipt{}, err
	}

	var updated domain.Receipt
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, receiptID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		now := s.clock.Now()
		receipt := *existing
		applyContent(&receipt, content)
		if req.Status != "" {
			receipt.Status = req.Status
		}
		receipt.Subtotal = sums.Subtotal
		receipt.Total = sums.Total
		receipt.UpdatedAt = now
		receipt.Items = s.buildItems(receipt.ID, content, sums, now)

		if err := s.repo.Update(ctx, tx, &receipt); err != nil {
			return err
		}
		if err := s.repo.ReplaceItems(ctx, tx, receipt.ID, receipt.Items); err != nil {
			return err
		}
		updated = receipt
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return updated, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateStatusRequest) (domain.Receipt, error) {
	receiptID, err := parseID(req.ID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if !req.Status.Valid() {
		return domain.Receipt{}, domain.ErrInvalidStatus
	}

	existing, err := s.repo.FindByID(ctx, s.db, receiptID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if existing == nil {
		return domain.Receipt{}, domain.ErrNotFound
	}
	if err := s.repo.UpdateStatus(ctx, s.db, receiptID, req.Status); err != nil {
		return domain.Receipt{}, err
	}
	existing.Status = req.Status
	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	receiptID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, receiptID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return s.repo.Delete(ctx, tx, receiptID)
	})
}

func (s *Service) NextNumber(ctx context.Context) (domain.NextNumberResponse, error) {
	last, err := s.repo.LastSequence(ctx, s.db)
	if err != nil {
		return domain.NextNumberResponse{}, err
	}
	number, err := format.ReceiptNumber(s.numberTemplate, calendarDay(s.clock.Now()), last+1)
	if err != nil {
		return domain.NextNumberResponse{}, fmt.Errorf("format receipt number: %w", err)
	}
	return domain.NextNumberResponse{ReceiptNumber: number}, nil
}

func (s *Service) buildItems(receiptID snowflake.ID, content domain.Content, sums totals.Totals, now time.Time) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(content.Items))
	for i, in := range content.Items {
		items = append(items, domain.LineItem{
			ID:          s.genID.Generate(),
			ReceiptID:   receiptID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Total:       sums.Lines[i],
			LineOrder:   i,
			CreatedAt:   now,
		})
	}
	return items
}

func applyContent(r *domain.Receipt, c domain.Content) {
	r.CustomerName = c.CustomerName
	r.CustomerNIT = c.CustomerNIT
	r.CustomerPhone = c.CustomerPhone
	r.CustomerEmail = c.CustomerEmail
	r.CustomerAddress = c.CustomerAddress
	r.Institution = c.Institution
	r.Concept = c.Concept
	r.PaymentMethod = c.PaymentMethod
	r.CheckNumber = c.CheckNumber
	r.BankAccount = c.BankAccount
	r.ReceivedByName = c.ReceivedByName
	r.Notes = c.Notes
	r.Signature = c.Signature
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
