package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/internal/clock"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	templatedomain "github.com/smallbiznis/recibo/internal/receipttemplate/domain"
	"github.com/smallbiznis/recibo/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  templatedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  templatedomain.Repository
}

func NewService(p Params) templatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("receipttemplate.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req templatedomain.CreateRequest) (*templatedomain.ReceiptTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, templatedomain.ErrInvalidName
	}
	items, err := normalizeItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tmpl := &templatedomain.ReceiptTemplate{
		ID:           s.genID.Generate(),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		IsDefault:    req.IsDefault,
		CustomerName: strings.TrimSpace(req.CustomerName),
		CustomerNIT:  strings.TrimSpace(req.CustomerNIT),
		Notes:        strings.TrimSpace(req.Notes),
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := s.repo.UnsetDefault(ctx, tx); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, tmpl)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, templatedomain.ErrNameTaken
		}
		return nil, err
	}

	s.log.Info("receipt template created", zap.String("template_id", tmpl.ID.String()), zap.String("name", tmpl.Name))
	return tmpl, nil
}

func (s *Service) List(ctx context.Context, req templatedomain.ListRequest) ([]templatedomain.ReceiptTemplate, error) {
	filter := templatedomain.ListRequest{
		Name:      strings.TrimSpace(req.Name),
		IsDefault: req.IsDefault,
	}
	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []templatedomain.ReceiptTemplate{}
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*templatedomain.ReceiptTemplate, error) {
	templateID, err := templatedomain.ParseID(id)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, s.db, templateID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, templatedomain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, req templatedomain.UpdateRequest) (*templatedomain.ReceiptTemplate, error) {
	item, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, templatedomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.CustomerName != nil {
		item.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerNIT != nil {
		item.CustomerNIT = strings.TrimSpace(*req.CustomerNIT)
	}
	if req.Notes != nil {
		item.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Items != nil {
		items, err := normalizeItems(req.Items)
		if err != nil {
			return nil, err
		}
		item.Items = items
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, templatedomain.ErrNameTaken
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) SetDefault(ctx context.Context, id string) (*templatedomain.ReceiptTemplate, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UnsetDefault(ctx, tx); err != nil {
			return err
		}
		item.IsDefault = true
		item.UpdatedAt = s.clock.Now()
		return s.repo.Update(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, item.ID)
}

func (s *Service) Apply(ctx context.Context, id string) (receiptdomain.Content, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return receiptdomain.Content{}, err
	}

	content := receiptdomain.Content{
		CustomerName: item.CustomerName,
		CustomerNIT:  item.CustomerNIT,
		Notes:        item.Notes,
		Items:        make([]receiptdomain.ItemInput, 0, len(item.Items)),
	}
	for _, line := range item.Items {
		content.Items = append(content.Items, receiptdomain.ItemInput{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return content, nil
}

// normalizeItems trims descriptions, drops blank lines and applies the same
// quantity and price rules as receipt items.
func normalizeItems(input []templatedomain.TemplateItem) (datatypes.JSONSlice[templatedomain.TemplateItem], error) {
	out := datatypes.JSONSlice[templatedomain.TemplateItem]{}
	for _, item := range input {
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			continue
		}
		check := receiptdomain.ItemInput{Description: item.Description, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		if err := check.Validate(); err != nil {
			return nil, templatedomain.ErrInvalidItem
		}
		out = append(out, item)
	}
	return out, nil
}
