package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/visibility"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
	Repo  domain.Repository
	Cache domain.Cache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
	cache domain.Cache
	ttl   time.Duration
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
		ttl:   p.Cfg.SettingsCacheTTL,
	}
}

// Get is read-through: a cached view is returned until it goes stale.
func (s *Service) Get(ctx context.Context) (domain.View, error) {
	if view, ok := s.cache.Get(ctx); ok {
		return view, nil
	}

	stored, err := s.load(ctx)
	if err != nil {
		return domain.View{}, err
	}
	view := stored.ToView()
	s.cache.Set(ctx, view, s.ttl)
	return view, nil
}

// Update merges the request over the stored row and refreshes the cache.
func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.View, error) {
	var saved domain.Settings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := s.repo.Find(ctx, tx)
		if err != nil {
			return err
		}
		current := s.defaults()
		if stored != nil {
			current = *stored
		}

		if req.CompanyName != nil {
			name := strings.TrimSpace(*req.CompanyName)
			if name == "" {
				return domain.ErrInvalidCompanyName
			}
			current.CompanyName = name
		}
		if req.CompanyInfo != nil {
			current.CompanyInfo = strings.TrimSpace(*req.CompanyInfo)
		}
		if req.ReceiptTitle != nil {
			current.ReceiptTitle = strings.TrimSpace(*req.ReceiptTitle)
		}

		merged, dropped := mergeVisibility(current.FieldVisibility, req.FieldVisibility)
		if len(dropped) > 0 {
			s.log.Info("ignoring unknown visibility keys", zap.Strings("keys", dropped))
		}
		current.FieldVisibility = merged
		current.UpdatedAt = s.clock.Now()

		if err := s.repo.Save(ctx, tx, &current); err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}

	view := saved.ToView()
	s.cache.Set(ctx, view, s.ttl)
	return view, nil
}

func (s *Service) load(ctx context.Context) (domain.Settings, error) {
	stored, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.Settings{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	row := s.defaults()
	if err := s.repo.Save(ctx, s.db, &row); err != nil {
		return domain.Settings{}, err
	}
	s.log.Info("initialized default settings")
	return row, nil
}

func (s *Service) defaults() domain.Settings {
	now := s.clock.Now()
	return domain.Settings{
		ID:              domain.SingletonID,
		CompanyName:     domain.DefaultCompanyName,
		CompanyInfo:     domain.DefaultCompanyInfo,
		FieldVisibility: datatypes.JSONMap(toAny(visibility.Defaults().Map())),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// mergeVisibility keeps known boolean entries from stored, overlays patch
// and reports any patch keys outside the field set.
func mergeVisibility(stored datatypes.JSONMap, patch map[string]bool) (datatypes.JSONMap, []string) {
	out := datatypes.JSONMap{}
	for key, raw := range stored {
		if _, ok := visibility.Parse(key); !ok {
			continue
		}
		if v, ok := raw.(bool); ok {
			out[key] = v
		}
	}
	var dropped []string
	for key, v := range patch {
		if _, ok := visibility.Parse(key); !ok {
			dropped = append(dropped, key)
			continue
		}
		out[key] = v
	}
	return out, dropped
}

func toAny(m map[string]bool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
