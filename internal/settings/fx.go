package settings

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/config"
	settingscache "github.com/smallbiznis/recibo/internal/settings/cache"
	"github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/settings/repository"
	"github.com/smallbiznis/recibo/internal/settings/service"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideCache),
	fx.Provide(service.New),
)

func provideCache(cfg config.Config, log *zap.Logger) domain.Cache {
	if cfg.SettingsCache != config.SettingsCacheRedis {
		return settingscache.NewMemory()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Info("settings cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	return settingscache.NewRedis(client, log)
}
