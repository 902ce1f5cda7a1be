package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"photostudio/internal/core/cache"
	"photostudio/internal/domain"
)

const settingsCacheKey = "settings"

// SettingsService 读走缓存（Redis 未配置时直接读库），写后删缓存
type SettingsService struct {
	Repo  domain.SettingsRepository
	Cache *cache.Cache
	TTL   time.Duration
	Log   *zap.Logger
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	v, err := cache.GetOrLoadJSON(s.Cache, ctx, settingsCacheKey, ttl, func(ctx context.Context) (*domain.Settings, error) {
		st, err := s.Repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		return &st, nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	if v == nil {
		return domain.DefaultSettings(), nil
	}
	return *v, nil
}

func (s *SettingsService) Update(ctx context.Context, p domain.SettingsPatch) (domain.Settings, error) {
	cur, err := s.Repo.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	cur.Apply(p)
	if err := s.Repo.Save(ctx, cur); err != nil {
		return domain.Settings{}, err
	}
	if err := s.Cache.Invalidate(ctx, settingsCacheKey); err != nil && s.Log != nil {
		s.Log.Warn("settings cache invalidate failed", zap.Error(err))
	}
	return s.Repo.Get(ctx)
}
