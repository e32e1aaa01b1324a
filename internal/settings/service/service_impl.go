package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/settings/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cacheKey = "umzug:company_settings"

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Repo   domain.Repository
	Cache *redis.Client `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	cache    *redis.Client
	cacheTTL time.Duration
}

func New(p Params) domain.Service {
	ttl := p.Config.Cache.SettingsTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("settings.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		cache:    p.Cache,
		cacheTTL: ttl,
	}
}

func (s *Service) Get(ctx context.Context) (*domain.CompanySettings, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	settings, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.Default(s.clock.Now(ctx))
		if err := s.repo.Insert(ctx, s.db, settings); err != nil {
			return nil, err
		}
		s.log.Info("created default company settings")
	}

	s.toCache(ctx, settings)
	return settings, nil
}

func (s *Service) Update(ctx context.Context, patch domain.Patch) (*domain.CompanySettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	patch.Apply(settings, s.clock.Now(ctx))
	if err := s.repo.Update(ctx, s.db, settings); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return settings, nil
}

func (s *Service) TaxConfig(ctx context.Context) domain.TaxConfig {
	settings, err := s.Get(ctx)
	if err != nil || settings == nil {
		s.log.Warn("company settings unavailable, using fallback tax config", zap.Error(err))
		return domain.FallbackTaxConfig()
	}
	tax := settings.Tax.Data()
	return domain.TaxConfig{Rate: tax.Rate, Enabled: tax.Enabled}
}

func (s *Service) fromCache(ctx context.Context) *domain.CompanySettings {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}
	var settings domain.CompanySettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil
	}
	return &settings
}

func (s *Service) toCache(ctx context.Context, settings *domain.CompanySettings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.log.Warn("caching company settings failed", zap.Error(err))
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.log.Warn("invalidating settings cache failed", zap.Error(err))
	}
}
