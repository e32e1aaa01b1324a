package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/mazisel/umzug/internal/category/domain"
	"github.com/mazisel/umzug/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.ServiceCategory, error) {
	categoryID := strings.TrimSpace(req.CategoryID)
	if categoryID == "" {
		// German transliteration so Möbeltransport becomes moebeltransport.
		categoryID = slug.MakeLang(displayName(req.Name), "de")
	}
	if categoryID == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByCategoryID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateID
	}

	icon := req.Icon
	if icon == "" {
		icon = "package"
	}
	pricingModel := req.PricingModel
	if pricingModel == "" {
		pricingModel = domain.PricingCustom
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now(ctx)
	category := &domain.ServiceCategory{
		ID:           s.genID.Generate(),
		CategoryID:   categoryID,
		Name:         datatypes.NewJSONType(req.Name),
		Description:  datatypes.NewJSONType(req.Description),
		Icon:         icon,
		Active:       active,
		PricingModel: pricingModel,
		BasePrice:    req.BasePrice,
		HourlyRate:   req.HourlyRate,
		FormFields:   datatypes.NewJSONSlice(req.FormFields),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.ServiceCategory, error) {
	category, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.ServiceCategory, error) {
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Update(ctx context.Context, ref string, patch domain.Patch) (*domain.ServiceCategory, error) {
	category, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	patch.Apply(category, s.clock.Now(ctx))
	if err := s.repo.Update(ctx, s.db, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	category, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, category.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, ref string) (*domain.ServiceCategory, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		category, err := s.repo.FindByID(ctx, s.db, snowflake.ID(id))
		if err != nil {
			return nil, err
		}
		if category != nil {
			return category, nil
		}
	}
	return s.repo.FindByCategoryID(ctx, s.db, ref)
}

func displayName(name map[string]string) string {
	if v, ok := name["de"]; ok && v != "" {
		return v
	}
	if v, ok := name["en"]; ok && v != "" {
		return v
	}
	for _, v := range name {
		if v != "" {
			return v
		}
	}
	return ""
}
