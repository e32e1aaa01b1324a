package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/addon/domain"
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
		log:   p.Log.Named("addon.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.AdditionalService, error) {
	serviceID := strings.TrimSpace(req.ServiceID)
	if serviceID == "" {
		return nil, domain.ErrInvalidID
	}

	existing, err := s.repo.FindByServiceID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateID
	}

	priceType := req.PriceType
	if priceType == "" {
		priceType = domain.PriceFixed
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now(ctx)
	service := &domain.AdditionalService{
		ID:          s.genID.Generate(),
		ServiceID:   serviceID,
		CategoryID:  req.CategoryID,
		Name:        datatypes.NewJSONType(req.Name),
		Description: datatypes.NewJSONType(req.Description),
		Price:       req.Price,
		PriceType:   priceType,
		HourlyRate:  req.HourlyRate,
		Active:      active,
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.AdditionalService, error) {
	service, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	return service, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.AdditionalService, error) {
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Update(ctx context.Context, ref string, patch domain.Patch) (*domain.AdditionalService, error) {
	service, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	patch.Apply(service, s.clock.Now(ctx))
	if err := s.repo.Update(ctx, s.db, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	service, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, service.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, ref string) (*domain.AdditionalService, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		service, err := s.repo.FindByID(ctx, s.db, snowflake.ID(id))
		if err != nil {
			return nil, err
		}
		if service != nil {
			return service, nil
		}
	}
	return s.repo.FindByServiceID(ctx, s.db, ref)
}
