package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/customer/domain"
	seqdomain "github.com/mazisel/umzug/internal/sequence/domain"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Sequences seqdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	sequences seqdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		sequences: p.Sequences,
	}
}

func (s *Service) NextNumber(ctx context.Context) (string, error) {
	return s.sequences.NextNumber(ctx, seqdomain.Customer)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Customer, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, domain.ErrInvalidName
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, domain.ErrInvalidEmail
	}

	number, err := s.sequences.NextNumber(ctx, seqdomain.Customer)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	customer := &domain.Customer{
		ID:             s.genID.Generate(),
		CustomerNumber: number,
		Salutation:     req.Salutation,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        datatypes.NewJSONType(req.Address),
		Notes:          req.Notes,
		Active:         true,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, customer); err != nil {
		return nil, err
	}

	s.log.Info("customer created",
		zap.String("customer_number", customer.CustomerNumber),
		zap.Int64("id", customer.ID.Int64()))
	return customer, nil
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.Customer, error) {
	customer, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Customer, error) {
	return s.repo.List(ctx, s.db, filter, page)
}

func (s *Service) Update(ctx context.Context, ref string, patch domain.Patch) (*domain.Customer, error) {
	customer, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	patch.Apply(customer, s.clock.Now(ctx))
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	customer, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, customer.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, ref string) (*domain.Customer, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		customer, err := s.repo.FindByID(ctx, s.db, snowflake.ID(id))
		if err != nil {
			return nil, err
		}
		if customer != nil {
			return customer, nil
		}
	}
	return s.repo.FindByNumber(ctx, s.db, ref)
}
