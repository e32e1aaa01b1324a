package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/offer/domain"
	"github.com/mazisel/umzug/internal/pricing"
	seqdomain "github.com/mazisel/umzug/internal/sequence/domain"
	settingsdomain "github.com/mazisel/umzug/internal/settings/domain"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Sequence seqdomain.Service
	Settings settingsdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	sequence seqdomain.Service
	settings settingsdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("offer.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		sequence: p.Sequence,
		settings: p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Offer, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, domain.ErrInvalidCategory
	}

	number, err := s.sequence.NextNumber(ctx, seqdomain.Offer)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "de"
	}
	details := req.ServiceDetails
	if details.Workers == 0 {
		details.Workers = 2
	}
	if details.Trucks == 0 {
		details.Trucks = 1
	}

	breakdown := s.compute(ctx, req.Pricing)

	now := s.clock.Now(ctx)
	offer := &domain.Offer{
		ID:                 s.genID.Generate(),
		OfferNumber:        number,
		CustomerID:         parseCustomerID(req.CustomerID),
		Status:             domain.StatusDraft,
		Category:           category,
		Language:           language,
		Customer:           datatypes.NewJSONType(req.Customer),
		CurrentLocation:    datatypes.NewJSONType(req.CurrentLocation),
		NewLocation:        datatypes.NewJSONType(req.NewLocation),
		ServiceDetails:     datatypes.NewJSONType(details),
		AdditionalServices: datatypes.NewJSONSlice(req.Pricing.AdditionalServices),
		Pricing:            datatypes.NewJSONType(breakdown),
		Notes:              req.Notes,
		ContactPerson:      req.ContactPerson,
		CreatedBy:          req.CreatedBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, offer); err != nil {
		return nil, err
	}

	s.log.Info("offer created",
		zap.String("offer_number", offer.OfferNumber),
		zap.String("category", offer.Category),
		zap.String("total", breakdown.Total.String()))
	return offer, nil
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.Offer, error) {
	offer, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	return offer, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Offer, error) {
	return s.repo.List(ctx, s.db, filter, page)
}

func (s *Service) Update(ctx context.Context, ref string, patch domain.Patch) (*domain.Offer, error) {
	if patch.Status != nil {
		switch *patch.Status {
		case domain.StatusDraft, domain.StatusSent, domain.StatusAccepted, domain.StatusRejected:
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	offer, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	patch.Apply(offer, s.clock.Now(ctx))
	if err := s.repo.Update(ctx, s.db, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	offer, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, offer.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// CalculatePricing recomputes the breakdown and persists it on the offer.
// Concurrent recalculations of the same offer are last-write-wins.
func (s *Service) CalculatePricing(ctx context.Context, ref string, input domain.PricingInput) (*pricing.Breakdown, error) {
	offer, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	breakdown := s.compute(ctx, input)
	offer.AdditionalServices = datatypes.NewJSONSlice(input.AdditionalServices)
	offer.Pricing = datatypes.NewJSONType(breakdown)
	offer.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, offer); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (s *Service) compute(ctx context.Context, input domain.PricingInput) pricing.Breakdown {
	tax := s.settings.TaxConfig(ctx)
	return pricing.Compute(input.BasePrice, input.AdditionalServices, input.Discount, tax.Rate, tax.Enabled)
}

func (s *Service) resolve(ctx context.Context, ref string) (*domain.Offer, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		offer, err := s.repo.FindByID(ctx, s.db, snowflake.ID(id))
		if err != nil {
			return nil, err
		}
		if offer != nil {
			return offer, nil
		}
	}
	return s.repo.FindByNumber(ctx, s.db, ref)
}

func parseCustomerID(raw *string) *snowflake.ID {
	if raw == nil {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 64)
	if err != nil {
		return nil
	}
	sid := snowflake.ID(id)
	return &sid
}
