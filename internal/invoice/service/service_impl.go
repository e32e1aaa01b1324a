package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/clock"
	customerdomain "github.com/mazisel/umzug/internal/customer/domain"
	"github.com/mazisel/umzug/internal/invoice/domain"
	"github.com/mazisel/umzug/internal/qrbill"
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

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Customers customerdomain.Repository
	Sequence  seqdomain.Service
	Settings  settingsdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	customers customerdomain.Repository
	sequence  seqdomain.Service
	settings  settingsdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		customers: p.Customers,
		sequence:  p.Sequence,
		settings:  p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Invoice, error) {
	if err := qrbill.Validate(req.QRBill); err != nil {
		return nil, err
	}

	number, err := s.sequence.NextNumber(ctx, seqdomain.Invoice)
	if err != nil {
		return nil, err
	}

	taxRate := s.settings.TaxConfig(ctx).Rate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	totals := domain.Recalculate(req.Items, taxRate)

	now := s.clock.Now(ctx)
	invoice := &domain.Invoice{
		ID:            s.genID.Generate(),
		InvoiceNumber: number,
		OfferID:       parseID(req.OfferID),
		CustomerID:    parseID(req.CustomerID),
		Status:        domain.StatusDraft,
		Items:         datatypes.NewJSONSlice(req.Items),
		Subtotal:      totals.Subtotal,
		TaxRate:       taxRate,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		Currency:      "CHF",
		DueDate:       req.DueDate,
		QRBill:        datatypes.NewJSONType(req.QRBill),
		Notes:         req.Notes,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, invoice); err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.Total.String()))
	return invoice, nil
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.Invoice, error) {
	invoice, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	return s.repo.List(ctx, s.db, filter, page)
}

func (s *Service) Update(ctx context.Context, ref string, patch domain.Patch) (*domain.Invoice, error) {
	if patch.Status != nil {
		switch *patch.Status {
		case domain.StatusDraft, domain.StatusSent, domain.StatusPaid, domain.StatusOverdue, domain.StatusCancelled:
		default:
			return nil, domain.ErrInvalidStatus
		}
	}
	if patch.QRBill != nil {
		if err := qrbill.Validate(patch.QRBill); err != nil {
			return nil, err
		}
	}

	invoice, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	patch.Apply(invoice, s.clock.Now(ctx))
	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	invoice, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, invoice.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// GenerateQRBill builds the payment slip for the invoice's current total.
// The creditor side comes from company settings (bank IBAN plus the main
// address), the debtor side from the linked customer when one exists.
func (s *Service) GenerateQRBill(ctx context.Context, ref string) (*qrbill.Data, error) {
	invoice, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	company, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	creditor := qrbill.Creditor{
		IBAN: company.Bank.Data().IBAN,
		Name: company.CompanyName,
	}
	if addresses := []settingsdomain.Address(company.Addresses); len(addresses) > 0 {
		main := addresses[0]
		creditor.Address = main.Street
		creditor.City = main.City
		creditor.ZipCode = main.ZipCode
		creditor.Country = main.Country
	}

	debtor, err := s.debtor(ctx, invoice)
	if err != nil {
		return nil, err
	}

	data, err := qrbill.Build(creditor, debtor, invoice.Total, invoice.Currency, "")
	if err != nil {
		return nil, err
	}

	invoice.QRBill = datatypes.NewJSONType(data)
	invoice.UpdatedAt = s.clock.Now(ctx)
	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Service) debtor(ctx context.Context, invoice *domain.Invoice) (*qrbill.Debtor, error) {
	if invoice.CustomerID == nil {
		return nil, nil
	}

	customer, err := s.customers.FindByID(ctx, s.db, *invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		// Stale link; the slip is still valid without a debtor block.
		s.log.Warn("invoice references a missing customer",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.String("customer_id", invoice.CustomerID.String()))
		return nil, nil
	}

	address := customer.Address.Data()
	return &qrbill.Debtor{
		Name:    strings.TrimSpace(customer.FirstName + " " + customer.LastName),
		Address: address.Street,
		City:    address.City,
		ZipCode: address.ZipCode,
	}, nil
}

func (s *Service) resolve(ctx context.Context, ref string) (*domain.Invoice, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		invoice, err := s.repo.FindByID(ctx, s.db, snowflake.ID(id))
		if err != nil {
			return nil, err
		}
		if invoice != nil {
			return invoice, nil
		}
	}
	return s.repo.FindByNumber(ctx, s.db, ref)
}

func parseID(raw *string) *snowflake.ID {
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
