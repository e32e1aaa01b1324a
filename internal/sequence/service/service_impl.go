package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/sequence/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Config   config.Config
	Repo     domain.Repository
	Registry *prometheus.Registry `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	maxAttempts  int
	retryBackoff time.Duration

	allocations *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
}

func New(p Params) domain.Service {
	maxAttempts := p.Config.Sequence.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	s := &Service{
		db:           p.DB,
		log:          p.Log.Named("sequence.service"),
		repo:         p.Repo,
		maxAttempts:  maxAttempts,
		retryBackoff: p.Config.Sequence.RetryBackoff,
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "umzug_sequence_allocations_total",
			Help: "Business numbers handed out, per domain.",
		}, []string{"domain"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "umzug_sequence_allocation_conflicts_total",
			Help: "Compare-and-swap conflicts during allocation, per domain.",
		}, []string{"domain"}),
	}

	if p.Registry != nil {
		p.Registry.MustRegister(s.allocations, s.conflicts)
	}

	return s
}

// NextNumber advances the domain counter through a bounded compare-and-swap
// loop. The first allocation for a domain seeds the counter from the highest
// business number already assigned in the domain's table; an empty table or
// an unparseable stored number degrades to the domain's start value.
func (s *Service) NextNumber(ctx context.Context, d domain.Domain) (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 && s.retryBackoff > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.retryBackoff):
			}
		}

		counter, err := s.repo.FindCounter(ctx, s.db, d.Name)
		if err != nil {
			return "", err
		}

		if counter == nil {
			next := s.seedValue(ctx, d) + 1
			insertErr := s.repo.InsertCounter(ctx, s.db, &domain.Counter{
				Name:      d.Name,
				LastValue: next,
				UpdatedAt: time.Now().UTC(),
			})
			if insertErr == nil {
				s.allocations.WithLabelValues(d.Name).Inc()
				return d.Format(next), nil
			}
			// Another request created the counter first; re-read and swap.
			s.conflicts.WithLabelValues(d.Name).Inc()
			continue
		}

		next := counter.LastValue + 1
		ok, err := s.repo.CompareAndSwap(ctx, s.db, d.Name, counter.LastValue, next)
		if err != nil {
			return "", err
		}
		if ok {
			s.allocations.WithLabelValues(d.Name).Inc()
			return d.Format(next), nil
		}
		s.conflicts.WithLabelValues(d.Name).Inc()
	}

	s.log.Warn("sequence allocation retries exhausted", zap.String("domain", d.Name))
	return "", domain.ErrAllocationConflict
}

func (s *Service) seedValue(ctx context.Context, d domain.Domain) int64 {
	seed := d.Start - 1

	raw, err := s.repo.MaxAssigned(ctx, s.db, d)
	if err != nil {
		s.log.Warn("reading highest assigned number failed, using start value",
			zap.String("domain", d.Name), zap.Error(err))
		return seed
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return seed
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Corrupted or manually edited record: degrade to the start value
		// rather than blocking allocation.
		s.log.Warn("stored business number is not numeric, using start value",
			zap.String("domain", d.Name), zap.String("value", raw))
		return seed
	}
	if n > seed {
		seed = n
	}
	return seed
}
