// Package bootstrap composes the full service graph. Transports embed
// Module and add their own surface on top.
package bootstrap

import (
	"github.com/mazisel/umzug/internal/addon"
	"github.com/mazisel/umzug/internal/category"
	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/customer"
	"github.com/mazisel/umzug/internal/invoice"
	"github.com/mazisel/umzug/internal/metrics"
	"github.com/mazisel/umzug/internal/offer"
	"github.com/mazisel/umzug/internal/redis"
	"github.com/mazisel/umzug/internal/sequence"
	"github.com/mazisel/umzug/internal/settings"
	"go.uber.org/fx"
)

var Module = fx.Module("bootstrap",
	clock.Module,
	redis.Module,
	metrics.Module,
	sequence.Module,
	settings.Module,
	customer.Module,
	category.Module,
	addon.Module,
	offer.Module,
	invoice.Module,
)
