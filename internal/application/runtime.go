package application

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/brintopos/brintopos/internal/domain/access"
	"github.com/brintopos/brintopos/internal/domain/catalog"
	"github.com/brintopos/brintopos/internal/domain/ledger"
)

// Runtime is the shared state of one till process: menu, ledger, pricing
// and access gates. Build it once and hand it to every adapter.
type Runtime struct {
	Config  domain.POSConfig
	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger
	Pricing domain.PricingPolicy
	Gates   access.Set
	Clock   domain.Clock
	Log     logrus.FieldLogger
}

// Option customizes NewRuntime.
type Option func(*runtimeOptions)

type runtimeOptions struct {
	clock    domain.Clock
	log      logrus.FieldLogger
	gateCost int
}

func WithClock(c domain.Clock) Option { return func(o *runtimeOptions) { o.clock = c } }

func WithLogger(l logrus.FieldLogger) Option { return func(o *runtimeOptions) { o.log = l } }

// WithGateCost sets the bcrypt cost used to hash gate credentials.
func WithGateCost(cost int) Option { return func(o *runtimeOptions) { o.gateCost = cost } }

// NewRuntime wires the core from configuration.
func NewRuntime(cfg domain.POSConfig, ids domain.IDGenerator, opts ...Option) (*Runtime, error) {
	o := runtimeOptions{
		clock:    domain.SystemClock{},
		log:      logrus.StandardLogger(),
		gateCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(&o)
	}

	pricing, err := cfg.PricingPolicy()
	if err != nil {
		return nil, fmt.Errorf("building pricing policy: %w", err)
	}

	items, err := cfg.MenuItems()
	if err != nil {
		return nil, fmt.Errorf("loading menu: %w", err)
	}
	cat, err := catalog.New(items)
	if err != nil {
		return nil, fmt.Errorf("seeding menu: %w", err)
	}

	gates, err := access.NewSet(cfg.Credentials, o.gateCost)
	if err != nil {
		return nil, fmt.Errorf("building access gates: %w", err)
	}

	rt := &Runtime{
		Config:  cfg,
		Catalog: cat,
		Ledger:  ledger.New(ids, o.clock, gates.Void),
		Pricing: pricing,
		Gates:   gates,
		Clock:   o.clock,
		Log:     o.log,
	}
	rt.Log.WithFields(logrus.Fields{
		"menu_items": cat.Len(),
		"tax_label":  pricing.Label,
		"tax_rate":   pricing.Rate.String(),
	}).Debug("till runtime ready")
	return rt, nil
}

// DefaultTable is the table a fresh order starts on.
func (rt *Runtime) DefaultTable() int {
	if rt.Config.Till.DefaultTable < 1 {
		return 1
	}
	return rt.Config.Till.DefaultTable
}
