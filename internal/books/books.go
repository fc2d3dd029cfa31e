// Package books implements the bookkeeping core: tenant-scoped catalog
// access, the transaction recorder with its denormalized snapshots, report
// aggregation, quote composition and the company profile.
package books

import (
	"time"

	"github.com/cadernoapp/caderno/internal/tenant"
)

// ReferenceResolution says what the recorder and quote composer do when a
// referenced catalog entry is missing at write time.
type ReferenceResolution int

const (
	// AllowDangling substitutes a sentinel name so historical records are
	// never blocked by a dangling reference. This matches the data already
	// in production stores.
	AllowDangling ReferenceResolution = iota
	// Strict propagates the lookup miss instead.
	Strict
)

// DeletePolicy says whether catalog entries with transaction history may be
// deleted.
type DeletePolicy int

const (
	// DeleteBlockIfReferenced refuses to delete a client or service type
	// that existing service records reference.
	DeleteBlockIfReferenced DeletePolicy = iota
	// DeleteUnconditional removes the entry regardless of history; the
	// records keep their denormalized snapshots.
	DeleteUnconditional
)

// Service is the per-request bookkeeping facade over one tenant's scope.
type Service struct {
	scope        *tenant.Scope
	deletePolicy DeletePolicy
	refs         ReferenceResolution
	now          func() time.Time
}

type Option func(*Service)

func WithDeletePolicy(p DeletePolicy) Option {
	return func(s *Service) { s.deletePolicy = p }
}

func WithReferenceResolution(r ReferenceResolution) Option {
	return func(s *Service) { s.refs = r }
}

// WithClock overrides the time source. Tests use it to pin aggregation
// defaults and quote numbers.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(scope *tenant.Scope, opts ...Option) *Service {
	s := &Service{
		scope:        scope,
		deletePolicy: DeleteBlockIfReferenced,
		refs:         AllowDangling,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
