// Package registry maintains the table of named units.
//
// A Registry starts empty (PhaseUninitialized). Bootstrap populates it once
// with the SI base units, the derived SI units, their engineering-prefixed
// variants and a few angle and time conveniences, after which it is
// PhaseLive and accepts further AddUnit and AddPrefixed calls indefinitely.
// Entries are never removed and a name can never be redefined.
//
// Every derived entry, including the bootstrap data, is defined through the
// same restricted expression grammar used by Resolve.
//
// Thread Safety: reads (Resolve, Lookup, Names, ...) may run concurrently.
// Mutations hold an exclusive lock for the whole check-then-insert, so
// concurrent registration is safe.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/physical-quantities/units/internal/expr"
	strutil "github.com/physical-quantities/units/internal/util/strings"
	"github.com/physical-quantities/units/pkg/unit"
)

// ErrInvalidName is returned when a unit or constant name is not a single
// identifier and therefore could never be referenced from an expression.
var ErrInvalidName = errors.New("registry: invalid unit name")

// Phase is the lifecycle state of a Registry.
type Phase int

const (
	// PhaseUninitialized is the state before Bootstrap has run.
	PhaseUninitialized Phase = iota
	// PhaseLive is the state after Bootstrap completed.
	PhaseLive
)

// String returns the string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLive:
		return "live"
	default:
		return "unknown"
	}
}

// Registry maps canonical names to units.
type Registry struct {
	mu        sync.RWMutex
	units     map[string]unit.Unit
	order     []string // registration order of units
	constants map[string]float64
	phase     Phase
	logger    *zap.Logger

	bootOnce sync.Once
	bootErr  error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns an empty, uninitialized registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		units:     make(map[string]unit.Unit),
		constants: make(map[string]float64),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewBootstrapped returns a registry on which Bootstrap has completed.
func NewBootstrapped(opts ...Option) (*Registry, error) {
	r := New(opts...)
	if err := r.Bootstrap(); err != nil {
		return nil, err
	}
	return r, nil
}

// Phase returns the current lifecycle phase.
func (r *Registry) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

// Resolve normalizes and evaluates text against the registry. A bare
// registered name yields the registry's own unit, metadata included.
func (r *Registry) Resolve(text string) (unit.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.units[unit.Normalize(text)]; ok {
		return u, nil
	}
	return expr.EvaluateUnit(text, tableScope{r})
}

// Lookup returns the unit registered under name.
func (r *Registry) Lookup(name string) (unit.Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[name]
	return u, ok
}

// Constant returns the value of a named constant such as pi.
func (r *Registry) Constant(name string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.constants[name]
	return v, ok
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

// Names returns every registered unit name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Units returns registered units in registration order, optionally
// including prefixed variants.
func (r *Registry) Units(includePrefixed bool) []unit.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]unit.Unit, 0, len(r.order))
	for _, name := range r.order {
		u := r.units[name]
		if u.Prefixed && !includePrefixed {
			continue
		}
		out = append(out, u)
	}
	return out
}

// List returns the names of all non-prefixed units in registration order.
func (r *Registry) List() []string {
	units := r.Units(false)
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name()
	}
	return names
}

// Suggest returns registered names close to token.
func (r *Registry) Suggest(token string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.suggestLocked(token)
}

func (r *Registry) suggestLocked(token string) []string {
	return strutil.FindSimilar(token, r.order, nil)
}

// AddConstant registers a named dimensionless number usable in expressions.
func (r *Registry) AddConstant(name string, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkNameLocked(name); err != nil {
		return fmt.Errorf("add constant: %w", err)
	}
	r.constants[name] = value
	r.logger.Debug("constant registered", zap.String("name", name), zap.Float64("value", value))
	return nil
}

// checkNameLocked rejects malformed and already-used names. Units and
// constants share one namespace.
func (r *Registry) checkNameLocked(name string) error {
	if !isIdentifier(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if _, ok := r.units[name]; ok {
		return fmt.Errorf("%q: %w", name, unit.ErrDuplicateUnit)
	}
	if _, ok := r.constants[name]; ok {
		return fmt.Errorf("%q: %w", name, unit.ErrDuplicateUnit)
	}
	return nil
}

func (r *Registry) existsLocked(name string) bool {
	if _, ok := r.units[name]; ok {
		return true
	}
	_, ok := r.constants[name]
	return ok
}

// tableScope exposes the registry to the evaluator without locking; callers
// must already hold r.mu.
type tableScope struct {
	r *Registry
}

func (s tableScope) LookupTerm(name string) (unit.Term, bool) {
	if u, ok := s.r.units[name]; ok {
		return u, true
	}
	if v, ok := s.r.constants[name]; ok {
		return unit.Scalar(v), true
	}
	return nil, false
}

func (s tableScope) Suggest(name string) []string {
	return s.r.suggestLocked(name)
}
