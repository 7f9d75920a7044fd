// Package calc runs the tax engines. A Context carries everything an engine
// needs besides its input: the table set, the row allocator, the text policy,
// a logger and the last-error slot.
package calc

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/taxtable"
)

const version = "0.1a"

// Version returns the engine version string.
func Version() string { return version }

const noError = "No error"

// Context is safe for concurrent use. Engines read its settings once per
// calculation.
type Context struct {
	mu      sync.Mutex
	lastErr error
	alloc   breakdown.Allocator
	policy  breakdown.TextPolicy
	tables  *taxtable.Set
	log     *zap.Logger
}

// Option configures a Context.
type Option func(*Context)

func WithAllocator(a breakdown.Allocator) Option {
	return func(c *Context) {
		if a != nil {
			c.alloc = a
		}
	}
}

func WithTextPolicy(p breakdown.TextPolicy) Option {
	return func(c *Context) {
		if p != "" {
			c.policy = p
		}
	}
}

func WithTables(s *taxtable.Set) Option {
	return func(c *Context) {
		if s != nil {
			c.tables = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a Context using the statutory tables, heap row storage and
// the Truncate policy unless overridden.
func New(opts ...Option) *Context {
	c := &Context{
		alloc:  breakdown.HeapAllocator{},
		policy: breakdown.Truncate,
		tables: taxtable.Default(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultContext = New()

// Default returns the process-wide Context used by callers that do not
// need their own.
func Default() *Context { return defaultContext }

// LastError describes the most recent failure on this Context, or
// "No error". A successful calculation does not clear it.
func (c *Context) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr == nil {
		return noError
	}
	return c.lastErr.Error()
}

// Err is LastError as an error value, nil when nothing has failed.
func (c *Context) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearError resets the last-error slot.
func (c *Context) ClearError() {
	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
}

// SetAllocator switches row storage for later calculations. Nil restores
// the heap allocator.
func (c *Context) SetAllocator(a breakdown.Allocator) {
	if a == nil {
		a = breakdown.HeapAllocator{}
	}
	c.mu.Lock()
	c.alloc = a
	c.mu.Unlock()
}

// Tables returns the table set engines on this Context use.
func (c *Context) Tables() *taxtable.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tables
}

// SetTables swaps the table set. Nil restores the statutory tables.
func (c *Context) SetTables(s *taxtable.Set) {
	if s == nil {
		s = taxtable.Default()
	}
	c.mu.Lock()
	c.tables = s
	c.mu.Unlock()
}

type settings struct {
	alloc  breakdown.Allocator
	policy breakdown.TextPolicy
	tables *taxtable.Set
}

func (c *Context) snapshot() settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return settings{alloc: c.alloc, policy: c.policy, tables: c.tables}
}

func (c *Context) fail(op string, err error) error {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	c.log.Debug("calculation failed", zap.String("op", op), zap.Error(err))
	return err
}

func (c *Context) begin(op string, s settings) (*breakdown.Ledger, *breakdown.Writer, error) {
	l, err := breakdown.New(s.alloc, s.policy)
	if err != nil {
		return nil, nil, c.fail(op, fmt.Errorf("%s: %w: %w", op, domain.ErrAllocationFailure, err))
	}
	return l, breakdown.NewWriter(l), nil
}

// finish releases the ledger if any row failed to be written.
func (c *Context) finish(op string, l *breakdown.Ledger, w *breakdown.Writer) (*breakdown.Ledger, error) {
	err := w.Err()
	if err == nil {
		return l, nil
	}
	l.Release()
	switch {
	case errors.Is(err, breakdown.ErrAllocation):
		err = fmt.Errorf("%s: %w: %w", op, domain.ErrAllocationFailure, err)
	case errors.Is(err, breakdown.ErrTextTooLong):
		err = fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	default:
		err = fmt.Errorf("%s: %w", op, err)
	}
	return nil, c.fail(op, err)
}

func nilInput(op string) error {
	return fmt.Errorf("%s: %w: input is nil", op, domain.ErrInvalidInput)
}
