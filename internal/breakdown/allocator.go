package breakdown

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAllocation is returned when an Allocator cannot supply row storage.
var ErrAllocation = errors.New("row storage allocation failed")

// InitialCapacity is the number of rows a new ledger reserves.
const InitialCapacity = 64

// Allocator supplies row storage to ledgers. Alloc returns an empty slice
// with capacity n; Grow returns a slice holding rows with capacity n; Release
// takes back storage the ledger no longer needs.
type Allocator interface {
	Alloc(n int) ([]Row, error)
	Grow(rows []Row, n int) ([]Row, error)
	Release(rows []Row)
}

// HeapAllocator uses ordinary Go allocation and never fails.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(n int) ([]Row, error) {
	return make([]Row, 0, n), nil
}

func (HeapAllocator) Grow(rows []Row, n int) ([]Row, error) {
	out := make([]Row, len(rows), n)
	copy(out, rows)
	return out, nil
}

func (HeapAllocator) Release([]Row) {}

// LimitAllocator caps the total row capacity outstanding across every ledger
// it serves. It is safe for concurrent use.
type LimitAllocator struct {
	mu    sync.Mutex
	max   int
	inUse int
	heap  HeapAllocator
}

// NewLimitAllocator returns an allocator that refuses to hand out more than
// max rows of capacity at once.
func NewLimitAllocator(max int) *LimitAllocator {
	return &LimitAllocator{max: max}
}

func (a *LimitAllocator) Alloc(n int) ([]Row, error) {
	if err := a.reserve(n); err != nil {
		return nil, err
	}
	return a.heap.Alloc(n)
}

func (a *LimitAllocator) Grow(rows []Row, n int) ([]Row, error) {
	if err := a.reserve(n - cap(rows)); err != nil {
		return nil, err
	}
	return a.heap.Grow(rows, n)
}

func (a *LimitAllocator) Release(rows []Row) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inUse -= cap(rows)
	if a.inUse < 0 {
		a.inUse = 0
	}
}

// InUse reports the row capacity currently handed out.
func (a *LimitAllocator) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

func (a *LimitAllocator) reserve(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inUse+n > a.max {
		return fmt.Errorf("%w: %d rows requested, %d of %d in use", ErrAllocation, n, a.inUse, a.max)
	}
	a.inUse += n
	return nil
}
