package alloc

import (
	"reflect"
	"unsafe"

	logger "github.com/moontrade/log"
	"github.com/moontrade/shared/pkg/counter"
)

// Stats counts allocator activity.
type Stats struct {
	Allocates   counter.Counter
	Deallocates counter.Counter
	Constructs  counter.Counter
	Destroys    counter.Counter
}

// Counting wraps another Allocator and counts every call. Harnesses inject
// it to verify allocate/deallocate and construct/destroy balance; the
// handle layer itself carries no counters.
type Counting struct {
	Stats
	inner Allocator
}

func NewCounting(inner Allocator) *Counting {
	if inner == nil {
		inner = Default
	}
	return &Counting{inner: inner}
}

func (c *Counting) Inner() Allocator { return c.inner }

func (c *Counting) Allocate(t reflect.Type) (unsafe.Pointer, error) {
	p, err := c.inner.Allocate(t)
	if err != nil {
		return nil, err
	}
	c.Allocates.Incr()
	return p, nil
}

func (c *Counting) Construct(t reflect.Type, p unsafe.Pointer) {
	c.Constructs.Incr()
	c.inner.Construct(t, p)
}

func (c *Counting) Destroy(t reflect.Type, p unsafe.Pointer) {
	c.Destroys.Incr()
	c.inner.Destroy(t, p)
}

func (c *Counting) Deallocate(t reflect.Type, p unsafe.Pointer) {
	c.Deallocates.Incr()
	c.inner.Deallocate(t, p)
}

// Balanced reports whether every Allocate was matched by a Deallocate and
// every Construct by a Destroy.
func (c *Counting) Balanced() bool {
	return c.Allocates.Load() == c.Deallocates.Load() &&
		c.Constructs.Load() == c.Destroys.Load()
}

// CheckLeaks logs any imbalance and reports whether the allocator is clean.
func (c *Counting) CheckLeaks() bool {
	allocs, deallocs := c.Allocates.Load(), c.Deallocates.Load()
	ctors, dtors := c.Constructs.Load(), c.Destroys.Load()
	clean := true
	if allocs != deallocs {
		logger.Warn("alloc: %d allocations outstanding (%d allocated, %d freed)",
			allocs-deallocs, allocs, deallocs)
		clean = false
	}
	if ctors != dtors {
		logger.Warn("alloc: %d values outstanding (%d constructed, %d destroyed)",
			ctors-dtors, ctors, dtors)
		clean = false
	}
	return clean
}
