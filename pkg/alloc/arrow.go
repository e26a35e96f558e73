package alloc

import (
	"fmt"
	"reflect"
	"unsafe"

	arrowmem "github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/moontrade/shared/pkg/spinlock"
)

// Arrow adapts an Apache Arrow memory.Allocator to the Allocator contract.
// Arrow hands out untyped byte buffers the collector does not scan, so the
// same pointer rules as OffHeap apply: pointer-carrying types fall back to
// the Go heap unless Strict is set.
//
// Freeing requires the original buffer, so live off-Go-heap allocations are
// tracked in a small table.
type Arrow struct {
	mem    arrowmem.Allocator
	strict bool
	mu     spinlock.Mutex
	bufs   map[unsafe.Pointer][]byte
}

func NewArrow(mem arrowmem.Allocator) *Arrow {
	if mem == nil {
		mem = arrowmem.DefaultAllocator
	}
	return &Arrow{mem: mem, bufs: make(map[unsafe.Pointer][]byte)}
}

// NewArrowStrict is NewArrow but pointer-carrying types fail to allocate
// instead of falling back to the Go heap.
func NewArrowStrict(mem arrowmem.Allocator) *Arrow {
	a := NewArrow(mem)
	a.strict = true
	return a
}

func (a *Arrow) Allocate(t reflect.Type) (unsafe.Pointer, error) {
	if HasPointers(t) {
		if a.strict {
			return nil, fmt.Errorf("%w: %s", ErrPointerType, t)
		}
		return reflect.New(t).UnsafePointer(), nil
	}
	size := int(t.Size())
	if size == 0 {
		size = 1
	}
	buf := a.mem.Allocate(size)
	for i := range buf {
		buf[i] = 0
	}
	p := unsafe.Pointer(&buf[0])
	a.mu.Lock()
	a.bufs[p] = buf
	a.mu.Unlock()
	return p, nil
}

func (a *Arrow) Construct(t reflect.Type, p unsafe.Pointer) {}

func (a *Arrow) Destroy(t reflect.Type, p unsafe.Pointer) {
	if HasPointers(t) {
		zero(t, p)
		return
	}
	b := unsafe.Slice((*byte)(p), t.Size())
	for i := range b {
		b[i] = 0
	}
}

func (a *Arrow) Deallocate(t reflect.Type, p unsafe.Pointer) {
	a.mu.Lock()
	buf, ok := a.bufs[p]
	delete(a.bufs, p)
	a.mu.Unlock()
	if ok {
		a.mem.Free(buf)
	}
}

// Outstanding returns the number of live arrow-backed allocations.
func (a *Arrow) Outstanding() int {
	a.mu.Lock()
	n := len(a.bufs)
	a.mu.Unlock()
	return n
}
