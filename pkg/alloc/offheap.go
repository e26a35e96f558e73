package alloc

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/moontrade/shared/pkg/pmath"
	"github.com/moontrade/unsafe/memory"
)

// OffHeap allocates pointer-free types from the C heap, invisible to the
// collector. Types that carry pointers cannot live there, so by default
// they fall back to the Go heap; Strict turns the fallback into an error.
//
// Go heap fallbacks keep the allocate/deallocate pairing, the C heap leg
// pairs memory.Alloc with memory.Free.
type OffHeap struct {
	Strict bool
}

func (o OffHeap) Allocate(t reflect.Type) (unsafe.Pointer, error) {
	if HasPointers(t) {
		if o.Strict {
			return nil, fmt.Errorf("%w: %s", ErrPointerType, t)
		}
		return reflect.New(t).UnsafePointer(), nil
	}
	size := pmath.CeilTo(t.Size(), 8)
	if size == 0 {
		size = 8
	}
	p := memory.Alloc(size).Unsafe()
	memory.Zero(p, size)
	return p, nil
}

func (OffHeap) Construct(t reflect.Type, p unsafe.Pointer) {}

func (OffHeap) Destroy(t reflect.Type, p unsafe.Pointer) {
	if HasPointers(t) {
		zero(t, p)
		return
	}
	memory.Zero(p, t.Size())
}

func (OffHeap) Deallocate(t reflect.Type, p unsafe.Pointer) {
	if HasPointers(t) {
		return
	}
	memory.Free(memory.Pointer(p))
}
