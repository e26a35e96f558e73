// Package alloc is the allocation seam for the handle layer: zeroed typed
// storage plus in-place lifecycle hooks, rebindable across element types
// through runtime type identity. The default implementation is the Go heap;
// OffHeap and Arrow place pointer-free types outside the collector's reach.
package alloc

import (
	"errors"
	"reflect"
	"unsafe"
)

var (
	ErrPointerType = errors.New("alloc: type contains pointers, unscanned storage unavailable")
)

// Allocator is the minimal allocator contract: allocate, construct,
// destroy, deallocate. One Allocator value serves every element type; the
// reflect.Type argument rebinds it between value and block types while
// preserving its configuration.
type Allocator interface {
	// Allocate returns zeroed storage for one value of type t.
	Allocate(t reflect.Type) (unsafe.Pointer, error)

	// Construct marks the value of type t at p as live. Callers write the
	// value through a typed pointer before or after; Construct exists so
	// wrappers can observe lifetimes.
	Construct(t reflect.Type, p unsafe.Pointer)

	// Destroy ends the lifetime of the value of type t at p, zeroing it so
	// anything it referenced can be reclaimed while the storage stays
	// allocated.
	Destroy(t reflect.Type, p unsafe.Pointer)

	// Deallocate frees storage previously returned by Allocate for t.
	Deallocate(t reflect.Type, p unsafe.Pointer)
}

// Default is used wherever no allocator is supplied.
var Default Allocator = Heap{}

// Heap allocates from the Go heap. Deallocate is a no-op; the collector
// reclaims storage once the last handle drops it.
type Heap struct{}

func (Heap) Allocate(t reflect.Type) (unsafe.Pointer, error) {
	return reflect.New(t).UnsafePointer(), nil
}

func (Heap) Construct(t reflect.Type, p unsafe.Pointer) {}

func (Heap) Destroy(t reflect.Type, p unsafe.Pointer) {
	zero(t, p)
}

func (Heap) Deallocate(t reflect.Type, p unsafe.Pointer) {}

// TypeOf returns the reflect.Type of T without needing an instance.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// New allocates zeroed storage for a T from a and returns a typed pointer.
func New[T any](a Allocator) (*T, error) {
	if a == nil {
		a = Default
	}
	t := TypeOf[T]()
	p, err := a.Allocate(t)
	if err != nil {
		return nil, err
	}
	a.Construct(t, p)
	return (*T)(p), nil
}

// Free destroys and deallocates a value previously obtained from New with
// the same allocator.
func Free[T any](a Allocator, ptr *T) {
	if ptr == nil {
		return
	}
	if a == nil {
		a = Default
	}
	t := TypeOf[T]()
	a.Destroy(t, unsafe.Pointer(ptr))
	a.Deallocate(t, unsafe.Pointer(ptr))
}

// zero performs a typed clear of the value of type t at p.
func zero(t reflect.Type, p unsafe.Pointer) {
	reflect.NewAt(t, p).Elem().Set(reflect.Zero(t))
}
