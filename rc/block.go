// Package rc provides reference-counted shared-ownership handles over a
// heap value: Strong keeps the value alive, Weak observes it and can try to
// promote. No garbage-collector involvement is required for lifetime
// decisions; the value is destroyed the moment its last strong handle
// releases, and the bookkeeping block is freed once the last handle of
// either kind is gone.
//
// Counts are not synchronized. Handles sharing one block may only be
// mutated from one goroutine at a time; that serialization is the caller's
// obligation. Cycles between strong handles are never collected.
package rc

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/moontrade/shared/pkg/alloc"
)

// Deleter disposes of a raw value when its last strong handle releases.
// Invoked exactly once, only for handles built over a caller-owned pointer.
type Deleter[T any] func(*T)

// blockBase is the state every control block shares: the managed value's
// address, its concrete element type, and the two counts. The pointer is
// nilled when the value is released so handles never read a dangling value.
type blockBase struct {
	ptr    unsafe.Pointer
	typ    reflect.Type
	strong int64
	weak   int64
}

// block is the control-block contract. The release hooks are the only
// variant-specific behavior: releaseValue ends the managed value's lifetime
// when the strong count reaches zero, releaseBlock frees the block's own
// storage once both counts are zero. Dispatch is through this interface,
// never through a concrete-type downcast.
type block interface {
	base() *blockBase
	releaseValue()
	releaseBlock()
}

func (b *blockBase) base() *blockBase { return b }

func incStrong(b block) int64 {
	bb := b.base()
	bb.strong++
	return bb.strong
}

func incWeak(b block) int64 {
	bb := b.base()
	bb.weak++
	return bb.weak
}

// decStrong releases the value at the 1→0 transition and the block as well
// when no weak handles remain.
func decStrong(b block) {
	bb := b.base()
	bb.strong--
	if bb.strong < 0 {
		panic("rc: strong count underflow: " + strconv.FormatInt(bb.strong, 10))
	}
	if bb.strong == 0 {
		b.releaseValue()
		if bb.weak == 0 {
			b.releaseBlock()
		}
	}
}

// decWeak releases the block at the last weak drop, provided the value is
// already gone.
func decWeak(b block) {
	bb := b.base()
	bb.weak--
	if bb.weak < 0 {
		panic("rc: weak count underflow: " + strconv.FormatInt(bb.weak, 10))
	}
	if bb.strong == 0 && bb.weak == 0 {
		b.releaseBlock()
	}
}

// sepBlock manages a value living in caller-owned storage; the block is a
// second, separate allocation. Releasing the value means running the
// deleter; with no deleter the reference is simply dropped for the
// collector to reclaim.
type sepBlock[T any] struct {
	blockBase
	deleter Deleter[T]
	alloc   alloc.Allocator
}

func newSepBlock[T any](ptr *T, deleter Deleter[T], a alloc.Allocator) (*sepBlock[T], error) {
	t := alloc.TypeOf[sepBlock[T]]()
	p, err := a.Allocate(t)
	if err != nil {
		return nil, err
	}
	blk := (*sepBlock[T])(p)
	blk.blockBase = blockBase{
		ptr:    unsafe.Pointer(ptr),
		typ:    alloc.TypeOf[T](),
		strong: 1,
	}
	blk.deleter = deleter
	blk.alloc = a
	a.Construct(t, p)
	return blk, nil
}

func (b *sepBlock[T]) releaseValue() {
	if b.deleter != nil {
		b.deleter((*T)(b.ptr))
	}
	b.ptr = nil
}

func (b *sepBlock[T]) releaseBlock() {
	t := alloc.TypeOf[sepBlock[T]]()
	a := b.alloc
	a.Destroy(t, unsafe.Pointer(b))
	a.Deallocate(t, unsafe.Pointer(b))
}

// vaultBlock embeds the value next to the bookkeeping fields so one
// allocation serves both. The value is destroyed in place through the
// allocator at the strong 1→0 transition; weak handles then pin only the
// zeroed shell until the last of them drops the whole allocation.
type vaultBlock[T any] struct {
	blockBase
	alloc alloc.Allocator
	value T
}

func (b *vaultBlock[T]) releaseValue() {
	b.alloc.Destroy(alloc.TypeOf[T](), unsafe.Pointer(&b.value))
	b.ptr = nil
}

func (b *vaultBlock[T]) releaseBlock() {
	b.alloc.Deallocate(alloc.TypeOf[vaultBlock[T]](), unsafe.Pointer(b))
}
