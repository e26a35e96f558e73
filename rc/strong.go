package rc

import (
	"github.com/moontrade/shared/pkg/alloc"
)

// Strong is an owning handle. The zero value is empty. Copy handles with
// Clone or Assign, never by plain struct assignment: a bare copy shares the
// block without a count and will double-release.
type Strong[T any] struct {
	b block
}

// New wraps a caller-allocated value with no deleter: when the last strong
// handle releases, the reference is dropped and the collector reclaims the
// value. A nil pointer yields an empty handle.
func New[T any](ptr *T) Strong[T] {
	return NewWithDeleter(ptr, nil)
}

// NewWithDeleter wraps a caller-allocated value; deleter runs exactly once,
// when the last strong handle releases.
func NewWithDeleter[T any](ptr *T, deleter Deleter[T]) Strong[T] {
	s, err := NewWithAllocator(ptr, deleter, alloc.Default)
	if err != nil {
		// the default heap allocator cannot fail
		panic(err)
	}
	return s
}

// NewWithAllocator is NewWithDeleter with the control block allocated
// through a. If the block cannot be allocated the deleter is still invoked
// on ptr before the error returns, so the raw value never leaks.
func NewWithAllocator[T any](ptr *T, deleter Deleter[T], a alloc.Allocator) (Strong[T], error) {
	if ptr == nil {
		return Strong[T]{}, nil
	}
	if a == nil {
		a = alloc.Default
	}
	blk, err := newSepBlock(ptr, deleter, a)
	if err != nil {
		if deleter != nil {
			deleter(ptr)
		}
		return Strong[T]{}, err
	}
	return Strong[T]{b: blk}, nil
}

// Clone returns a new owning handle sharing this handle's block. Cloning an
// empty handle yields an empty handle.
func (s Strong[T]) Clone() Strong[T] {
	if s.b != nil {
		incStrong(s.b)
	}
	return Strong[T]{b: s.b}
}

// Move transfers ownership to the returned handle and empties s. The
// strong count is unchanged.
func (s *Strong[T]) Move() Strong[T] {
	b := s.b
	s.b = nil
	return Strong[T]{b: b}
}

// Assign replaces s's link with a share of other's. The new link is
// acquired before the old one releases, so assigning from a handle kept
// alive only through s is safe. Self-assignment is a no-op.
func (s *Strong[T]) Assign(other Strong[T]) {
	if s.b == other.b {
		return
	}
	old := s.b
	if other.b != nil {
		incStrong(other.b)
	}
	s.b = other.b
	if old != nil {
		decStrong(old)
	}
}

// MoveFrom steals other's link, releasing s's previous one. other is left
// empty. A self-move is a no-op.
func (s *Strong[T]) MoveFrom(other *Strong[T]) {
	if s == other {
		return
	}
	old := s.b
	s.b = other.b
	other.b = nil
	if old != nil {
		decStrong(old)
	}
}

// Get returns the managed value's address, or nil when empty.
func (s Strong[T]) Get() *T {
	if s.b == nil {
		return nil
	}
	return (*T)(s.b.base().ptr)
}

// Deref returns the managed value's address. Calling it on an empty handle
// is a contract violation and panics.
func (s Strong[T]) Deref() *T {
	p := s.Get()
	if p == nil {
		panic("rc: deref of empty Strong")
	}
	return p
}

// UseCount returns the number of live strong handles on the block, 0 for
// an empty handle.
func (s Strong[T]) UseCount() int64 {
	if s.b == nil {
		return 0
	}
	return s.b.base().strong
}

// Release drops s's link, destroying the value if this was the last strong
// handle. s is left empty; releasing an empty handle is a no-op. Every
// non-empty handle must be released exactly once.
func (s *Strong[T]) Release() {
	if s.b == nil {
		return
	}
	b := s.b
	s.b = nil
	decStrong(b)
}

// Reset is Release under its std smart-pointer name.
func (s *Strong[T]) Reset() {
	s.Release()
}

// Downgrade returns a weak handle observing s's block. Downgrading an
// empty handle yields an empty weak handle.
func (s Strong[T]) Downgrade() Weak[T] {
	if s.b == nil {
		return Weak[T]{}
	}
	incWeak(s.b)
	return Weak[T]{b: s.b}
}
