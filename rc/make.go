package rc

import (
	"reflect"
	"unsafe"

	"github.com/moontrade/shared/pkg/alloc"
)

// Alloc builds the value and its bookkeeping in one combined allocation
// through a and returns the first strong handle.
func Alloc[T any](a alloc.Allocator, value T) (Strong[T], error) {
	return AllocWith(a, func(p *T) { *p = value })
}

// AllocWith is Alloc with in-place construction: init runs on the embedded
// value inside the combined allocation before the handle is produced. A nil
// init leaves the value zeroed.
func AllocWith[T any](a alloc.Allocator, init func(*T)) (Strong[T], error) {
	if a == nil {
		a = alloc.Default
	}
	t := alloc.TypeOf[vaultBlock[T]]()
	p, err := a.Allocate(t)
	if err != nil {
		return Strong[T]{}, err
	}
	blk := (*vaultBlock[T])(p)
	if init != nil {
		init(&blk.value)
	}
	a.Construct(t, p)
	blk.blockBase = blockBase{
		ptr:    unsafe.Pointer(&blk.value),
		typ:    alloc.TypeOf[T](),
		strong: 1,
	}
	blk.alloc = a
	return Strong[T]{b: blk}, nil
}

// Make is Alloc on the default heap allocator, which cannot fail.
func Make[T any](value T) Strong[T] {
	s, err := Alloc(alloc.Default, value)
	if err != nil {
		panic(err)
	}
	return s
}

// MakeWith is AllocWith on the default heap allocator.
func MakeWith[T any](init func(*T)) Strong[T] {
	s, err := AllocWith(alloc.Default, init)
	if err != nil {
		panic(err)
	}
	return s
}

// Cast converts a strong handle to one of a related element type, sharing
// the same block and counts. The conversion is checked: it succeeds when
// the block's concrete element type is To itself, or reaches To through its
// chain of leading embedded fields (the layout struct embedding gives Go's
// is-a composition). An incompatible cast returns an empty handle and
// leaves the counts untouched.
func Cast[To, From any](s Strong[From]) Strong[To] {
	if s.b == nil {
		return Strong[To]{}
	}
	if !compatible(alloc.TypeOf[To](), s.b.base().typ) {
		return Strong[To]{}
	}
	incStrong(s.b)
	return Strong[To]{b: s.b}
}

// CastMove is Cast with move semantics: on success s is emptied and the
// count is unchanged; on failure s keeps its link.
func CastMove[To, From any](s *Strong[From]) Strong[To] {
	if s.b == nil {
		return Strong[To]{}
	}
	if !compatible(alloc.TypeOf[To](), s.b.base().typ) {
		return Strong[To]{}
	}
	b := s.b
	s.b = nil
	return Strong[To]{b: b}
}

// compatible reports whether a *concrete may be read as a *to. A leading
// embedded field sits at offset 0, so walking that chain covers every
// address-preserving view of the value.
func compatible(to, concrete reflect.Type) bool {
	for t := concrete; ; {
		if t == to {
			return true
		}
		if t.Kind() != reflect.Struct || t.NumField() == 0 {
			return false
		}
		f := t.Field(0)
		if !f.Anonymous {
			return false
		}
		t = f.Type
	}
}
