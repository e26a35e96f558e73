package alloc

import (
	"reflect"
	"testing"
	"unsafe"

	arrowmem "github.com/apache/arrow/go/v13/arrow/memory"
)

type plain struct {
	a, b int64
}

type pointered struct {
	s string
	p *int
}

func TestHasPointers(t *testing.T) {
	if HasPointers(TypeOf[plain]()) {
		t.Fatal("plain struct misreported as pointered")
	}
	if !HasPointers(TypeOf[pointered]()) {
		t.Fatal("pointered struct misreported as plain")
	}
	if !HasPointers(TypeOf[Allocator]()) {
		t.Fatal("interface type misreported as plain")
	}
}

func TestHeapRoundTrip(t *testing.T) {
	p, err := New[pointered](Heap{})
	if err != nil {
		t.Fatal(err)
	}
	if p.s != "" || p.p != nil {
		t.Fatal("heap storage not zeroed")
	}
	n := 7
	p.s, p.p = "live", &n
	Heap{}.Destroy(TypeOf[pointered](), unsafe.Pointer(p))
	if p.s != "" || p.p != nil {
		t.Fatal("destroy must perform a typed zero")
	}
	Free(Heap{}, p)
}

func TestOffHeapRoundTrip(t *testing.T) {
	oh := OffHeap{}
	p, err := New[plain](oh)
	if err != nil {
		t.Fatal(err)
	}
	if p.a != 0 || p.b != 0 {
		t.Fatal("off-heap storage not zeroed")
	}
	p.a, p.b = 1, 2
	oh.Destroy(TypeOf[plain](), unsafe.Pointer(p))
	if p.a != 0 || p.b != 0 {
		t.Fatal("off-heap destroy must clear the value")
	}
	oh.Deallocate(TypeOf[plain](), unsafe.Pointer(p))
}

func TestOffHeapPointeredFallback(t *testing.T) {
	p, err := New[pointered](OffHeap{})
	if err != nil {
		t.Fatal(err)
	}
	n := 3
	p.s, p.p = "gc backed", &n
	Free(OffHeap{}, p)

	if _, err = New[pointered](OffHeap{Strict: true}); err == nil {
		t.Fatal("strict off-heap must refuse pointered types")
	}
}

func TestCountingBalance(t *testing.T) {
	c := NewCounting(Heap{})
	p, err := New[plain](c)
	if err != nil {
		t.Fatal(err)
	}
	if c.Allocates.Load() != 1 || c.Constructs.Load() != 1 {
		t.Fatalf("unexpected stats after New: %+v", c.Stats)
	}
	if c.Balanced() {
		t.Fatal("live allocation reported as balanced")
	}
	Free(c, p)
	if !c.Balanced() || !c.CheckLeaks() {
		t.Fatalf("unexpected stats after Free: %+v", c.Stats)
	}
}

func TestCountingPropagatesFailure(t *testing.T) {
	c := NewCounting(OffHeap{Strict: true})
	if _, err := c.Allocate(TypeOf[pointered]()); err == nil {
		t.Fatal("expected error from inner allocator")
	}
	if c.Allocates.Load() != 0 {
		t.Fatal("failed allocation must not count")
	}
}

func TestArrowRoundTrip(t *testing.T) {
	mem := arrowmem.NewCheckedAllocator(arrowmem.NewGoAllocator())
	ar := NewArrow(mem)

	p, err := New[plain](ar)
	if err != nil {
		t.Fatal(err)
	}
	p.a = 9
	if ar.Outstanding() != 1 {
		t.Fatalf("expected one live buffer, got %d", ar.Outstanding())
	}
	Free(ar, p)
	if ar.Outstanding() != 0 {
		t.Fatalf("expected no live buffers, got %d", ar.Outstanding())
	}
	mem.AssertSize(t, 0)
}

func TestArrowPointeredFallback(t *testing.T) {
	ar := NewArrow(nil)
	p, err := New[pointered](ar)
	if err != nil {
		t.Fatal(err)
	}
	if ar.Outstanding() != 0 {
		t.Fatal("pointered types must not land in arrow buffers")
	}
	Free(ar, p)

	if _, err = New[pointered](NewArrowStrict(nil)); err == nil {
		t.Fatal("strict arrow must refuse pointered types")
	}
}

func TestTypeOf(t *testing.T) {
	if TypeOf[plain]() != reflect.TypeOf(plain{}) {
		t.Fatal("TypeOf mismatch")
	}
	if TypeOf[*plain]().Kind() != reflect.Ptr {
		t.Fatal("TypeOf must work for pointer types")
	}
}
