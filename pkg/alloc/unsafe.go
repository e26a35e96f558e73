package alloc

import (
	"reflect"
	"unsafe"
)

// HasPointers reports whether values of type t can contain pointers the
// collector must trace, read straight from the runtime type header.
func HasPointers(t reflect.Type) bool {
	return ptrdataOf(t) != 0
}

func ptrdataOf(t reflect.Type) uintptr {
	return (*ifaceWords)(unsafe.Pointer(&t)).data.ptrdata
}

// ifaceWords is the header of an interface value holding a *rtype.
type ifaceWords struct {
	typ  unsafe.Pointer
	data *rtype
}

// rtype mirrors the leading fields of the runtime type descriptor.
type rtype struct {
	size    uintptr
	ptrdata uintptr
}
