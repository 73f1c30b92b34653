// Command tsblank-capi is the C-compatible boundary of spec.md §6. It is
// built with `go build -buildmode=c-shared` to produce a shared library
// and header that an embedding host links against and calls into.
//
// The two exported entry points are deliberately minimal: transform
// takes two (pointer, length) byte spans and returns one owned
// allocation; retrieve takes that allocation back and frees it. Nothing
// else crosses the boundary (spec.md §5's single-threaded, synchronous,
// paired-ownership model).
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/tsblank/tsblank/internal/bridge"
)

// transform accepts the UTF-8 source bytes and the UTF-8 virtual path
// bytes (no null terminators required, no interior nulls permitted),
// and returns a non-null pointer to a heap-allocated null-terminated
// byte string. The byte before the terminator is the status: '1' for
// success (the preceding bytes are the transformed source), '2' for
// failure (the preceding bytes are a diagnostic message). The caller
// must strip that status byte and must eventually pass the returned
// pointer to retrieve exactly once.
//
//export transform
func transform(srcPtr *C.char, srcLen C.int, pathPtr *C.char, pathLen C.int) *C.char {
	src := C.GoBytes(unsafe.Pointer(srcPtr), srcLen)
	path := C.GoBytes(unsafe.Pointer(pathPtr), pathLen)

	out, _ := bridge.Transform(src, path)
	return cStringFromBytes(out)
}

// retrieve releases a pointer previously returned by transform. Calling
// it on any other pointer is undefined, per spec.md §6.
//
//export retrieve
func retrieve(ptr *C.char) {
	C.free(unsafe.Pointer(ptr))
}

// cStringFromBytes allocates a C string containing exactly b's bytes
// plus a trailing NUL, without relying on C.CString's assumption that
// the input has no interior NUL bytes (the payload can legitimately
// contain arbitrary bytes from the transformed source).
func cStringFromBytes(b []byte) *C.char {
	buf := C.malloc(C.size_t(len(b) + 1))
	dst := unsafe.Slice((*byte)(buf), len(b)+1)
	copy(dst, b)
	dst[len(b)] = 0
	return (*C.char)(buf)
}

func main() {}
