// Package vsb owns variably-sized allocations holding foreign records laid
// out as a fixed header followed by a runtime-length tail. A Box is the
// single owner of one contiguous allocation; the header and the tail are two
// views onto that same allocation, and every sub-slice handed out is
// re-derived from the box's own base address so it carries the whole
// allocation's pointer provenance.
package vsb

import (
	"fmt"
	"unsafe"

	"github.com/gowio/wio/memutil"
)

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func alignOf[T any]() int {
	var zero T
	return int(unsafe.Alignof(zero))
}

// Box owns one untyped heap allocation sized and aligned for a fixed-header
// type T but possibly larger than T itself, to accommodate a trailing
// variable-length payload. A box is either Empty (no backing memory, zero
// length) or Allocated; the zero-size constructors and Resize(0) produce the
// Empty form, which is safe to use and free.
//
// A box is single-owner: it has no internal synchronization, and slices
// borrowed from it must not outlive it or be held across Resize, which may
// relocate the backing memory.
type Box[T any] struct {
	size   int
	data   unsafe.Pointer
	alloc  Allocator
	zeroed bool
}

// New allocates size bytes aligned for T from the default allocator. The
// contents are unspecified, and memory exposed by growing the box later is
// unspecified as well. size 0 yields an empty box with no allocation.
func New[T any](size int) *Box[T] {
	return NewIn[T](DefaultAllocator, size, false)
}

// NewZeroed allocates size bytes aligned for T from the default allocator,
// zero-filled. Memory exposed by growing the box later is zeroed as well;
// the zeroing contract is fixed at creation time.
func NewZeroed[T any](size int) *Box[T] {
	return NewIn[T](DefaultAllocator, size, true)
}

// NewIn allocates from a caller-supplied allocator. See New and NewZeroed
// for the meaning of the zeroed mode.
func NewIn[T any](alloc Allocator, size int, zeroed bool) *Box[T] {
	if alloc == nil {
		panic("vsb: created a box with a nil allocator")
	}
	if size < 0 {
		panic(fmt.Sprintf("vsb: created a box with negative size %d", size))
	}

	box := &Box[T]{
		alloc:  alloc,
		zeroed: zeroed,
	}
	if size > 0 {
		box.data = box.allocate(size)
		box.size = size
	}
	return box
}

// allocate obtains size bytes in the box's creation mode, treating allocator
// exhaustion as fatal.
func (b *Box[T]) allocate(size int) unsafe.Pointer {
	align := alignOf[T]()
	memutil.DebugCheckPow2(uint(align), "align")

	var data unsafe.Pointer
	if b.zeroed {
		data = b.alloc.AllocZeroed(size, align)
	} else {
		data = b.alloc.Alloc(size, align)
	}
	if data == nil {
		panic(fmt.Sprintf("vsb: allocator failed to provide %d bytes aligned to %d", size, align))
	}
	if !memutil.IsAligned(uintptr(data), uintptr(align)) {
		panic(fmt.Sprintf("vsb: allocator returned a pointer not aligned to %d", align))
	}
	if !b.zeroed {
		fillCreatedPattern(data, size)
	}
	return data
}

// Ptr returns the base address as a header pointer, for handing to foreign
// calls that expect a pointer to the fixed header. Nil for an empty box.
func (b *Box[T]) Ptr() *T {
	return (*T)(b.data)
}

// Len returns the current allocation size in bytes.
func (b *Box[T]) Len() int {
	return b.size
}

// Header reinterprets the allocation's first bytes as T. The caller must
// guarantee those bytes already encode a valid T; the box only verifies that
// it is large enough to hold one, and panics otherwise.
func (b *Box[T]) Header() *T {
	if b.size < sizeOf[T]() {
		panic(fmt.Sprintf("vsb: a box of %d bytes cannot hold a %d-byte header", b.size, sizeOf[T]()))
	}
	return (*T)(b.data)
}

// Resize changes the allocation to size bytes, preserving the first
// min(old, new) bytes. Growing a box created in zeroed mode zeroes the newly
// exposed region; otherwise the region is unspecified. Resizing may relocate
// the backing memory, so it invalidates every pointer and slice previously
// obtained from the box.
func (b *Box[T]) Resize(size int) {
	if size < 0 {
		panic(fmt.Sprintf("vsb: resized a box to negative size %d", size))
	}
	if size == b.size {
		return
	}

	switch {
	case size == 0:
		b.alloc.Free(b.data, b.size, alignOf[T]())
		b.data = nil
		b.size = 0

	case b.size == 0:
		b.data = b.allocate(size)
		b.size = size

	default:
		data := b.alloc.Realloc(b.data, b.size, size, alignOf[T]())
		if data == nil {
			panic(fmt.Sprintf("vsb: allocator failed to move a block to %d bytes", size))
		}
		if size > b.size {
			if b.zeroed {
				grown := unsafe.Slice((*byte)(unsafe.Add(data, b.size)), size-b.size)
				for i := range grown {
					grown[i] = 0
				}
			} else {
				fillCreatedPattern(unsafe.Add(data, b.size), size-b.size)
			}
		}
		b.data = data
		b.size = size
	}
}

// Free releases the allocation using the byte length recorded by the last
// allocation or resize and T's alignment. The box is empty afterwards, so
// calling Free again is a no-op.
func (b *Box[T]) Free() {
	if b.size == 0 {
		return
	}
	b.alloc.Free(b.data, b.size, alignOf[T]())
	b.data = nil
	b.size = 0
}
