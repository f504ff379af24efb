package vsb

import (
	"math"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"

	"github.com/gowio/wio/memutil"
)

// SliceFromCount reconstructs a slice of count U elements starting at field,
// which must point into the box's allocation — typically it is the address of
// a trailing array field read out of the foreign header. The returned slice's
// pointer is re-derived from the box's own base address, so it carries the
// whole allocation's provenance even when field was produced through some
// other view of the record.
//
// The slice borrows the box's memory: it must not outlive the box and must
// not be held across Resize. Panics when the described range escapes the
// allocation; TrySliceFromCount is the non-panicking form.
func SliceFromCount[U any, T any](b *Box[T], field unsafe.Pointer, count int) []U {
	slice, err := TrySliceFromCount[U](b, field, count)
	if err != nil {
		panic(err)
	}
	return slice
}

// TrySliceFromCount is the checked form of SliceFromCount: instead of
// panicking it reports ranges outside the allocation, byte-size overflow,
// and element misalignment as errors.
func TrySliceFromCount[U any, T any](b *Box[T], field unsafe.Pointer, count int) ([]U, error) {
	if count < 0 {
		return nil, cerrors.Wrapf(OutOfBoundsError, "element count %d is negative", count)
	}
	if b.data == nil {
		return nil, cerrors.Wrap(OutOfBoundsError, "the box is empty")
	}
	if field == nil {
		return nil, cerrors.Wrap(OutOfBoundsError, "the field pointer is nil")
	}

	// A pointer before the base wraps around and lands far past the size.
	offset := uintptr(field) - uintptr(b.data)
	if offset > uintptr(b.size) {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"the field pointer does not lie within the %d-byte allocation", b.size)
	}

	elemSize := sizeOf[U]()
	if elemSize > 0 && count > math.MaxInt/elemSize {
		return nil, cerrors.Wrapf(SizeOverflowError, "%d elements of %d bytes each", count, elemSize)
	}
	byteLen := count * elemSize
	if int(offset)+byteLen > b.size {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"%d bytes at offset %d run past the end of the %d-byte allocation", byteLen, offset, b.size)
	}
	if !memutil.IsAligned(uintptr(field), uintptr(alignOf[U]())) {
		return nil, cerrors.Wrapf(MisalignedError,
			"offset %d is not aligned to %d", offset, alignOf[U]())
	}

	if count == 0 {
		return nil, nil
	}

	// Provenance re-derivation: the returned pointer is computed from the
	// box's current base, not trusted from the caller.
	start := unsafe.Add(b.data, offset)
	return unsafe.Slice((*U)(start), count), nil
}

// SliceFromBytes derives the element count from a byte length, flooring when
// byteLen is not a multiple of the element size, and otherwise behaves like
// SliceFromCount.
func SliceFromBytes[U any, T any](b *Box[T], field unsafe.Pointer, byteLen int) []U {
	slice, err := TrySliceFromBytes[U](b, field, byteLen)
	if err != nil {
		panic(err)
	}
	return slice
}

// TrySliceFromBytes is the checked form of SliceFromBytes.
func TrySliceFromBytes[U any, T any](b *Box[T], field unsafe.Pointer, byteLen int) ([]U, error) {
	if byteLen < 0 {
		return nil, cerrors.Wrapf(OutOfBoundsError, "byte length %d is negative", byteLen)
	}
	elemSize := sizeOf[U]()
	if elemSize == 0 {
		return nil, cerrors.Wrap(SizeOverflowError, "cannot derive a count for a zero-sized element type")
	}
	if b.data == nil {
		return nil, cerrors.Wrap(OutOfBoundsError, "the box is empty")
	}
	if field == nil {
		return nil, cerrors.Wrap(OutOfBoundsError, "the field pointer is nil")
	}

	// The declared byte length is checked as-is; flooring it to a whole
	// element count first would let a length that escapes the allocation
	// slip through.
	offset := uintptr(field) - uintptr(b.data)
	if offset > uintptr(b.size) {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"the field pointer does not lie within the %d-byte allocation", b.size)
	}
	if int(offset)+byteLen > b.size {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"%d bytes at offset %d run past the end of the %d-byte allocation", byteLen, offset, b.size)
	}
	return TrySliceFromCount[U](b, field, byteLen/elemSize)
}

// SliceFromTotalBytes treats totalLen as the byte size of the whole record
// measured from the box's base address and derives the tail's byte length
// from the field's offset within the record. It otherwise behaves like
// SliceFromCount.
func SliceFromTotalBytes[U any, T any](b *Box[T], field unsafe.Pointer, totalLen int) []U {
	slice, err := TrySliceFromTotalBytes[U](b, field, totalLen)
	if err != nil {
		panic(err)
	}
	return slice
}

// TrySliceFromTotalBytes is the checked form of SliceFromTotalBytes.
func TrySliceFromTotalBytes[U any, T any](b *Box[T], field unsafe.Pointer, totalLen int) ([]U, error) {
	if b.data == nil {
		return nil, cerrors.Wrap(OutOfBoundsError, "the box is empty")
	}
	if field == nil {
		return nil, cerrors.Wrap(OutOfBoundsError, "the field pointer is nil")
	}
	if totalLen > b.size {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"a %d-byte record cannot fit in the %d-byte allocation", totalLen, b.size)
	}

	offset := uintptr(field) - uintptr(b.data)
	if offset > uintptr(b.size) {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"the field pointer does not lie within the %d-byte allocation", b.size)
	}
	if totalLen < int(offset) {
		return nil, cerrors.Wrapf(OutOfBoundsError,
			"the record size %d is smaller than the field offset %d", totalLen, offset)
	}
	return TrySliceFromBytes[U](b, field, totalLen-int(offset))
}
