// Package bstr owns length-prefixed wide strings in the layout used by
// foreign string-valued APIs: a 4-byte byte-length prefix, the UTF-16
// payload, and a terminating NUL code unit. The whole record lives in one
// allocator-owned block, so the package is a consumer of the vsb box rather
// than a second allocation scheme.
//
// Strings produced here are always backed by a vsb.Allocator. Pointers
// allocated by a foreign string allocator cannot be adopted, because freeing
// them through a different allocator is undefined.
package bstr

import (
	"unsafe"

	"github.com/gowio/wio/vsb"
	"github.com/gowio/wio/wide"
)

// prefix is the fixed header: the payload byte length, not counting the
// terminating NUL.
type prefix struct {
	ByteLen uint32
}

const prefixSize = int(unsafe.Sizeof(prefix{}))

// String owns one length-prefixed wide string. The zero value is an empty,
// usable string that owns nothing.
type String struct {
	buf *vsb.Box[prefix]
}

// FromString encodes s and copies it into a freshly allocated record using
// the default allocator.
func FromString(s string) String {
	return FromWide(wide.Encode(s))
}

// FromWide copies the UTF-16 payload into a freshly allocated record using
// the default allocator. The payload must not include a terminating NUL; one
// is appended.
func FromWide(payload []uint16) String {
	return FromWideIn(vsb.DefaultAllocator, payload)
}

// FromWideIn is FromWide with a caller-supplied allocator.
func FromWideIn(alloc vsb.Allocator, payload []uint16) String {
	size := prefixSize + 2*(len(payload)+1)
	buf := vsb.NewIn[prefix](alloc, size, true)

	buf.Header().ByteLen = uint32(2 * len(payload))

	dest := vsb.SliceFromCount[uint16](buf, payloadPointer(buf), len(payload)+1)
	copy(dest, payload)
	dest[len(payload)] = 0

	return String{buf: buf}
}

// Len returns the payload length in UTF-16 code units, from the prefix.
func (s String) Len() int {
	return s.ByteLen() / 2
}

// ByteLen returns the payload length in bytes, from the prefix.
func (s String) ByteLen() int {
	if s.buf == nil || s.buf.Len() == 0 {
		return 0
	}
	return int(s.buf.Header().ByteLen)
}

// Wide borrows the UTF-16 payload, without the terminating NUL. The slice
// must not outlive the string.
func (s String) Wide() []uint16 {
	count := s.Len()
	if count == 0 {
		return nil
	}
	return vsb.SliceFromCount[uint16](s.buf, payloadPointer(s.buf), count)
}

func (s String) String() string {
	return wide.Decode(s.Wide())
}

// Free releases the record. The string is empty afterwards and further calls
// are no-ops.
func (s *String) Free() {
	if s.buf == nil {
		return
	}
	s.buf.Free()
	s.buf = nil
}

func payloadPointer(buf *vsb.Box[prefix]) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(buf.Ptr()), prefixSize)
}
