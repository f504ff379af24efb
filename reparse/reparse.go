// Package reparse decodes the variable-length reparse-point records the
// operating system returns for symlinks and mount points. The record is a
// classic fixed-header/flexible-tail layout: a tag and byte length up front,
// a tag-specific sub-header behind it, and a wide-character path buffer
// addressed by (offset, byte length) pairs at the end. Decoding drives the
// vsb box's bounds-checked sub-slicing; reading the record from the OS is the
// caller's business.
package reparse

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"

	"github.com/gowio/wio/vsb"
	"github.com/gowio/wio/wide"
)

const (
	// TagMountPoint marks a mount point (junction) record.
	TagMountPoint uint32 = 0xA0000003
	// TagSymlink marks a symbolic link record.
	TagSymlink uint32 = 0xA000000C
)

// MaximumBufferSize is the largest record the operating system produces, so
// a buffer of this size can receive any reparse point.
const MaximumBufferSize = 16 * 1024

// Header mirrors the fixed prefix shared by every reparse record.
type Header struct {
	Tag      uint32
	Length   uint16
	Reserved uint16
}

const headerSize = int(unsafe.Sizeof(Header{}))

// symlinkData mirrors the sub-header of a symlink record. The offsets and
// byte lengths address the path buffer that follows this struct.
type symlinkData struct {
	SubstituteOffset uint16
	SubstituteLength uint16
	PrintOffset      uint16
	PrintLength      uint16
	Flags            uint32
}

// mountPointData mirrors the sub-header of a mount-point record.
type mountPointData struct {
	SubstituteOffset uint16
	SubstituteLength uint16
	PrintOffset      uint16
	PrintLength      uint16
}

const symlinkRelative uint32 = 0x1

type Kind byte

const (
	KindOther Kind = iota
	KindAbsoluteSymlink
	KindRelativeSymlink
	KindMountPoint
)

var kindMapping = make(map[Kind]string)

func (k Kind) String() string {
	return kindMapping[k]
}

func init() {
	kindMapping[KindOther] = "KindOther"
	kindMapping[KindAbsoluteSymlink] = "KindAbsoluteSymlink"
	kindMapping[KindRelativeSymlink] = "KindRelativeSymlink"
	kindMapping[KindMountPoint] = "KindMountPoint"
}

// Point is a decoded reparse point. For KindOther only the Kind field is
// meaningful.
type Point struct {
	Kind       Kind
	Substitute string
	Print      string
}

// NewBuffer allocates a zeroed record buffer large enough for any reparse
// point, ready to hand to the foreign read call along with its length.
func NewBuffer() *vsb.Box[Header] {
	return vsb.NewZeroed[Header](MaximumBufferSize)
}

// Decode interprets buf as a reparse record. Records with an unrecognized
// tag decode to KindOther; records whose declared lengths contradict the
// buffer are malformed.
func Decode(buf *vsb.Box[Header]) (Point, error) {
	if buf.Len() < headerSize {
		return Point{}, cerrors.Newf("a %d-byte buffer cannot hold a reparse record header", buf.Len())
	}

	head := buf.Header()
	total := headerSize + int(head.Length)
	if total > buf.Len() {
		return Point{}, cerrors.Newf(
			"the record declares %d data bytes but the buffer only holds %d",
			head.Length, buf.Len()-headerSize)
	}

	switch head.Tag {
	case TagSymlink:
		return decodeSymlink(buf, total)
	case TagMountPoint:
		return decodeMountPoint(buf, total)
	}

	return Point{Kind: KindOther}, nil
}

func decodeSymlink(buf *vsb.Box[Header], total int) (Point, error) {
	base := unsafe.Pointer(buf.Ptr())

	pathStart := headerSize + int(unsafe.Sizeof(symlinkData{}))
	if total < pathStart {
		return Point{}, cerrors.Newf(
			"a %d-byte record is too small for a symlink sub-header", total)
	}

	dataView, err := vsb.TrySliceFromCount[symlinkData](buf, unsafe.Add(base, headerSize), 1)
	if err != nil {
		return Point{}, cerrors.Wrap(err, "the record is too small for a symlink sub-header")
	}
	data := &dataView[0]

	substitute, err := pathString(buf, pathStart, total, data.SubstituteOffset, data.SubstituteLength)
	if err != nil {
		return Point{}, cerrors.Wrap(err, "the substitute path escapes the record")
	}
	printName, err := pathString(buf, pathStart, total, data.PrintOffset, data.PrintLength)
	if err != nil {
		return Point{}, cerrors.Wrap(err, "the print path escapes the record")
	}

	kind := KindAbsoluteSymlink
	if data.Flags&symlinkRelative != 0 {
		kind = KindRelativeSymlink
	}
	return Point{Kind: kind, Substitute: substitute, Print: printName}, nil
}

func decodeMountPoint(buf *vsb.Box[Header], total int) (Point, error) {
	base := unsafe.Pointer(buf.Ptr())

	pathStart := headerSize + int(unsafe.Sizeof(mountPointData{}))
	if total < pathStart {
		return Point{}, cerrors.Newf(
			"a %d-byte record is too small for a mount-point sub-header", total)
	}

	dataView, err := vsb.TrySliceFromCount[mountPointData](buf, unsafe.Add(base, headerSize), 1)
	if err != nil {
		return Point{}, cerrors.Wrap(err, "the record is too small for a mount-point sub-header")
	}
	data := &dataView[0]

	substitute, err := pathString(buf, pathStart, total, data.SubstituteOffset, data.SubstituteLength)
	if err != nil {
		return Point{}, cerrors.Wrap(err, "the substitute path escapes the record")
	}
	printName, err := pathString(buf, pathStart, total, data.PrintOffset, data.PrintLength)
	if err != nil {
		return Point{}, cerrors.Wrap(err, "the print path escapes the record")
	}

	return Point{Kind: KindMountPoint, Substitute: substitute, Print: printName}, nil
}

// pathString extracts one (offset, byte length) addressed path from the
// record's path buffer. The pair must stay within the record's declared
// total size, which may be smaller than the allocation.
func pathString(buf *vsb.Box[Header], pathStart, total int, offset, byteLen uint16) (string, error) {
	end := pathStart + int(offset) + int(byteLen)
	if end > total {
		return "", cerrors.Newf(
			"the path at offset %d with %d bytes ends at %d, past the %d-byte record",
			offset, byteLen, end, total)
	}

	ptr := unsafe.Add(unsafe.Pointer(buf.Ptr()), pathStart+int(offset))
	units, err := vsb.TrySliceFromBytes[uint16](buf, ptr, int(byteLen))
	if err != nil {
		return "", err
	}
	return wide.Decode(units), nil
}
