package vsb_test

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/gowio/wio/vsb"
)

func TestSliceCoversTailExactly(t *testing.T) {
	box := vsb.NewZeroed[recordHeader](16)
	defer box.Free()

	tailPtr := unsafe.Add(unsafe.Pointer(box.Ptr()), 8)

	// 8 + 4*2 == 16: the slice covers the tail exactly.
	tail, err := vsb.TrySliceFromCount[uint16](box, tailPtr, 4)
	require.NoError(t, err)
	require.Len(t, tail, 4)

	// One element more runs past the end.
	_, err = vsb.TrySliceFromCount[uint16](box, tailPtr, 5)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)

	require.Panics(t, func() {
		vsb.SliceFromCount[uint16](box, tailPtr, 5)
	})
}

func TestSlicePointerOutsideAllocation(t *testing.T) {
	box := vsb.NewZeroed[recordHeader](16)
	defer box.Free()

	// One past the end is a representable pointer but can hold no elements.
	end := unsafe.Add(unsafe.Pointer(box.Ptr()), 16)
	_, err := vsb.TrySliceFromCount[uint16](box, end, 1)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)

	// Zero elements at one past the end is fine.
	nothing, err := vsb.TrySliceFromCount[uint16](box, end, 0)
	require.NoError(t, err)
	require.Empty(t, nothing)

	// A pointer from an unrelated allocation never lands in bounds.
	var elsewhere uint16
	_, err = vsb.TrySliceFromCount[uint16](box, unsafe.Pointer(&elsewhere), 1)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)
}

func TestSliceMisaligned(t *testing.T) {
	box := vsb.NewZeroed[recordHeader](16)
	defer box.Free()

	odd := unsafe.Add(unsafe.Pointer(box.Ptr()), 7)
	_, err := vsb.TrySliceFromCount[uint16](box, odd, 2)
	require.ErrorIs(t, err, vsb.MisalignedError)
}

func TestSliceCountOverflow(t *testing.T) {
	box := vsb.NewZeroed[recordHeader](16)
	defer box.Free()

	_, err := vsb.TrySliceFromCount[uint16](box, unsafe.Pointer(box.Ptr()), math.MaxInt/2+1)
	require.ErrorIs(t, err, vsb.SizeOverflowError)

	_, err = vsb.TrySliceFromCount[uint16](box, unsafe.Pointer(box.Ptr()), -1)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)
}

func TestSliceFromEmptyBox(t *testing.T) {
	box := vsb.New[recordHeader](0)

	_, err := vsb.TrySliceFromCount[uint16](box, nil, 0)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)
}

func TestSliceFromBytes(t *testing.T) {
	box := vsb.NewZeroed[recordHeader](16)
	defer box.Free()

	tailPtr := unsafe.Add(unsafe.Pointer(box.Ptr()), 8)

	tail, err := vsb.TrySliceFromBytes[uint16](box, tailPtr, 8)
	require.NoError(t, err)
	require.Len(t, tail, 4)

	// A byte length that is not a multiple of the element size floors.
	tail, err = vsb.TrySliceFromBytes[uint16](box, tailPtr, 7)
	require.NoError(t, err)
	require.Len(t, tail, 3)

	// The declared length itself must fit, even when flooring it to whole
	// elements would yield a count that does.
	_, err = vsb.TrySliceFromBytes[uint16](box, tailPtr, 9)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)

	_, err = vsb.TrySliceFromBytes[uint16](box, unsafe.Pointer(box.Ptr()), 17)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)
}

func TestSliceFromTotalBytes(t *testing.T) {
	box := vsb.NewZeroed[recordHeader](16)
	defer box.Free()

	tailPtr := unsafe.Add(unsafe.Pointer(box.Ptr()), 8)

	// A 16-byte record with the tail at offset 8 leaves 8 tail bytes.
	tail, err := vsb.TrySliceFromTotalBytes[uint16](box, tailPtr, 16)
	require.NoError(t, err)
	require.Len(t, tail, 4)

	// Records cannot claim to be larger than the allocation.
	_, err = vsb.TrySliceFromTotalBytes[uint16](box, tailPtr, 20)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)

	// Nor smaller than the field offset.
	_, err = vsb.TrySliceFromTotalBytes[uint16](box, tailPtr, 4)
	require.ErrorIs(t, err, vsb.OutOfBoundsError)
}
