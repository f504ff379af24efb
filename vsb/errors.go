package vsb

import "github.com/pkg/errors"

// OutOfBoundsError is returned from the checked slice-extraction methods when the requested
// range does not lie entirely within the box's allocation
var OutOfBoundsError error = errors.New("requested range is outside the allocation")

// SizeOverflowError is returned from the checked slice-extraction methods when the requested
// element count overflows the byte size of the slice
var SizeOverflowError error = errors.New("slice byte length overflows")

// MisalignedError is returned from the checked slice-extraction methods when the field pointer
// is not aligned for the requested element type
var MisalignedError error = errors.New("pointer is not aligned for the element type")
