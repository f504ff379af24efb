//go:build !wio_debug

package vsb

import "unsafe"

const (
	// FillCreatedAllocations causes memory handed out by the non-zeroing
	// allocation path to be filled with a recognizable pattern, so reads of
	// never-written memory are easy to spot in a debugger. It is active only
	// under the wio_debug build tag.
	FillCreatedAllocations bool = false
)

func fillCreatedPattern(data unsafe.Pointer, size int) {
}
