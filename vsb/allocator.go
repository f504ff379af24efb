package vsb

import (
	"fmt"
	"sync"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slog"

	"github.com/gowio/wio/memutil"
)

// Allocator supplies the raw memory primitives backing a Box. Implementations
// report exhaustion by returning nil from the allocating methods; the box
// treats exhaustion as fatal rather than a modeled error path.
type Allocator interface {
	// Alloc returns size bytes aligned to align, or nil on exhaustion. The
	// contents of the returned memory are unspecified. align must be a power
	// of two; size must be positive.
	Alloc(size, align int) unsafe.Pointer
	// AllocZeroed behaves like Alloc but the returned memory is zero-filled.
	AllocZeroed(size, align int) unsafe.Pointer
	// Realloc moves the block at ptr to a new block of newSize bytes,
	// preserving the first min(oldSize, newSize) bytes. Bytes beyond the
	// preserved prefix are unspecified. ptr, oldSize and align must exactly
	// describe a live block returned by this allocator. Returns nil on
	// exhaustion, in which case the original block is untouched.
	Realloc(ptr unsafe.Pointer, oldSize, newSize, align int) unsafe.Pointer
	// Free releases a live block. size and align must exactly match the
	// values the block was allocated with; anything else is undefined
	// deallocation behavior and implementations are free to panic.
	Free(ptr unsafe.Pointer, size, align int)
}

// Statistics describes the blocks a HeapAllocator is currently carrying.
type Statistics struct {
	// AllocationCount is the number of live blocks.
	AllocationCount int
	// AllocationBytes is the requested byte size of all live blocks.
	AllocationBytes int
	// TotalAllocations counts every allocation ever made, including blocks
	// produced by Realloc moves.
	TotalAllocations int
}

func (s *Statistics) Clear() {
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.TotalAllocations = 0
}

type heapBlock struct {
	backing []byte
	size    int
	align   int
}

// HeapAllocator is the default Allocator. It carves aligned blocks out of Go
// heap buffers and keeps each block registered until it is freed, so block
// memory stays rooted for as long as a box points into it. Freeing a pointer
// it does not own, or freeing with the wrong size or alignment, panics.
type HeapAllocator struct {
	mutex  sync.Mutex
	logger *slog.Logger
	blocks *swiss.Map[uintptr, heapBlock]
	stats  Statistics
}

// AllocatorOptions contains optional settings when creating a HeapAllocator
type AllocatorOptions struct {
	// Logger receives debug-level allocation traffic. Defaults to
	// slog.Default when unset.
	Logger *slog.Logger
}

func NewHeapAllocator(options AllocatorOptions) *HeapAllocator {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HeapAllocator{
		logger: logger,
		blocks: swiss.NewMap[uintptr, heapBlock](16),
	}
}

// DefaultAllocator backs boxes created with New and NewZeroed.
var DefaultAllocator Allocator = NewHeapAllocator(AllocatorOptions{})

func (a *HeapAllocator) Alloc(size, align int) unsafe.Pointer {
	a.logger.Debug("HeapAllocator::Alloc", slog.Int("size", size), slog.Int("align", align))

	ptr := a.allocate(size, align)
	memutil.DebugValidate(a)
	return ptr
}

func (a *HeapAllocator) AllocZeroed(size, align int) unsafe.Pointer {
	a.logger.Debug("HeapAllocator::AllocZeroed", slog.Int("size", size), slog.Int("align", align))

	// Go heap buffers come back zeroed, so the zeroing and non-zeroing
	// paths share an implementation.
	ptr := a.allocate(size, align)
	memutil.DebugValidate(a)
	return ptr
}

func (a *HeapAllocator) allocate(size, align int) unsafe.Pointer {
	if size <= 0 {
		panic(fmt.Sprintf("vsb: allocation of non-positive size %d", size))
	}
	if align <= 0 {
		panic(fmt.Sprintf("vsb: allocation with non-positive alignment %d", align))
	}
	if err := memutil.CheckPow2(uint(align), "align"); err != nil {
		panic(err)
	}

	backing := make([]byte, size+align-1)
	base := unsafe.Pointer(&backing[0])
	padding := memutil.AlignUp(int(uintptr(base)), uint(align)) - int(uintptr(base))
	ptr := unsafe.Add(base, padding)

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.blocks.Put(uintptr(ptr), heapBlock{backing: backing, size: size, align: align})
	a.stats.AllocationCount++
	a.stats.AllocationBytes += size
	a.stats.TotalAllocations++

	return ptr
}

func (a *HeapAllocator) Realloc(ptr unsafe.Pointer, oldSize, newSize, align int) unsafe.Pointer {
	a.logger.Debug("HeapAllocator::Realloc",
		slog.Int("oldSize", oldSize), slog.Int("newSize", newSize), slog.Int("align", align))

	a.verifyBlock(ptr, oldSize, align)

	newPtr := a.allocate(newSize, align)

	preserve := oldSize
	if newSize < preserve {
		preserve = newSize
	}
	copy(unsafe.Slice((*byte)(newPtr), preserve), unsafe.Slice((*byte)(ptr), preserve))

	a.release(ptr, oldSize, align)
	memutil.DebugValidate(a)
	return newPtr
}

func (a *HeapAllocator) Free(ptr unsafe.Pointer, size, align int) {
	a.logger.Debug("HeapAllocator::Free", slog.Int("size", size), slog.Int("align", align))

	a.verifyBlock(ptr, size, align)
	a.release(ptr, size, align)
	memutil.DebugValidate(a)
}

func (a *HeapAllocator) verifyBlock(ptr unsafe.Pointer, size, align int) {
	if ptr == nil {
		panic("vsb: operated on a nil block pointer")
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	block, ok := a.blocks.Get(uintptr(ptr))
	if !ok {
		panic("vsb: operated on a block this allocator does not own")
	}
	if block.size != size || block.align != align {
		panic(fmt.Sprintf(
			"vsb: block described with size %d and alignment %d was allocated with size %d and alignment %d",
			size, align, block.size, block.align))
	}
}

func (a *HeapAllocator) release(ptr unsafe.Pointer, size, align int) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.blocks.Delete(uintptr(ptr))
	a.stats.AllocationCount--
	a.stats.AllocationBytes -= size
}

// Validate cross-checks the block registry against the statistics: every
// registered block must sit at an address aligned for it, and the live counts
// must add up. Debug builds run this after every allocator mutation.
func (a *HeapAllocator) Validate() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.blocks.Count() != a.stats.AllocationCount {
		return cerrors.Newf("the registry holds %d blocks but statistics report %d",
			a.blocks.Count(), a.stats.AllocationCount)
	}

	var liveBytes int
	var blockErr error
	a.blocks.Iter(func(ptr uintptr, block heapBlock) bool {
		if !memutil.IsAligned(ptr, uintptr(block.align)) {
			blockErr = cerrors.Newf("the block at %#x is not aligned to %d", ptr, block.align)
			return true
		}
		liveBytes += block.size
		return false
	})
	if blockErr != nil {
		return blockErr
	}
	if liveBytes != a.stats.AllocationBytes {
		return cerrors.Newf("the registry holds %d live bytes but statistics report %d",
			liveBytes, a.stats.AllocationBytes)
	}
	return nil
}

// Stats returns a snapshot of the allocator's live-block statistics.
func (a *HeapAllocator) Stats() Statistics {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.stats
}

// BuildStatsString dumps the allocator statistics as a JSON object, suitable
// for diagnostics output.
func (a *HeapAllocator) BuildStatsString() string {
	stats := a.Stats()

	writer := jwriter.NewWriter()
	obj := writer.Object()
	obj.Name("AllocationCount").Int(stats.AllocationCount)
	obj.Name("AllocationBytes").Int(stats.AllocationBytes)
	obj.Name("TotalAllocations").Int(stats.TotalAllocations)
	obj.End()

	return string(writer.Bytes())
}
