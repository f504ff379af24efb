package com

import (
	"unsafe"

	"golang.org/x/exp/slog"

	"github.com/gowio/wio/winerr"
)

var logger = slog.Default()

// SetLogger routes this package's diagnostics to the provided logger. Only
// contract-anomaly paths log anything; outcomes never depend on the logger.
// Passing nil restores the process default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// Ptr owns exactly one reference to a foreign vtable-dispatched object. The
// zero value is an empty handle. Two handles compare equal with == exactly
// when they wrap the same object pointer; equality says nothing about the
// objects' contents.
//
// A Ptr may be handed across goroutines, but the exactly-one-release
// guarantee depends on the foreign object counting references atomically,
// which is the object's contract rather than something this package adds.
type Ptr[T Interface] struct {
	raw *T
}

func (p Ptr[T]) unknown() *Unknown {
	return (*Unknown)(unsafe.Pointer(p.raw))
}

// Adopt wraps a raw interface pointer without touching the reference count.
// The caller must already be owed one reference for the pointer; that debt
// moves to the returned handle. A nil pointer is a contract violation and
// panics — use TryAdopt when null is a legitimate outcome.
func Adopt[T Interface](raw *T) Ptr[T] {
	if raw == nil {
		panic("com: adopted a nil interface pointer")
	}
	return Ptr[T]{raw: raw}
}

// TryAdopt behaves like Adopt but reports a nil pointer as ok == false
// instead of panicking.
func TryAdopt[T Interface](raw *T) (Ptr[T], bool) {
	if raw == nil {
		return Ptr[T]{}, false
	}
	return Ptr[T]{raw: raw}, true
}

// Factory initializes the out slot with a new reference to an object
// implementing the capability set identified by iid, returning a status code.
// The slot is handed in holding nil.
type Factory func(iid IID, out *unsafe.Pointer) winerr.Status

// FromFactory drives a foreign factory call and adopts its result.
//
// A success status with an uninitialized output slot is a fatal contract
// violation. A failure status with an initialized slot is an anomaly some
// foreign factories exhibit: the stray reference is released so it cannot
// leak, the anomaly is logged, and the original failure is returned
// unchanged.
func FromFactory[T Interface](factory Factory) (Ptr[T], error) {
	iid := IIDOf[T]()

	var out unsafe.Pointer
	status := factory(iid, &out)
	if status.Succeeded() {
		if out == nil {
			panic("com: factory reported success without initializing its output pointer")
		}
		return Adopt((*T)(out)), nil
	}

	if out != nil {
		stray := Adopt((*T)(out))
		stray.Release()
		logger.Warn("factory initialized its output pointer despite reporting failure",
			slog.String("iid", iid.String()),
			slog.Uint64("status", uint64(status.Code())),
		)
	}

	return Ptr[T]{}, status
}

// Query asks the wrapped object for a view of itself implementing U's
// capability set. The query produces its own fresh reference, so the returned
// handle is independent of p. On failure the status is returned and p remains
// valid and owned by the caller.
func Query[U Interface, T Interface](p Ptr[T]) (Ptr[U], error) {
	if p.raw == nil {
		panic("com: queried an empty interface pointer")
	}

	var out unsafe.Pointer
	status := p.unknown().Vtbl.QueryInterface(unsafe.Pointer(p.raw), IIDOf[U](), &out)
	if status.Failed() {
		return Ptr[U]{}, status
	}
	if out == nil {
		panic("com: foreign object reported a successful query without initializing its output pointer")
	}
	return Adopt((*U)(out)), nil
}

// Upcast moves ownership of the handle into the more general layout U. The
// relationship is declared at the type level by T's Base marker, so the cast
// never fails at runtime and no reference count traffic occurs. p is emptied.
func Upcast[U Interface, T Extends[U]](p *Ptr[T]) Ptr[U] {
	return Ptr[U]{raw: (*U)(unsafe.Pointer(p.IntoRaw()))}
}

// Raw returns the wrapped pointer without transferring ownership. The caller
// must not release it. Nil for an empty handle.
func (p Ptr[T]) Raw() *T {
	return p.raw
}

// IntoRaw transfers ownership of the wrapped pointer back to the caller, who
// now owes exactly one release. The handle is emptied and issues no release
// of its own. Panics on an empty handle.
func (p *Ptr[T]) IntoRaw() *T {
	if p.raw == nil {
		panic("com: extracted the pointer from an empty handle")
	}
	raw := p.raw
	p.raw = nil
	return raw
}

// IsNil reports whether the handle is empty.
func (p Ptr[T]) IsNil() bool {
	return p.raw == nil
}

// Clone increments the foreign reference count and adopts the same object
// into a new handle. The clone's release is independent of p's.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.raw == nil {
		panic("com: cloned an empty interface pointer")
	}
	p.unknown().Vtbl.AddRef(unsafe.Pointer(p.raw))
	return Ptr[T]{raw: p.raw}
}

// Release gives up the handle's reference, issuing exactly one foreign
// Release. Further calls are no-ops, as are calls on an empty handle.
func (p *Ptr[T]) Release() {
	if p.raw == nil {
		return
	}
	raw := p.raw
	p.raw = nil
	(*Unknown)(unsafe.Pointer(raw)).Vtbl.Release(unsafe.Pointer(raw))
}
