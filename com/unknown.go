// Package com wraps pointers to foreign vtable-dispatched objects in
// ownership-aware handles. A foreign object manages its own lifetime through
// manual reference counting; Ptr guarantees that each handle contributes
// exactly one reference and issues exactly one release, making double-release
// and leaked references structurally hard.
//
// The package has no opinion about where the objects come from. Anything laid
// out as "pointer to struct whose first word points at a dispatch table
// beginning with the base capability slots" can be wrapped, whether it lives
// in foreign memory or is a Go struct standing in for one in tests.
package com

import (
	"unsafe"

	"github.com/gowio/wio/winerr"
)

// Vtbl is the base dispatch table. Every wrappable interface layout points at
// a table that begins with these three slots; derived interfaces extend the
// table by embedding Vtbl as their first field.
type Vtbl struct {
	// QueryInterface asks the object for a view implementing the capability
	// set identified by iid. On success the out slot holds a pointer carrying
	// a fresh reference owed to the caller.
	QueryInterface func(this unsafe.Pointer, iid IID, out *unsafe.Pointer) winerr.Status
	// AddRef increments the object's reference count and returns the new
	// count. The count is advisory; only Release's side effect matters here.
	AddRef func(this unsafe.Pointer) uint32
	// Release decrements the object's reference count and returns the new
	// count, destroying the object when it reaches zero.
	Release func(this unsafe.Pointer) uint32
}

// Unknown is the base interface layout: a single pointer to the dispatch
// table. Wrappable layouts must begin with this layout so that the base
// capabilities stay reachable by reinterpreting the object pointer.
type Unknown struct {
	Vtbl *Vtbl
}

func (Unknown) IID() IID {
	return IIDUnknown
}

// Interface is satisfied by interface layout types. IID is called on the
// zero value during factory construction and query casts, so it must not
// read its receiver.
//
// Layout types embedding Unknown inherit its IID method; every distinct
// capability set must shadow it with its own identifier.
type Interface interface {
	IID() IID
}

// Extends is satisfied by interface layouts that declare, through the Base
// marker method, that their in-memory layout begins with the layout of U.
// The method is never called; it exists to make Upcast a compile-time-checked
// operation.
type Extends[U Interface] interface {
	Interface
	Base() U
}
