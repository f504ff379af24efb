package com

import (
	"github.com/google/uuid"
)

// IID is the capability identifier naming one interface layout. Foreign
// objects are asked for alternate views of themselves by IID.
type IID uuid.UUID

// MustIID parses the canonical textual form of a capability identifier and
// panics if it is malformed. Intended for package-level identifier constants.
func MustIID(s string) IID {
	return IID(uuid.MustParse(s))
}

func (i IID) String() string {
	return uuid.UUID(i).String()
}

// IIDUnknown identifies the base capability set carried by every wrappable
// interface layout.
var IIDUnknown = MustIID("00000000-0000-0000-c000-000000000046")

// IIDOf returns the capability identifier of an interface layout type. The
// lookup calls IID on the zero value, so layout types must not read their
// receiver in that method.
func IIDOf[T Interface]() IID {
	var zero T
	return zero.IID()
}
