// Package winerr carries the numeric status codes produced by foreign
// operating-system calls. A Status is opaque to the packages in this module:
// they only ever ask whether it reports success, and surface it unchanged
// otherwise.
package winerr

import "fmt"

// Status is a result code returned from a foreign call. It follows the
// HRESULT sign convention: non-negative values report success, negative
// values report failure. A failing Status is usable directly as an error.
type Status int32

const (
	// OK is the canonical success code.
	OK Status = 0
	// Fail is the unspecified-failure code (E_FAIL).
	Fail Status = -2147467259
	// NoInterface reports that a queried capability is not supported
	// (E_NOINTERFACE).
	NoInterface Status = -2147467262
	// InvalidArg reports a rejected argument (E_INVALIDARG).
	InvalidArg Status = -2147024809
	// OutOfMemory reports foreign allocator exhaustion (E_OUTOFMEMORY).
	OutOfMemory Status = -2147024882
)

// Succeeded reports whether the status represents a successful outcome.
func (s Status) Succeeded() bool {
	return s >= 0
}

// Failed reports whether the status represents a failure.
func (s Status) Failed() bool {
	return s < 0
}

// Code returns the status as the unsigned form used in foreign headers and
// diagnostics (0x8xxxxxxx for failures).
func (s Status) Code() uint32 {
	return uint32(s)
}

func (s Status) Error() string {
	if s.Succeeded() {
		return fmt.Sprintf("status 0x%08X reports success", s.Code())
	}
	message := s.systemMessage()
	if message == "" {
		return fmt.Sprintf("foreign call failed with status 0x%08X", s.Code())
	}
	return fmt.Sprintf("foreign call failed with status 0x%08X: %s", s.Code(), message)
}

func (s Status) String() string {
	if s.Succeeded() {
		return fmt.Sprintf("status 0x%08X", s.Code())
	}
	return s.Error()
}
