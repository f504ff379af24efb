//go:build !windows

package winerr

// Last translates the calling thread's most recent foreign error code into a
// failing Status. Without an operating-system error channel there is nothing
// to read, so the unspecified-failure code is returned.
func Last() Status {
	return Fail
}

func (s Status) systemMessage() string {
	return ""
}
