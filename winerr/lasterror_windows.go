//go:build windows

package winerr

import "golang.org/x/sys/windows"

// Last translates the calling thread's most recent foreign error code into a
// failing Status. The code is mapped through the standard
// facility-win32 HRESULT form so sign-based success checks keep working.
func Last() Status {
	errno := windows.GetLastError()
	if errno == nil {
		return Fail
	}
	code, ok := errno.(windows.Errno)
	if !ok || code == 0 {
		return Fail
	}
	// HRESULT_FROM_WIN32
	return Status(uint32(code)&0xFFFF | 0x80070000)
}

func (s Status) systemMessage() string {
	if s.Succeeded() {
		return ""
	}
	var buf [512]uint16
	n, err := windows.FormatMessage(
		windows.FORMAT_MESSAGE_FROM_SYSTEM|windows.FORMAT_MESSAGE_IGNORE_INSERTS,
		0, s.Code(), 0, buf[:], nil,
	)
	if err != nil || n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}
