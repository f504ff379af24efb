// Package wide transcodes between Go strings and the UTF-16 code-unit
// buffers used by foreign wide-character APIs.
package wide

import "unicode/utf16"

// Encode returns the UTF-16 encoding of s with no terminator.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// EncodeNull returns the UTF-16 encoding of s followed by a NUL code unit,
// the form expected by foreign calls taking a wide C string.
func EncodeNull(s string) []uint16 {
	encoded := utf16.Encode([]rune(s))
	return append(encoded, 0)
}

// Decode converts the whole buffer back to a string. Embedded NULs are kept.
func Decode(w []uint16) string {
	return string(utf16.Decode(w))
}

// DecodeNull converts the buffer up to (not including) the first NUL code
// unit, or the whole buffer if none is present.
func DecodeNull(w []uint16) string {
	for i, c := range w {
		if c == 0 {
			return Decode(w[:i])
		}
	}
	return Decode(w)
}
