//go:build !wio_debug

package memutil

// DebugValidate runs the object's consistency checks and panics on the first
// failure. It no-ops unless the wio_debug build tag is present.
func DebugValidate(validatable Validatable) {
}

// DebugCheckPow2 panics when value is not a power of two. It no-ops unless
// the wio_debug build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
}
