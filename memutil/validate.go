package memutil

// Validatable is anything that can cross-check its own internal consistency.
// DebugValidate runs these checks in debug builds.
type Validatable interface {
	Validate() error
}
