package domain

// Patch is a partially-specified field: absent, explicitly null, or set.
// The zero value is absent.
type Patch[T any] struct {
	Present bool
	Value   *T
}

// Keep returns an absent patch.
func Keep[T any]() Patch[T] { return Patch[T]{} }

// Clear returns a patch that sets the field to null.
func Clear[T any]() Patch[T] { return Patch[T]{Present: true} }

// Set returns a patch that assigns v.
func Set[T any](v T) Patch[T] { return Patch[T]{Present: true, Value: &v} }

// Apply returns the patched value, falling back to current when absent.
func (p Patch[T]) Apply(current *T) *T {
	if !p.Present {
		return current
	}
	return p.Value
}
