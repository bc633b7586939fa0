package reactive

// UnsafeMutationError is the panic value raised when code attempts to write
// a signal while a Derived's fn is on top of the reaction stack (§4.4 step 1,
// §7). Writes are forbidden inside a derived computation because a Derived
// must be a pure projection of its deps — recover and type-assert against
// this type to handle it, the way the teacher's own hook-order validation
// treats other programmer-error conditions as panics rather than threading
// an error return through every signal method.
type UnsafeMutationError struct {
	// NodeID is the ID of the source that the write was attempted on.
	NodeID uint64
}

func (e *UnsafeMutationError) Error() string {
	return "reactive: write forbidden inside a derived's computation"
}
