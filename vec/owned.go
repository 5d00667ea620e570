package vec

// Releaser is anything that can tear itself down.
type Releaser interface {
	Release()
}

// NewOwned builds a vector that owns what its elements refer to: Clear,
// Release and Assign run drop over every non-zero element exactly once.
// Zero elements (nil pointers, null handles) are skipped, so tearing down
// a null is a no-op.
//
// Pass the allocator's Dealloc to get raw-release semantics for plain
// allocated buffers, or a function that runs the element's own teardown
// for objects with state (see NewOwnedReleaser).
//
// Ownership is a property of the vector holding the handle, not of the
// handle itself: moving elements between an owning and a plain vector, or
// cloning an owning vector and releasing both, silently changes who frees
// what. Clone therefore strips the policy; Remove hands the element back
// without tearing it down.
func NewOwned[T comparable](drop func(T)) *Vec[T] {
	return &Vec[T]{drop: drop}
}

// NewOwnedReleaser builds an owning vector whose elements destroy
// themselves via Release.
func NewOwnedReleaser[T interface {
	comparable
	Releaser
}]() *Vec[T] {
	return &Vec[T]{drop: func(x T) { x.Release() }}
}

// Release tears down all elements and empties the vector, same as Clear.
// It makes owning vectors composable: a Vec of Releasers releases its
// members, and is itself a Releaser.
func (v *Vec[T]) Release() {
	v.Clear()
}

// Owning reports whether a teardown policy is set.
func (v *Vec[T]) Owning() bool {
	return v.drop != nil
}
