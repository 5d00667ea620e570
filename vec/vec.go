// Package vec implements a growable contiguous vector with an optional
// element teardown policy. There are no bounds asserts beyond what the
// runtime gives you: indices you pass in have to be valid.
package vec

// Vec is an ordered, contiguously stored sequence of T. The zero value is
// an empty non-owning vector ready for use. Step tunes how eagerly storage
// grows: 0 means amortized doubling, a positive value reserves capacity in
// multiples of Step. Step never affects observable contents, so vectors
// with different steps copy and assign freely.
//
// Any mutation that resizes storage invalidates slices previously obtained
// from Slice or Grow.
type Vec[T comparable] struct {
	items []T
	drop  func(T)

	Step int
}

func New[T comparable]() *Vec[T] {
	return &Vec[T]{}
}

// NewStep builds a vector that reserves capacity in multiples of step.
func NewStep[T comparable](step int) *Vec[T] {
	return &Vec[T]{Step: step}
}

// From builds a non-owning vector holding xs in order.
func From[T comparable](xs ...T) *Vec[T] {
	v := &Vec[T]{}
	v.items = append(v.items, xs...)
	return v
}

func (v *Vec[T]) Len() int {
	return len(v.items)
}

func (v *Vec[T]) Cap() int {
	return cap(v.items)
}

func (v *Vec[T]) At(i int) T {
	return v.items[i]
}

func (v *Vec[T]) Set(i int, x T) {
	v.items[i] = x
}

// Slice is a view of the live elements, valid until the next mutation.
func (v *Vec[T]) Slice() []T {
	return v.items
}

func (v *Vec[T]) Append(x T) {
	v.reserve(1)
	v.items = append(v.items, x)
}

// Insert places x at index i, shifting the tail one slot right.
// i must be in [0, Len()]; i == Len() is equivalent to Append.
// Returns the index of the new element.
func (v *Vec[T]) Insert(i int, x T) int {
	v.reserve(1)
	v.items = v.items[:len(v.items)+1]
	copy(v.items[i+1:], v.items[i:])
	v.items[i] = x
	return i
}

// FindIndex returns the lowest index holding x, or -1.
func (v *Vec[T]) FindIndex(x T) int {
	for i, it := range v.items {
		if it == x {
			return i
		}
	}
	return -1
}

// Include appends x unless it is already present. The return value reports
// prior membership: true means x was already there and nothing changed.
func (v *Vec[T]) Include(x T) bool {
	member := v.FindIndex(x) >= 0
	if !member {
		v.Append(x)
	}
	return member
}

// Remove takes the element at index i out, preserving the order of the
// rest. The element is returned untouched: for an owning vector this hands
// responsibility for it back to the caller.
func (v *Vec[T]) Remove(i int) T {
	x := v.items[i]
	last := len(v.items) - 1
	copy(v.items[i:], v.items[i+1:])
	var zero T
	v.items[last] = zero
	v.items = v.items[:last]
	return x
}

// Clear tears down every non-zero element (when a teardown policy is set)
// and empties the vector. Storage is kept; the vector stays usable.
func (v *Vec[T]) Clear() {
	if v.drop != nil {
		var zero T
		for _, x := range v.items {
			if x != zero {
				v.drop(x)
			}
		}
	}
	clear(v.items)
	v.items = v.items[:0]
}

// Clone copies the elements by value. The clone never carries a teardown
// policy: pointees stay owned by the source (see NewOwned).
func (v *Vec[T]) Clone() *Vec[T] {
	n := &Vec[T]{Step: v.Step}
	n.items = append(n.items, v.items...)
	return n
}

// Assign replaces the receiver's contents with a copy of o's elements,
// tearing down the previous contents first. The receiver keeps its own
// teardown policy and step.
func (v *Vec[T]) Assign(o *Vec[T]) {
	if v == o {
		return
	}
	v.Clear()
	v.reserve(len(o.items))
	v.items = append(v.items, o.items...)
}

// Grow extends the vector by n zero-valued elements in one resize and
// returns a view of them, valid until the next mutation.
func (v *Vec[T]) Grow(n int) []T {
	v.reserve(n)
	ln := len(v.items)
	v.items = v.items[:ln+n]
	clear(v.items[ln:])
	return v.items[ln:]
}

func (v *Vec[T]) reserve(n int) {
	need := len(v.items) + n
	if need <= cap(v.items) {
		return
	}
	var newcap int
	if v.Step > 0 {
		newcap = (need + v.Step - 1) / v.Step * v.Step
	} else {
		newcap = cap(v.items) * 2
		if newcap == 0 {
			newcap = 4
		}
		for newcap < need {
			newcap *= 2
		}
	}
	items := make([]T, len(v.items), newcap)
	copy(items, v.items)
	v.items = items
}

// Grow extends an arbitrary slice by n zero-valued elements in one resize
// and returns a view of the new elements. Further mutation of *sp
// invalidates the view.
func Grow[T any](sp *[]T, n int) []T {
	s := *sp
	ln := len(s)
	if ln+n <= cap(s) {
		s = s[:ln+n]
		clear(s[ln:])
	} else {
		newcap := 2 * cap(s)
		if newcap < ln+n {
			newcap = ln + n
		}
		ns := make([]T, ln+n, newcap)
		copy(ns, s)
		s = ns
	}
	*sp = s
	return s[ln:]
}
