// Package strlist keeps a dynamically sized list of independently
// allocated text buffers that are all freed together. The bytes live in an
// alloc.Arena; the list owns the handles with raw-release teardown.
package strlist

import (
	"unsafe"

	"github.com/funny-falcon/smallvec/alloc"
	"github.com/funny-falcon/smallvec/vec"
)

const MaxLen = 1 << 16

type text struct {
	Len  uint32
	Data [MaxLen]byte
}

func (t *text) String() string {
	sl := t.Data[:t.Len]
	return *(*string)(unsafe.Pointer(&sl))
}

// StringList owns every buffer it holds: Release frees them all and leaves
// the list empty and reusable. Strings returned by Str alias arena memory
// and die with their buffer.
type StringList struct {
	al   *alloc.Arena
	list *vec.Vec[alloc.Ptr]
}

func New(al *alloc.Arena) *StringList {
	l := &StringList{al: al}
	l.list = vec.NewOwned(al.Dealloc)
	l.list.Step = 4
	return l
}

func (l *StringList) Len() int {
	return l.list.Len()
}

// Append copies s into arena memory and stores the handle.
func (l *StringList) Append(s string) alloc.Ptr {
	if len(s) > MaxLen {
		panic("strlist: string is too long " + s[:64])
	}
	p := l.al.Alloc(4 + len(s))
	t := l.text(p)
	t.Len = uint32(len(s))
	copy(t.Data[:], s)
	l.list.Append(p)
	return p
}

func (l *StringList) Str(i int) string {
	return l.text(l.list.At(i)).String()
}

func (l *StringList) Strings() []string {
	res := make([]string, 0, l.list.Len())
	for _, p := range l.list.Slice() {
		res = append(res, l.text(p).String())
	}
	return res
}

// Include and FindIndex work on buffer handles, not contents: two equal
// strings in different buffers are different members.
func (l *StringList) Include(p alloc.Ptr) bool {
	return l.list.Include(p)
}

func (l *StringList) FindIndex(p alloc.Ptr) int {
	return l.list.FindIndex(p)
}

// Remove takes the buffer at index i out of the list without freeing it;
// the caller becomes responsible for its Dealloc.
func (l *StringList) Remove(i int) alloc.Ptr {
	return l.list.Remove(i)
}

// Release frees every held buffer and empties the list.
func (l *StringList) Release() {
	l.list.Release()
}

func (l *StringList) text(p alloc.Ptr) *text {
	var t *text
	l.al.Get(p, &t)
	return t
}
