package strlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/smallvec/alloc"
	"github.com/funny-falcon/smallvec/strlist"
)

func TestStringList(t *testing.T) {
	var a alloc.Arena
	l := strlist.New(&a)
	p1 := l.Append("one")
	p2 := l.Append("two")
	l.Append("three")
	require.Equal(t, 3, l.Len())
	require.Equal(t, "one", l.Str(0))
	require.Equal(t, "two", l.Str(1))
	require.Equal(t, "three", l.Str(2))
	require.Equal(t, []string{"one", "two", "three"}, l.Strings())

	require.True(t, l.Include(p2))
	require.Equal(t, 3, l.Len())
	require.Equal(t, 0, l.FindIndex(p1))

	require.True(t, a.TotalAlloc > 0)
	l.Release()
	require.Equal(t, 0, l.Len())
	require.Equal(t, 0, a.TotalAlloc)

	// a fresh cycle leaks nothing from the previous one
	l.Append("four")
	require.Equal(t, "four", l.Str(0))
	l.Release()
	require.Equal(t, 0, l.Len())
	require.Equal(t, 0, a.TotalAlloc)
}

func TestStringListRemove(t *testing.T) {
	var a alloc.Arena
	l := strlist.New(&a)
	l.Append("keep")
	p := l.Append("mine")
	got := l.Remove(1)
	require.Equal(t, p, got)
	require.Equal(t, 1, l.Len())

	l.Release()
	require.True(t, a.TotalAlloc > 0)
	a.Dealloc(got)
	require.Equal(t, 0, a.TotalAlloc)
}

func TestStringListEmptyString(t *testing.T) {
	var a alloc.Arena
	l := strlist.New(&a)
	p := l.Append("")
	require.NotEqual(t, alloc.Ptr(0), p)
	require.Equal(t, "", l.Str(0))
	l.Release()
	require.Equal(t, 0, a.TotalAlloc)
}

func TestStringListSharedHandles(t *testing.T) {
	// handle identity, not content: the same text appended twice is two
	// independently owned buffers
	var a alloc.Arena
	l := strlist.New(&a)
	p1 := l.Append("dup")
	p2 := l.Append("dup")
	require.NotEqual(t, p1, p2)
	require.False(t, l.Include(alloc.Ptr(0)))
	require.Equal(t, 3, l.Len())
	l.Remove(2)
	l.Release()
	require.Equal(t, 0, a.TotalAlloc)
}
