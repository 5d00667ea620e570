// Package alloc is a chunked allocator for small raw buffers. Allocations
// are addressed by compact Ptr handles instead of Go pointers; memory comes
// from mmap-ed slabs carved into fixed-size chunks. Dealloc returns space
// by whole-chunk accounting: a chunk whose allocations are all freed goes
// back to the free list and is reused or unmapped.
package alloc

import (
	"log"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"
	"golang.org/x/sys/unix"
)

// Ptr addresses an allocation inside an Arena. 0 is the null handle;
// Dealloc(0) is a no-op.
type Ptr uint32

const SlabSize = 1 << 24
const ChunkShift = 18
const ChunkSize = 1 << 18
const ChunkMask = ChunkSize - 1

// MaxAlloc is the largest request a single Alloc accepts.
const MaxAlloc = ChunkSize - 8

// MaxChunks is how many chunks a Ptr can address.
const MaxChunks = 1 << (32 - ChunkShift)

// Arena hands out Ptr-addressed buffers. The zero value is ready for use.
// TotalAlloc counts currently allocated bytes (headers included),
// TotalFreed the bytes returned via Dealloc.
type Arena struct {
	sync.Mutex
	chunks []*[ChunkSize]byte
	live   []int32
	free   []uint32
	slab   []byte
	cur    uint32
	curOff uint32

	TotalAlloc int
	TotalFreed int
}

func (a *Arena) Alloc(ln int) Ptr {
	a.Lock()
	defer a.Unlock()
	return a.alloc(ln)
}

func (a *Arena) alloc(ln int) Ptr {
	if ln < 0 || ln > MaxAlloc {
		panic("alloc: bad size")
	}
	n := uint32(4 + (ln+3)&^3)
	if len(a.chunks) == 0 || a.curOff+n > ChunkSize {
		a.nextChunk()
	}
	off := a.curOff
	*(*uint32)(unsafe.Pointer(&a.chunks[a.cur][off])) = n
	a.curOff += n
	a.live[a.cur] += int32(n)
	a.TotalAlloc += int(n)
	return Ptr(a.cur<<ChunkShift | (off + 4))
}

func (a *Arena) Dealloc(p Ptr) {
	a.Lock()
	defer a.Unlock()
	a.dealloc(p)
}

func (a *Arena) dealloc(p Ptr) {
	if p == 0 {
		return
	}
	c := uint32(p) >> ChunkShift
	off := uint32(p)&ChunkMask - 4
	n := *(*uint32)(unsafe.Pointer(&a.chunks[c][off]))
	a.live[c] -= int32(n)
	if a.live[c] < 0 {
		panic("alloc: dealloc of freed ptr")
	}
	a.TotalAlloc -= int(n)
	a.TotalFreed += int(n)
	if a.live[c] == 0 && c != a.cur {
		a.free = append(a.free, c)
	}
}

// Get sets *ptr (a pointer to some pointer type) to the allocation's
// memory, giving a typed view of it.
func (a *Arena) Get(p Ptr, ptr interface{}) {
	*(*unsafe.Pointer)(reflect2.PtrOf(ptr)) = a.GetPtr(p)
}

func (a *Arena) GetPtr(p Ptr) unsafe.Pointer {
	return unsafe.Pointer(&a.chunks[uint32(p)>>ChunkShift][uint32(p)&ChunkMask])
}

// Bytes views ln bytes of the allocation. The slice aliases arena memory
// and must not be used after the allocation is freed.
func (a *Arena) Bytes(p Ptr, ln int) []byte {
	return unsafe.Slice((*byte)(a.GetPtr(p)), ln)
}

// Size returns the usable size of the allocation behind p (the requested
// length rounded up), 0 for the null handle.
func (a *Arena) Size(p Ptr) int {
	if p == 0 {
		return 0
	}
	off := uint32(p)&ChunkMask - 4
	n := *(*uint32)(unsafe.Pointer(&a.chunks[uint32(p)>>ChunkShift][off]))
	return int(n) - 4
}

func (a *Arena) NumChunks() int {
	a.Lock()
	defer a.Unlock()
	return len(a.chunks)
}

func (a *Arena) FreeChunks() int {
	a.Lock()
	defer a.Unlock()
	return len(a.free)
}

// ReleaseChunks unmaps every fully freed chunk. The arena stays usable;
// released chunk slots are never reused.
func (a *Arena) ReleaseChunks() {
	a.Lock()
	defer a.Unlock()
	for _, c := range a.free {
		if err := munmap(a.chunks[c][:]); err != nil {
			log.Fatal(err)
		}
		a.chunks[c] = nil
	}
	a.free = a.free[:0]
}

// munmap unmaps a piece of a slab. unix.Munmap only accepts whole
// mappings, so it goes through the raw syscall.
func munmap(b []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_MUNMAP,
		uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func (a *Arena) nextChunk() {
	if len(a.chunks) > 0 && a.live[a.cur] == 0 {
		a.free = append(a.free, a.cur)
	}
	if ln := len(a.free); ln > 0 {
		a.cur = a.free[ln-1]
		a.free = a.free[:ln-1]
	} else {
		if len(a.chunks) == MaxChunks {
			panic("alloc: too many chunks")
		}
		a.chunks = append(a.chunks, a.genChunk())
		a.live = append(a.live, 0)
		a.cur = uint32(len(a.chunks) - 1)
	}
	a.curOff = 4
}

func (a *Arena) genChunk() *[ChunkSize]byte {
	if len(a.slab) == 0 {
		var err error
		a.slab, err = unix.Mmap(-1, 0, SlabSize, unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			log.Fatal(err)
		}
	}
	chunk := (*[ChunkSize]byte)(unsafe.Pointer(&a.slab[0]))
	a.slab = a.slab[ChunkSize:]
	return chunk
}
