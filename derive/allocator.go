package derive

// Allocator supplies the working buffers of a derivation. Buffers handed to
// Release have already been wiped; an Allocator may pool them.
type Allocator interface {
	Accumulators(n int) []uint16
	Alphabet() *Alphabet
	Release(acc []uint16, alphabet *Alphabet)
}

// heapAllocator allocates fresh buffers and lets the garbage collector
// reclaim them.
type heapAllocator struct{}

func (heapAllocator) Accumulators(n int) []uint16 { return make([]uint16, n) }

func (heapAllocator) Alphabet() *Alphabet { return &Alphabet{} }

func (heapAllocator) Release([]uint16, *Alphabet) {}
