package slot

import (
	"weak"

	"github.com/kamstrup/intmap"
)

// noIndex marks the end of the free list. The index space tops out one below
// it, so it never collides with a real slot.
const noIndex = ^uint32(0)

// entry is one slot of the backing array. occupied selects which fields are
// meaningful: value while occupied, next (the free-list link) while vacant.
// generation is live in both states — while vacant it is the generation the
// next occupant will be issued under.
type entry[T any] struct {
	value      T
	next       uint32
	generation uint32
	occupied   bool
}

// Store is a growable, array-backed container that hands out stable,
// generation-tagged handles to its elements. Removing an element frees its
// slot for reuse, but bumps the slot's generation so every handle issued for
// the old occupant turns stale: Get, Remove and Contains all check the
// generation and fail soft on a stale, foreign or out-of-range handle.
//
// A slot's generation wraps around after 2^32 remove/reinsert cycles, at
// which point a handle from 2^32 generations ago would match the current
// occupant again. The store does not guard against this.
//
// A Store is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
type Store[T any] struct {
	entries  []entry[T]
	freeHead uint32
	count    int
	refs     *intmap.Map[Handle, weak.Pointer[Ref[T]]]
}

// New creates an empty Store.
func New[T any]() *Store[T] {
	return WithCapacity[T](0)
}

// WithCapacity creates an empty Store with room for n elements before the
// backing array has to grow.
func WithCapacity[T any](n int) *Store[T] {
	return &Store[T]{
		entries:  make([]entry[T], 0, n),
		freeHead: noIndex,
	}
}

// Insert stores a value and returns the handle it is reachable under. The
// most recently freed slot is reused first; with no free slot the backing
// array grows by one. Insert panics if the slot index space (2^32-1 slots)
// is exhausted.
func (s *Store[T]) Insert(value T) Handle {
	s.count++

	if s.freeHead != noIndex {
		index := s.freeHead
		e := &s.entries[index]
		s.freeHead = e.next
		e.occupied = true
		e.value = value
		return NewHandle(index, e.generation)
	}

	if uint64(len(s.entries)) >= uint64(noIndex) {
		panic("slot: store is full, slot index space exhausted")
	}

	index := uint32(len(s.entries))
	s.entries = append(s.entries, entry[T]{value: value, occupied: true})
	return NewHandle(index, 0)
}

// Remove takes the element the handle refers to out of the store and returns
// it. The slot is pushed onto the free list with its generation bumped, so
// the handle (and every copy of it) is stale from here on. Returns the zero
// value and false for an invalid handle, without mutating the store.
func (s *Store[T]) Remove(h Handle) (T, bool) {
	var zero T

	e := s.entryAt(h)
	if e == nil {
		return zero, false
	}

	if s.refs != nil {
		s.dropRef(h)
	}

	value := e.value
	e.value = zero // release the value for the collector
	e.occupied = false
	e.generation++
	e.next = s.freeHead
	s.freeHead = h.Index()
	s.count--
	return value, true
}

// Get returns a pointer to the element the handle refers to, or nil if the
// handle is stale, foreign or out of range. The pointer may be used to
// mutate the element in place, but is only stable until the next Insert
// (which may grow the backing array) or until the element is removed.
func (s *Store[T]) Get(h Handle) *T {
	e := s.entryAt(h)
	if e == nil {
		return nil
	}
	return &e.value
}

// MustGet is Get for handles the caller knows are live. It panics on an
// invalid handle instead of returning nil.
func (s *Store[T]) MustGet(h Handle) *T {
	e := s.entryAt(h)
	if e == nil {
		panic("slot: invalid handle")
	}
	return &e.value
}

// Contains reports whether the handle refers to a live element.
func (s *Store[T]) Contains(h Handle) bool {
	return s.entryAt(h) != nil
}

// Len returns the number of live elements.
func (s *Store[T]) Len() int {
	return s.count
}

// IsEmpty reports whether the store holds no live elements.
func (s *Store[T]) IsEmpty() bool {
	return s.count == 0
}

// Cap returns the capacity of the backing array.
func (s *Store[T]) Cap() int {
	return cap(s.entries)
}

// entryAt resolves a handle to its slot, or nil if the handle is invalid:
// index out of range, slot vacant, or generation mismatch.
func (s *Store[T]) entryAt(h Handle) *entry[T] {
	index := h.Index()
	if uint64(index) >= uint64(len(s.entries)) {
		return nil
	}
	e := &s.entries[index]
	if !e.occupied || e.generation != h.Generation() {
		return nil
	}
	return e
}
