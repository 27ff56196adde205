package slot

// Handle encodes both the slot generation (upper 32 bits) and the slot index
// (lower 32 bits). It is the only way to reach an element stored in a Store:
// the index says where the element lives, the generation says which occupant
// of that slot the handle was issued for. Handles are plain values — copy
// them, compare them with ==, use them as map keys.
type Handle uint64

// InvalidHandle is a handle no store ever issues. The zero Handle is a real
// handle (slot 0, generation 0), so code that needs a "no handle" marker uses
// this sentinel instead.
const InvalidHandle = ^Handle(0)

// NewHandle creates a Handle from a slot index and a generation
func NewHandle(index uint32, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the handle
func (h Handle) Index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

// Generation extracts the generation from the handle
func (h Handle) Generation() uint32 {
	return uint32(h >> 32)
}
