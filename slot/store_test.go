package slot_test

import (
	"fmt"
	"testing"

	"github.com/plus3/slotvec/slot"
	"github.com/stretchr/testify/assert"
)

func TestInsertGetRoundTrip(t *testing.T) {
	store := slot.New[string]()

	h := store.Insert("alpha")

	got := store.Get(h)
	assert.NotNil(t, got)
	assert.Equal(t, "alpha", *got)
}

func TestRemoveReturnsValue(t *testing.T) {
	store := slot.New[Sprite]()

	h := store.Insert(Sprite{Name: "player", X: 4, Y: 2})

	value, ok := store.Remove(h)
	assert.True(t, ok)
	assert.Equal(t, "player", value.Name)
	assert.Equal(t, float32(4), value.X)
}

func TestRemoveInvalidatesHandle(t *testing.T) {
	store := slot.New[int]()

	h := store.Insert(42)

	_, ok := store.Remove(h)
	assert.True(t, ok)

	// The handle is stale now: lookups miss and a second remove is a no-op
	assert.Nil(t, store.Get(h))
	assert.False(t, store.Contains(h))

	_, ok = store.Remove(h)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	store := slot.New[string]()

	h1 := store.Insert("first")
	_, ok := store.Remove(h1)
	assert.True(t, ok)

	h2 := store.Insert("second")

	// Same slot, different generation: the two handles are distinct values
	assert.Equal(t, h1.Index(), h2.Index())
	assert.NotEqual(t, h1.Generation(), h2.Generation())
	assert.NotEqual(t, h1, h2)

	assert.Nil(t, store.Get(h1))
	got := store.Get(h2)
	assert.NotNil(t, got)
	assert.Equal(t, "second", *got)
}

func TestForeignHandleRejected(t *testing.T) {
	store := slot.New[int]()
	h := store.Insert(7)

	// Out-of-range index
	outOfRange := slot.NewHandle(99, 0)
	assert.Nil(t, store.Get(outOfRange))
	assert.False(t, store.Contains(outOfRange))
	_, ok := store.Remove(outOfRange)
	assert.False(t, ok)

	// Valid index, wrong generation
	wrongGen := slot.NewHandle(h.Index(), h.Generation()+1)
	assert.Nil(t, store.Get(wrongGen))
	_, ok = store.Remove(wrongGen)
	assert.False(t, ok)

	// Nothing above mutated the store
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 7, *store.Get(h))
}

func TestHandleFromOtherStoreMisses(t *testing.T) {
	a := slot.New[int]()
	b := slot.New[int]()

	ha := a.Insert(1)
	a.Insert(2)

	// b has no slot for ha's index, so the foreign handle fails soft
	assert.Nil(t, b.Get(ha))
	_, ok := b.Remove(ha)
	assert.False(t, ok)
}

func TestLenTracking(t *testing.T) {
	tests := []struct {
		inserts int
		removes int
	}{
		{0, 0},
		{1, 0},
		{1, 1},
		{10, 3},
		{100, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("inserts=%d,removes=%d", tt.inserts, tt.removes), func(t *testing.T) {
			store := slot.New[int]()

			handles := make([]slot.Handle, 0, tt.inserts)
			for i := 0; i < tt.inserts; i++ {
				handles = append(handles, store.Insert(i))
			}
			for i := 0; i < tt.removes; i++ {
				_, ok := store.Remove(handles[i])
				assert.True(t, ok)
			}

			assert.Equal(t, tt.inserts-tt.removes, store.Len())
			assert.Equal(t, tt.inserts == tt.removes, store.IsEmpty())
		})
	}
}

func TestFreeListIsLIFO(t *testing.T) {
	store := slot.New[string]()

	h1 := store.Insert("a")
	h2 := store.Insert("b")
	h3 := store.Insert("c")

	store.Remove(h2)
	store.Remove(h1)

	// Most recently freed slot is reused first
	h4 := store.Insert("d")
	assert.Equal(t, h1.Index(), h4.Index())

	h5 := store.Insert("e")
	assert.Equal(t, h2.Index(), h5.Index())

	// h3 was never removed and is untouched by the churn
	assert.Equal(t, "c", *store.Get(h3))
}

func TestChurnScenario(t *testing.T) {
	store := slot.New[int]()

	ha := store.Insert(123213)
	hb := store.Insert(34234)
	hc := store.Insert(654654)

	_, ok := store.Remove(hb)
	assert.True(t, ok)

	hd := store.Insert(999)

	assert.Nil(t, store.Get(hb))
	assert.Equal(t, 999, *store.Get(hd))
	assert.Equal(t, hb.Index(), hd.Index())
	assert.Equal(t, hb.Generation()+1, hd.Generation())
	assert.Equal(t, 3, store.Len())

	assert.Equal(t, 123213, *store.Get(ha))
	assert.Equal(t, 654654, *store.Get(hc))
}

func TestGetPointerAllowsMutation(t *testing.T) {
	store := slot.New[Counter]()

	h := store.Insert(Counter{})

	store.Get(h).Hits++
	store.Get(h).Hits++

	assert.Equal(t, 2, store.Get(h).Hits)
}

func TestHandlesSurviveGrowth(t *testing.T) {
	store := slot.New[int]()

	handles := make([]slot.Handle, 0, 1000)
	for i := 0; i < 1000; i++ {
		handles = append(handles, store.Insert(i))
	}

	// Fresh slots are issued at generation 0 in append order
	for i, h := range handles {
		assert.Equal(t, uint32(i), h.Index())
		assert.Equal(t, uint32(0), h.Generation())
	}

	// Every handle still resolves after the backing array grew many times
	for i, h := range handles {
		got := store.Get(h)
		assert.NotNil(t, got)
		assert.Equal(t, i, *got)
	}
}

func TestGenerationCountsRemovalsPerSlot(t *testing.T) {
	store := slot.New[int]()

	h := store.Insert(0)
	index := h.Index()

	for i := 1; i <= 5; i++ {
		_, ok := store.Remove(h)
		assert.True(t, ok)

		h = store.Insert(i)
		assert.Equal(t, index, h.Index())
		assert.Equal(t, uint32(i), h.Generation())
	}
}

func TestWithCapacity(t *testing.T) {
	store := slot.WithCapacity[int](64)

	assert.Equal(t, 0, store.Len())
	assert.True(t, store.IsEmpty())
	assert.GreaterOrEqual(t, store.Cap(), 64)

	h := store.Insert(1)
	assert.Equal(t, 1, *store.Get(h))
}

func TestMustGet(t *testing.T) {
	store := slot.New[string]()

	h := store.Insert("here")
	assert.Equal(t, "here", *store.MustGet(h))

	store.Remove(h)
	assert.Panics(t, func() {
		store.MustGet(h)
	})
}

func TestZeroValueElements(t *testing.T) {
	store := slot.New[int]()

	h := store.Insert(0)

	// A stored zero value is still a live element
	assert.True(t, store.Contains(h))
	got := store.Get(h)
	assert.NotNil(t, got)
	assert.Equal(t, 0, *got)
	assert.Equal(t, 1, store.Len())
}
