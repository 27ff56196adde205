package slot

import "iter"

// All returns an iterator over all live elements in slot order, paired with
// their handles. The yielded pointers may be used to mutate elements in
// place. Inserting or removing while iterating is undefined.
func (s *Store[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range s.entries {
			e := &s.entries[i]
			if !e.occupied {
				continue
			}
			if !yield(NewHandle(uint32(i), e.generation), &e.value) {
				return
			}
		}
	}
}

// Values returns an iterator over just the live elements (without handles).
func (s *Store[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, v := range s.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Handles returns an iterator over the handles of all live elements.
func (s *Store[T]) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for h := range s.All() {
			if !yield(h) {
				return
			}
		}
	}
}
