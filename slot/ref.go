package slot

import (
	"weak"

	"github.com/kamstrup/intmap"
)

// Ref is a stable reference object for a stored element. Unlike a bare
// Handle, at most one live Ref exists per element: CreateRef returns the
// same pointer for the same element as long as someone still holds it, so
// refs can be compared by pointer identity. A Ref is invalidated when its
// element is removed from the store.
type Ref[T any] struct {
	Handle Handle
	Store  *Store[T]
}

// CreateRef returns the canonical Ref for the element the handle refers to,
// or nil if the handle is invalid.
func (s *Store[T]) CreateRef(h Handle) *Ref[T] {
	if s.entryAt(h) == nil {
		return nil
	}

	if s.refs == nil {
		s.refs = intmap.New[Handle, weak.Pointer[Ref[T]]](16)
	}

	// Check if we already have a ref for this element
	if weakPtr, ok := s.refs.Get(h); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		s.refs.Del(h)
	}

	ref := &Ref[T]{
		Handle: h,
		Store:  s,
	}

	// Only a weak pointer is kept, so an unused Ref can be collected
	s.refs.Put(h, weak.Make(ref))

	return ref
}

// ResolveRef returns the handle a ref currently stands for. Returns
// (InvalidHandle, false) once the ref has been invalidated.
func (s *Store[T]) ResolveRef(ref *Ref[T]) (Handle, bool) {
	if ref == nil || ref.Handle == InvalidHandle {
		return InvalidHandle, false
	}
	return ref.Handle, true
}

// InvalidateRef detaches a ref from its element without removing the element
// from the store. Returns false if the ref was already invalid.
func (s *Store[T]) InvalidateRef(ref *Ref[T]) bool {
	if ref == nil || ref.Handle == InvalidHandle {
		return false
	}

	if s.refs != nil {
		s.refs.Del(ref.Handle)
	}

	ref.Handle = InvalidHandle
	ref.Store = nil
	return true
}

// dropRef invalidates the ref for a handle whose element is being removed.
func (s *Store[T]) dropRef(h Handle) {
	weakPtr, ok := s.refs.Get(h)
	if !ok {
		return
	}
	if ref := weakPtr.Value(); ref != nil {
		ref.Handle = InvalidHandle
		ref.Store = nil
	}
	s.refs.Del(h)
}
