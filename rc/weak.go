package rc

// Weak is a non-owning handle: it observes a block's liveness without
// keeping the value alive. Obtain one with Strong.Downgrade; read the value
// only through Lock. The zero value is empty.
type Weak[T any] struct {
	b block
}

// Clone returns a new observing handle on the same block.
func (w Weak[T]) Clone() Weak[T] {
	if w.b != nil {
		incWeak(w.b)
	}
	return Weak[T]{b: w.b}
}

// Move transfers the observation to the returned handle and empties w.
func (w *Weak[T]) Move() Weak[T] {
	b := w.b
	w.b = nil
	return Weak[T]{b: b}
}

// Assign replaces w's link with a share of other's, acquiring before
// releasing. Self-assignment is a no-op.
func (w *Weak[T]) Assign(other Weak[T]) {
	if w.b == other.b {
		return
	}
	old := w.b
	if other.b != nil {
		incWeak(other.b)
	}
	w.b = other.b
	if old != nil {
		decWeak(old)
	}
}

// MoveFrom steals other's link, releasing w's previous one.
func (w *Weak[T]) MoveFrom(other *Weak[T]) {
	if w == other {
		return
	}
	old := w.b
	w.b = other.b
	other.b = nil
	if old != nil {
		decWeak(old)
	}
}

// Expired reports whether the managed value has been destroyed. A weak
// handle that never attached to a block is expired.
func (w Weak[T]) Expired() bool {
	return w.b == nil || w.b.base().strong == 0
}

// UseCount returns the block's current strong count, 0 when detached.
func (w Weak[T]) UseCount() int64 {
	if w.b == nil {
		return 0
	}
	return w.b.base().strong
}

// Lock promotes w to an owning handle. If the value is gone, or w never
// attached, the result is empty and no count changes.
func (w Weak[T]) Lock() Strong[T] {
	if w.b == nil || w.b.base().strong == 0 {
		return Strong[T]{}
	}
	incStrong(w.b)
	return Strong[T]{b: w.b}
}

// Release drops w's link, freeing the block if it was the last handle of
// either kind. w is left empty; releasing an empty handle is a no-op.
func (w *Weak[T]) Release() {
	if w.b == nil {
		return
	}
	b := w.b
	w.b = nil
	decWeak(b)
}

// Reset is Release under its std smart-pointer name.
func (w *Weak[T]) Reset() {
	w.Release()
}
