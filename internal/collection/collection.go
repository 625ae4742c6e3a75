// Package collection provides the ordered, keyed in-memory collections that
// back the chat transcript and the interaction list. A Collection is not
// internally locked; the owning state container serializes access.
package collection

// Collection is an ordered sequence of T keyed by keyFn. Keys are expected
// to be unique but Append does not enforce it; duplicate keys are a
// tolerated degenerate case of the append path.
type Collection[T any] struct {
	items []T
	keyFn func(T) string
}

func New[T any](keyFn func(T) string) *Collection[T] {
	return &Collection[T]{keyFn: keyFn}
}

// Append inserts the item at the end. No key-collision check.
func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item)
}

// ReplaceByKey replaces the first element whose key matches item's key.
// No-op when nothing matches.
func (c *Collection[T]) ReplaceByKey(item T) {
	key := c.keyFn(item)
	for i := range c.items {
		if c.keyFn(c.items[i]) == key {
			c.items[i] = item
			return
		}
	}
}

// RemoveByKey removes every element whose key equals key.
func (c *Collection[T]) RemoveByKey(key string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if c.keyFn(it) != key {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// ReplaceAll swaps the whole collection for items, preserving their order.
// This is the settlement path for list fetches.
func (c *Collection[T]) ReplaceAll(items []T) {
	c.items = append(c.items[:0:0], items...)
}

// Items returns a copy of the current contents in order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}
