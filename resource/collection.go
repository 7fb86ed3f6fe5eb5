package resource

// Collection is a named, lazily materialized bucket that multiple task
// constructors can each contribute an element to, and a later constructor
// can read back in full. It mirrors the "resource collections" the
// original node framework kept alongside its primary resource map
// (original_source/core/lib/node/src/node/mod.rs, `resource_collections`),
// resolved here to share the one name namespace that map's own TODO left
// unresolved: collections live in the same Registry.cache map as plain
// resources, just holding a *Collection[T] value instead of a T.
type Collection[T any] struct {
	items []T
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Add appends an element. Only safe during the single-threaded constructor
// phase, same as the rest of the registry.
func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
}

// All returns every element added so far, in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// CollectionOf fetches (creating if absent) the named collection of T from
// the registry. Unlike Get, this never consults the provider: collections
// are populated purely by constructors calling Add, not by the external
// ResourceProvider.
func CollectionOf[T any](r *Registry, name string) *Collection[T] {
	if v, ok := r.cache[name]; ok {
		return v.(*Collection[T])
	}
	c := NewCollection[T]()
	r.cache[name] = c
	return c
}
