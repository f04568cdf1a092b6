// Package selection provides the ordered keyed registry backing both
// selection sets of a generation session: maintenance cycles with their
// per-cycle configuration, and bare building-target IDs.
package selection

// Registry is an ordered set of entries keyed by string. Toggling flips
// membership; insertion order is preserved so request construction and
// list rendering stay deterministic. No two entries ever share a key.
type Registry[V any] struct {
	order    []string
	items    map[string]V
	defaults func(key string) V
}

// NewRegistry creates a registry whose entries are initialized by the
// defaults function when first toggled on.
func NewRegistry[V any](defaults func(key string) V) *Registry[V] {
	return &Registry[V]{
		items:    make(map[string]V),
		defaults: defaults,
	}
}

// NewSet creates a plain-set registry carrying only keys.
func NewSet() *Registry[string] {
	return NewRegistry(func(key string) string { return key })
}

// Toggle flips membership of key. Toggling off removes the entry and its
// value entirely; toggling back on starts over from defaults. Returns true
// if the key is present after the call.
func (r *Registry[V]) Toggle(key string) bool {
	if _, ok := r.items[key]; ok {
		delete(r.items, key)
		for i, k := range r.order {
			if k == key {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		return false
	}

	r.items[key] = r.defaults(key)
	r.order = append(r.order, key)
	return true
}

// Update applies patch to the entry for key only if it is present. A patch
// arriving after the entry was toggled off must not resurrect it, so an
// absent key is a no-op, not an error. Returns true if the patch applied.
func (r *Registry[V]) Update(key string, patch func(V) V) bool {
	v, ok := r.items[key]
	if !ok {
		return false
	}
	r.items[key] = patch(v)
	return true
}

// Contains reports whether key is currently selected.
func (r *Registry[V]) Contains(key string) bool {
	_, ok := r.items[key]
	return ok
}

// Get returns the entry for key, if present.
func (r *Registry[V]) Get(key string) (V, bool) {
	v, ok := r.items[key]
	return v, ok
}

// Keys returns the selected keys in insertion order.
func (r *Registry[V]) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Values returns the entries in insertion order.
func (r *Registry[V]) Values() []V {
	values := make([]V, 0, len(r.order))
	for _, k := range r.order {
		values = append(values, r.items[k])
	}
	return values
}

// Len returns the number of selected entries.
func (r *Registry[V]) Len() int {
	return len(r.items)
}

// Clear removes every entry.
func (r *Registry[V]) Clear() {
	r.order = r.order[:0]
	clear(r.items)
}
