package img2ascii

import (
	"sync"
)

// OrderedMap is a map that remembers insertion order. When a capacity is
// set, inserting a new key past it evicts the oldest key.
type OrderedMap[K comparable, V any] struct {
	keys     []K
	values   map[K]V
	capacity int
	mu       sync.RWMutex
}

// NewOrderedMap creates a new OrderedMap. A capacity <= 0 means unbounded.
func NewOrderedMap[K comparable, V any](capacity int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:     make([]K, 0),
		values:   make(map[K]V),
		capacity: capacity,
	}
}

// Set adds a Key-Value pair to the map and returns the key it evicted, if
// any.
func (om *OrderedMap[K, V]) Set(key K, value V) (evicted K, ok bool) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
		if om.capacity > 0 && len(om.keys) > om.capacity {
			evicted, ok = om.keys[0], true
			om.keys = om.keys[1:]
			delete(om.values, evicted)
		}
	}
	om.values[key] = value
	return evicted, ok
}

// Get retrieves a Value from the map by Key
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	om.mu.RLock()
	defer om.mu.RUnlock()

	val, exists := om.values[key]
	return val, exists
}

// Delete removes a Key-Value pair from the map
func (om *OrderedMap[K, V]) Delete(key K) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if _, exists := om.values[key]; exists {
		delete(om.values, key)
		for i, k := range om.keys {
			if k == key {
				om.keys = append(om.keys[:i], om.keys[i+1:]...)
				break
			}
		}
	}
}

// Keys returns a slice of keys in the order they were inserted
func (om *OrderedMap[K, V]) Keys() []K {
	om.mu.RLock()
	defer om.mu.RUnlock()

	return append([]K{}, om.keys...)
}

// Iterate calls the provided function for each Key-Value pair in order
func (om *OrderedMap[K, V]) Iterate(f func(key K, value V)) {
	om.mu.RLock()
	defer om.mu.RUnlock()

	for _, k := range om.keys {
		f(k, om.values[k])
	}
}

// Len returns the number of elements in the map
func (om *OrderedMap[K, V]) Len() int {
	om.mu.RLock()
	defer om.mu.RUnlock()

	return len(om.keys)
}
