package deterministicmap

import (
	"cmp"
	"slices"
)

// Map is a map whose iteration order is the ascending order of its keys.
// Keys are kept sorted on insertion so iteration never depends on Go map ordering.
type Map[K cmp.Ordered, V any] struct {
	data map[K]V
	keys []K
}

// New creates an empty Map. The zero value of Map is also ready to use.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Set inserts or updates a key/value pair.
func (m *Map[K, V]) Set(key K, value V) {
	if m.data == nil {
		m.data = make(map[K]V)
	}
	if _, exists := m.data[key]; !exists {
		idx, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, idx, key)
	}
	m.data[key] = value
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Update replaces the value of key with fn applied to the current value.
// fn receives the zero value and false when the key is absent.
func (m *Map[K, V]) Update(key K, fn func(current V, found bool) V) {
	current, found := m.Get(key)
	m.Set(key, fn(current, found))
}

// Delete removes a key/value pair.
func (m *Map[K, V]) Delete(key K) {
	if _, exists := m.data[key]; !exists {
		return
	}
	delete(m.data, key)
	if idx, found := slices.BinarySearch(m.keys, key); found {
		m.keys = slices.Delete(m.keys, idx, idx+1)
	}
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Range iterates over the map in ascending key order.
// Returning false from fn stops iteration.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.data[k]) {
			return
		}
	}
}

// RangeErr iterates over the map in ascending key order and stops on the first error.
func (m *Map[K, V]) RangeErr(fn func(key K, value V) error) error {
	for _, k := range m.keys {
		if err := fn(k, m.data[k]); err != nil {
			return err
		}
	}
	return nil
}
