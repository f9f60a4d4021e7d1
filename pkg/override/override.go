// Package override reconciles locally owned field overrides with read-only
// remote records.
//
// A Map shadows one field of remote records, keyed by record identifier. The
// effective value of a record is its override when one exists (including a
// zero value such as false) and the remote value otherwise. Entries are never
// deleted by this package: once a record is overridden it stays overridden.
package override

import "maps"

// Map holds overridden field values keyed by record identifier.
type Map[K comparable, V any] map[K]V

// Value returns the effective value for id.
func Value[K comparable, V any](m Map[K, V], id K, remote V) V {
	if v, ok := m[id]; ok {
		return v
	}
	return remote
}

// Has reports whether id carries an override.
func (m Map[K, V]) Has(id K) bool {
	_, ok := m[id]
	return ok
}

// With returns a copy of m with id set to v. m itself is not modified.
func (m Map[K, V]) With(id K, v V) Map[K, V] {
	next := make(Map[K, V], len(m)+1)
	maps.Copy(next, m)
	next[id] = v
	return next
}

// Item is a remote record paired with its effective field value.
type Item[R any, V any] struct {
	Record     R
	Value      V
	Overridden bool
}

// Merge computes the effective value of every record, preserving order.
func Merge[R any, K comparable, V any](records []R, m Map[K, V], id func(R) K, field func(R) V) []Item[R, V] {
	out := make([]Item[R, V], 0, len(records))
	for _, r := range records {
		k := id(r)
		v, ok := m[k]
		if !ok {
			v = field(r)
		}
		out = append(out, Item[R, V]{Record: r, Value: v, Overridden: ok})
	}
	return out
}
