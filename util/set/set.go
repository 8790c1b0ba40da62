// Package set implements an insertion ordered set.
package set

import (
	"fmt"
	"reflect"

	"github.com/zeebo/xxh3"
)

type comparator interface {
	Eq(any) bool
}

// Set is an insertion ordered set data structure of type T, values are
// bucketed by a hash of their type and printed form and compared within a
// bucket.
type Set[T any] struct {
	Data []T

	index map[uint64][]int
}

// Len returns the number of values in the set.
func (m *Set[T]) Len() int { return len(m.Data) }

// Index returns the index of the value, -1 if not found.
func (m *Set[T]) Index(va T) int {
	for _, i := range m.index[hashOf(va)] {
		if equal(m.Data[i], va) {
			return i
		}
	}
	return -1
}

// Has reports whether va is in the set.
func (m *Set[T]) Has(va T) bool {
	return m.Index(va) != -1
}

// IndexOrAdd returns the existing or the new index of the value, it returns
// true if the value existed, false if new.
func (m *Set[T]) IndexOrAdd(va T) (int, bool) {
	ri := m.Index(va)
	if ri == -1 {
		return m.add(va), false
	}
	return ri, true
}

// Add adds the values that are not yet in the set.
func (m *Set[T]) Add(vs ...T) {
	for _, v := range vs {
		m.IndexOrAdd(v)
	}
}

func (m *Set[T]) add(va T) int {
	if m.index == nil {
		m.index = map[uint64][]int{}
	}
	ri := len(m.Data)
	m.Data = append(m.Data, va)
	h := hashOf(va)
	m.index[h] = append(m.index[h], ri)
	return ri
}

func hashOf(v any) uint64 {
	return xxh3.HashString(fmt.Sprintf("%T\x00%v", v, v))
}

func equal(a, b any) bool {
	if c, ok := a.(comparator); ok {
		return c.Eq(b)
	}
	if t := reflect.TypeOf(a); t != nil && !t.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
