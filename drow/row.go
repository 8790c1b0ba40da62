// Package drow provides a dynamic, ordered row type.
package drow

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
)

// Row is a slice of fields with a defined sequence.
type Row []Field

// FromMap creates a row from a map[string]any, fields are sorted by name
// since maps carry no order. Nested maps become sub rows.
func FromMap(m map[string]any) Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := make(Row, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if sub, ok := v.(map[string]any); ok {
			v = FromMap(sub)
		}
		r = append(r, F(k, v))
	}
	return r
}

// ToMap converts a row to map[string]any
func (r Row) ToMap() map[string]any {
	m := map[string]any{}
	for _, f := range r {
		if sub, ok := f.Value.(Row); ok {
			m[f.Name] = sub.ToMap()
			continue
		}
		m[f.Name] = f.Value
	}
	return m
}

// Eq returns true if the v is equal to row r
func (r Row) Eq(v any) bool {
	r2, ok := v.(Row)
	if !ok {
		return false
	}
	if len(r) != len(r2) {
		return false
	}
	for i := range r {
		if r[i].Name != r2[i].Name {
			return false
		}
		if !reflect.DeepEqual(r[i].Value, r2[i].Value) {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	buf := bytes.NewBuffer(nil)
	fmt.Fprintf(buf, "{")
	for i, f := range r {
		if i > 0 {
			fmt.Fprint(buf, ", ")
		}
		fmt.Fprintf(buf, "%s: %v", f.Name, f.Value)
	}
	fmt.Fprintf(buf, "}")
	return buf.String()
}

// Clone returns a shallow copy of the row, values are shared.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return append(make(Row, 0, len(r)), r...)
}

// Columns returns the names of the fields.
func (r Row) Columns() []string {
	ret := make([]string, len(r))
	for i, f := range r {
		ret[i] = f.Name
	}
	return ret
}

// Values return a []any of the values of the row fields.
func (r Row) Values() []any {
	ret := make([]any, len(r))
	for i, f := range r {
		ret[i] = f.Value
	}
	return ret
}

// Value returns the value of the field named s, nil if there is none.
func (r Row) Value(s string) any {
	i := r.Index(s)
	if i < 0 {
		return nil
	}
	return r[i].Value
}

// At returns the field named s.
func (r Row) At(s string) Field {
	i := r.Index(s)
	if i < 0 {
		return Field{}
	}
	return r[i]
}

// Has returns true if the row has a field named s, false otherwise.
func (r Row) Has(s string) bool {
	return r.Index(s) >= 0
}

// Index returns the index of a field by name.
func (r Row) Index(s string) int {
	for i, c := range r {
		if c.Name == s {
			return i
		}
	}
	return -1
}

// Merge will set the fields of r2 in a copy of r.
func (r Row) Merge(r2 Row) Row {
	nr := r.Clone()
	for _, f := range r2 {
		nr.set(f.Name, f.Value)
	}
	return nr
}

// Drop returns a new row without the fields identified by names
func (r Row) Drop(names ...string) Row {
	ret := Row{}
	for _, f := range r {
		if sliceIndex(names, f.Name) != -1 {
			continue
		}
		ret = append(ret, f)
	}
	return ret
}

// WithField returns a copy of the row with the field s set to v, the field
// keeps its position if it already exists.
func (r Row) WithField(s string, v any) Row {
	nr := r.Clone()
	nr.set(s, v)
	return nr
}

// WithFields returns a copy of the row with the several fields
// if the field name exists the value will be replaced in the new row.
func (r Row) WithFields(fs ...Field) Row {
	nr := r.Clone()
	for _, f := range fs {
		nr.set(f.Name, f.Value)
	}
	return nr
}

// Select returns a new row with the named selected fields, missing names
// are skipped.
func (r Row) Select(names ...string) Row {
	newRow := Row{}
	for _, n := range names {
		i := r.Index(n)
		if i < 0 {
			continue
		}
		newRow = append(newRow, r[i])
	}
	return newRow
}

// Rename returns a new row with the renamed field.
func (r Row) Rename(old, name string) Row {
	ret := r.Clone()
	for i, c := range ret {
		if c.Name == old {
			ret[i].Name = name
		}
	}
	return ret
}

func (r *Row) set(key string, val any) {
	i := r.Index(key)
	if i < 0 {
		*r = append(*r, F(key, val))
		return
	}
	(*r)[i].Value = val
}

// sliceIndex returns the index of the first occurrence of val in the slice.
func sliceIndex[T comparable](hay []T, needle T) int {
	for i := range hay {
		if hay[i] == needle {
			return i
		}
	}
	return -1
}
