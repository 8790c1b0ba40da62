package drow

import (
	"github.com/stdiopt/vizdata/util/conv"
)

// Field is a single field in a row
type Field struct {
	Name  string
	Value any
}

// F Creates a new field.
func F(name string, v any) Field {
	return Field{
		Name:  name,
		Value: v,
	}
}

// String returns the string representation of the field
func (f Field) String() string { return conv.ToString(f.Value) }

// Int returns the int representation of the field or zero if it can't be converted
func (f Field) Int() int { return conv.Conv(0, f.Value) }

// Float64 returns the float64 representation of the field or zero if it can't be converted
func (f Field) Float64() float64 { return conv.Conv(float64(0), f.Value) }

// List returns the elements of a sequence valued field, ok is false for
// scalars.
func (f Field) List() ([]any, bool) { return ToList(f.Value) }

// Flat returns the field value flattened one level: the elements for
// sequences, a single element slice for scalars.
func (f Field) Flat() []any {
	if l, ok := ToList(f.Value); ok {
		return l
	}
	return []any{f.Value}
}

// ToList returns the elements of a sequence value, nested rows are single
// values and not sequences of fields.
func ToList(v any) ([]any, bool) {
	if _, ok := v.(Row); ok {
		return nil, false
	}
	return conv.ToList(v)
}

// IsList reports whether v is a sequence value.
func IsList(v any) bool {
	_, ok := ToList(v)
	return ok
}
