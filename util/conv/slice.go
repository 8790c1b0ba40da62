package conv

import "reflect"

// ToAnySlice converts a []T to []any, useful to pass params.
func ToAnySlice[T any](vs []T) []any {
	ret := make([]any, len(vs))
	for i, v := range vs {
		ret[i] = v
	}
	return ret
}

// ToList returns the elements of v if v is a slice or an array, []byte is
// considered a scalar.
func ToList(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil, []byte, string:
		return nil, false
	case []any:
		return v, true
	case []string:
		return ToAnySlice(v), true
	case []float64:
		return ToAnySlice(v), true
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, false
	}
	ret := make([]any, val.Len())
	for i := range ret {
		ret[i] = val.Index(i).Interface()
	}
	return ret, true
}

// IsList reports whether v is a sequence value.
func IsList(v any) bool {
	_, ok := ToList(v)
	return ok
}
