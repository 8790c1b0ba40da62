// Package conv provides loose conversions between the dynamic values held in
// rows.
package conv

import (
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

type Numbers interface {
	constraints.Integer | constraints.Float
}

// Conv converts v to T returning def when v is nil or not convertible.
// This can lose data i.e converting int32 to int8
func Conv[T Numbers](def T, v any) T {
	var z T
	switch v := v.(type) {
	case nil:
		return def
	case []byte:
		return Conv(def, string(v))
	case string:
		v = strings.TrimSpace(v)
		switch any(z).(type) {
		case uint, uint8, uint16, uint32, uint64:
			r, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return z
			}
			return T(r)
		case int, int8, int16, int32, int64:
			r, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return z
			}
			return T(r)
		case float32, float64:
			r, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return z
			}
			return T(r)
		}
		return z
	case bool:
		if v {
			return 1
		}
		return 0
	}
	if f, ok := numberOf(v); ok {
		if f.isInt {
			return T(f.i)
		}
		if f.isUint {
			return T(f.u)
		}
		return T(f.f)
	}
	// Dereference pointers and try again
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return def
		}
		return Conv(def, val.Elem().Interface())
	}
	return def
}

// Float64 returns v as a float64, ok is false if v is not a native number.
// Strings are not parsed.
func Float64(v any) (float64, bool) {
	n, ok := numberOf(v)
	if !ok {
		return 0, false
	}
	switch {
	case n.isInt:
		return float64(n.i), true
	case n.isUint:
		return float64(n.u), true
	}
	return n.f, true
}

// IsNumber reports whether v holds a native Go number.
func IsNumber(v any) bool {
	_, ok := numberOf(v)
	return ok
}

type number struct {
	i      int64
	u      uint64
	f      float64
	isInt  bool
	isUint bool
}

func numberOf(v any) (number, bool) {
	switch v := v.(type) {
	case int:
		return number{i: int64(v), isInt: true}, true
	case int8:
		return number{i: int64(v), isInt: true}, true
	case int16:
		return number{i: int64(v), isInt: true}, true
	case int32:
		return number{i: int64(v), isInt: true}, true
	case int64:
		return number{i: v, isInt: true}, true
	case uint:
		return number{u: uint64(v), isUint: true}, true
	case uint8:
		return number{u: uint64(v), isUint: true}, true
	case uint16:
		return number{u: uint64(v), isUint: true}, true
	case uint32:
		return number{u: uint64(v), isUint: true}, true
	case uint64:
		return number{u: v, isUint: true}, true
	case float32:
		return number{f: float64(v)}, true
	case float64:
		return number{f: v}, true
	}
	return number{}, false
}
