package conv

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// kind ranks used to order values of different kinds.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case string:
		return rankString
	}
	if IsNumber(v) {
		return rankNumber
	}
	return rankOther
}

// Compare returns -1, 0 or 1 comparing a and b. Numbers compare numerically
// regardless of their Go type with NaN first, strings lexically and false
// sorts before true.
// Values of different kinds are ordered nil, bool, number, string, other.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case rankNumber:
		fa, _ := Float64(a)
		fb, _ := Float64(b)
		// NaN sorts before every other number
		na, nb := math.IsNaN(fa), math.IsNaN(fb)
		switch {
		case na || nb:
			switch {
			case na && nb:
				return 0
			case na:
				return -1
			}
			return 1
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	if reflect.DeepEqual(a, b) {
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Equal reports whether a and b hold the same value, numbers are equal
// across Go numeric types.
func Equal(a, b any) bool {
	return Compare(a, b) == 0
}
