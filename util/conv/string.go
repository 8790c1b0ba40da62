package conv

import (
	"fmt"
	"reflect"
	"strings"
)

// ToString returns the string representation of v, sequences are joined
// with a comma.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		return strings.Join(v, ",")
	default:
		if l, ok := ToList(v); ok {
			parts := make([]string, len(l))
			for i, e := range l {
				parts[i] = ToString(e)
			}
			return strings.Join(parts, ",")
		}
		val := reflect.ValueOf(v)
		if val.Kind() == reflect.Ptr && val.IsNil() {
			return ""
		}
		return fmt.Sprint(v)
	}
}
