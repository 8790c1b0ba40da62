package set

import (
	"reflect"
	"testing"
)

type key struct{ vs []string }

func (k key) Eq(v any) bool {
	k2, ok := v.(key)
	return ok && reflect.DeepEqual(k.vs, k2.vs)
}

func TestSet_IndexOrAdd(t *testing.T) {
	type test struct {
		values    []any
		wantData  []any
		wantIndex []int
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			s := Set[any]{}
			got := []int{}
			for _, v := range tt.values {
				i, _ := s.IndexOrAdd(v)
				got = append(got, i)
			}
			if !reflect.DeepEqual(s.Data, tt.wantData) {
				t.Errorf("Set.Data\nwant: %v\n got: %v", tt.wantData, s.Data)
			}
			if !reflect.DeepEqual(got, tt.wantIndex) {
				t.Errorf("Set.IndexOrAdd()\nwant: %v\n got: %v", tt.wantIndex, got)
			}
		})
	}

	run("keeps insertion order", test{
		values:    []any{"b", "a", "b", "c", "a"},
		wantData:  []any{"b", "a", "c"},
		wantIndex: []int{0, 1, 0, 2, 1},
	})
	run("distinguishes types with same print", test{
		values:    []any{1, "1", float64(1)},
		wantData:  []any{1, "1", float64(1)},
		wantIndex: []int{0, 1, 2},
	})
	run("non comparable values", test{
		values:    []any{[]string{"a"}, []string{"a"}, []string{"b"}},
		wantData:  []any{[]string{"a"}, []string{"b"}},
		wantIndex: []int{0, 0, 1},
	})
	run("comparator values", test{
		values:    []any{key{[]string{"x"}}, key{[]string{"x"}}},
		wantData:  []any{key{[]string{"x"}}},
		wantIndex: []int{0, 0},
	})
	run("nil value", test{
		values:    []any{nil, nil, "x"},
		wantData:  []any{nil, "x"},
		wantIndex: []int{0, 0, 1},
	})
}

func TestSet_Has(t *testing.T) {
	s := Set[string]{}
	s.Add("a", "b", "a")
	if s.Len() != 2 {
		t.Errorf("Set.Len() = %d, want 2", s.Len())
	}
	if !s.Has("a") || s.Has("c") {
		t.Errorf("Set.Has() unexpected result for %v", s.Data)
	}
}
