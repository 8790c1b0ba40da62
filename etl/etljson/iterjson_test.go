package etljson

import (
	"context"
	"reflect"
	"testing"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

func TestDecodeRows(t *testing.T) {
	type test struct {
		data    string
		opts    []RowsOptFunc
		want    []Row
		wantErr bool
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			b := []byte(tt.data)
			// split input to exercise chunked sources
			it := DecodeRows(etl.Values(b[:len(b)/2], b[len(b)/2:]), tt.opts...)
			defer it.Close()

			got, err := etl.Collect[Row](it)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeRows() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeRows()\nwant: %v\n got: %v", tt.want, got)
			}
		})
	}

	run("array keeps key order", test{
		data: `[{"z":1,"a":"x"},{"z":2,"a":null}]`,
		want: []Row{
			{drow.F("z", float64(1)), drow.F("a", "x")},
			{drow.F("z", float64(2)), drow.F("a", nil)},
		},
	})
	run("empty array", test{
		data: `[]`,
		want: []Row{},
	})
	run("not an array", test{
		data:    `{"a":1}`,
		wantErr: true,
	})
	run("malformed", test{
		data:    `[{"a":1},`,
		wantErr: true,
	})
	run("path to array", test{
		data: `{"data":{"items":[{"b":1,"a":[1,2]},{"b":2.5,"a":[3]}]}}`,
		opts: []RowsOptFunc{WithPath("$.data.items")},
		want: []Row{
			{drow.F("a", []any{float64(1), float64(2)}), drow.F("b", float64(1))},
			{drow.F("a", []any{float64(3)}), drow.F("b", 2.5)},
		},
	})
	run("path to elements", test{
		data: `{"items":[{"v":"x"},{"v":"y"}]}`,
		opts: []RowsOptFunc{WithPath("$.items[*]")},
		want: []Row{{drow.F("v", "x")}, {drow.F("v", "y")}},
	})
	run("path to scalar", test{
		data:    `{"items":[1,2]}`,
		opts:    []RowsOptFunc{WithPath("$.items")},
		wantErr: true,
	})
	run("path no match", test{
		data: `{"items":[]}`,
		opts: []RowsOptFunc{WithPath("$.other")},
		want: []Row{},
	})
}

func TestEncode(t *testing.T) {
	type test struct {
		values []any
		want   string
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			got, err := etlio.ReadAll(context.Background(), Encode(etl.Values(tt.values...)))
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode()\nwant: %s\n got: %s", tt.want, got)
			}
		})
	}

	run("rows keep field order", test{
		values: []any{Row{drow.F("b", 1), drow.F("a", "x")}, Row{drow.F("b", 2)}},
		want:   `[{"b":1,"a":"x"},{"b":2}]`,
	})
	run("empty", test{
		values: nil,
		want:   `[]`,
	})
}
