package etlcsv

import (
	"context"
	"reflect"
	"testing"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

func TestDecode(t *testing.T) {
	type test struct {
		data    string
		opts    []DecodeOptFunc
		want    []Row
		wantErr bool
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			it := Decode(etl.Values([]byte(tt.data)), tt.opts...)
			defer it.Close()

			got, err := etl.Collect[Row](it)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode()\nwant: %v\n got: %v", tt.want, got)
			}
		})
	}

	run("strings by default", test{
		data: "a,b\n1, x \n",
		want: []Row{{drow.F("a", "1"), drow.F("b", "x")}},
	})
	run("typed values", test{
		data: "n,b,e,s\n1.5,true,,FR\n-2,FALSE,,1e3\n",
		opts: []DecodeOptFunc{WithDecodeTyped(true)},
		want: []Row{
			{drow.F("n", 1.5), drow.F("b", true), drow.F("e", nil), drow.F("s", "FR")},
			{drow.F("n", float64(-2)), drow.F("b", false), drow.F("e", nil), drow.F("s", float64(1000))},
		},
	})
	run("custom delimiter", test{
		data: "a;b\n1;2\n",
		opts: []DecodeOptFunc{WithDecodeComma(';')},
		want: []Row{{drow.F("a", "1"), drow.F("b", "2")}},
	})
	run("no header", test{
		data: "1,2\n3,4\n",
		opts: []DecodeOptFunc{WithDecodeHeader(false)},
		want: []Row{
			{drow.F("col1", "1"), drow.F("col2", "2")},
			{drow.F("col1", "3"), drow.F("col2", "4")},
		},
	})
	run("skips empty lines", test{
		data: "a,b\n\n1,2\n , \n3,4\n",
		want: []Row{
			{drow.F("a", "1"), drow.F("b", "2")},
			{drow.F("a", "3"), drow.F("b", "4")},
		},
	})
	run("ragged rows", test{
		data: "a,b\n1\n2,3,4\n",
		want: []Row{
			{drow.F("a", "1"), drow.F("b", nil)},
			{drow.F("a", "2"), drow.F("b", "3")},
		},
	})
	run("empty input", test{
		data: "",
		want: []Row{},
	})
	run("header only", test{
		data: "a,b\n",
		want: []Row{},
	})
}

func TestInfer(t *testing.T) {
	tests := map[string]any{
		"":      nil,
		"10":    float64(10),
		" 3.":   float64(3),
		".5":    0.5,
		"1e-2":  0.01,
		"true":  true,
		"False": "False",
		"0x10":  "0x10",
		"NaN":   "NaN",
		"1_000": "1_000",
		"12abc": "12abc",
	}
	for in, want := range tests {
		if got := Infer(in); !reflect.DeepEqual(got, want) {
			t.Errorf("Infer(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestEncode(t *testing.T) {
	type test struct {
		rows []Row
		opts []EncodeOptFunc
		want string
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			data, err := etlio.ReadAll(context.Background(), Encode(etl.Values(tt.rows...), tt.opts...))
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Encode()\nwant: %q\n got: %q", tt.want, data)
			}
		})
	}

	run("sequences and nils", test{
		rows: []Row{
			{drow.F("a", 1), drow.F("b", []string{"x", "y"})},
			{drow.F("a", nil), drow.F("b", "z")},
		},
		opts: []EncodeOptFunc{WithEncodeComma(';')},
		want: "a;b\n1;x,y\n;z\n",
	})
	run("rows follow the first row columns", test{
		rows: []Row{
			{drow.F("a", 1), drow.F("b", 2)},
			{drow.F("b", 3), drow.F("c", 4)},
		},
		want: "a,b\n1,2\n,3\n",
	})
	run("nested rows as json", test{
		rows: []Row{{drow.F("id", "x"), drow.F("data", Row{drow.F("v", 1)})}},
		opts: []EncodeOptFunc{WithEncodeHeader(false)},
		want: "x,\"{\"\"v\"\":1}\"\n",
	})
	run("empty", test{
		want: "",
	})
}
