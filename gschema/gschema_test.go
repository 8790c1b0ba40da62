package gschema

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/dtable"
)

func TestMap(t *testing.T) {
	type test struct {
		rows      dtable.Table
		graphType GraphType
		cfgs      []Config
		want      dtable.Table
		wantErr   string
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			got := Map(tt.rows, tt.graphType, tt.cfgs)
			if tt.wantErr != "" {
				if got.Valid() {
					t.Fatalf("Map() expected error %q", tt.wantErr)
				}
				if got.Message() != tt.wantErr {
					t.Errorf("Map() error\nwant: %q\n got: %q", tt.wantErr, got.Message())
				}
				if got.Rows() != nil {
					t.Errorf("Map() invalid result with rows: %v", got.Rows())
				}
				return
			}
			if !got.Valid() {
				t.Fatalf("Map() unexpected error: %v", got.Err())
			}
			if !reflect.DeepEqual(got.Rows(), tt.want) {
				t.Errorf("Map()\nwant: %v\n got: %v", tt.want, got.Rows())
			}
		})
	}

	rows := dtable.Table{
		{drow.F("country", "FR"), drow.F("gdp", 10.0), drow.F("pop", 2.0)},
		{drow.F("country", "DE"), drow.F("gdp", nil), drow.F("pop", 3.0)},
	}

	run("single slots", test{
		rows:      rows,
		graphType: BarChart,
		cfgs: []Config{
			{ColumnID: Column("country"), ChartConfigID: "label"},
			{ColumnID: Column("gdp"), ChartConfigID: "size"},
		},
		want: dtable.Table{
			{
				drow.F("label", "FR"), drow.F("labelColumns", "country"),
				drow.F("size", 10.0), drow.F("sizeColumns", "gdp"),
				drow.F("data", rows[0]),
			},
			{
				drow.F("label", "DE"), drow.F("labelColumns", "country"),
				drow.F("size", nil), drow.F("sizeColumns", "gdp"),
				drow.F("data", rows[1]),
			},
		},
	})
	run("multiple slot packs columns", test{
		rows:      rows[:1],
		graphType: GroupedBarChart,
		cfgs: []Config{
			{ColumnID: Column("country"), ChartConfigID: "label"},
			{ColumnID: Columns("pop", "gdp"), ChartConfigID: "size"},
		},
		want: dtable.Table{{
			drow.F("label", "FR"), drow.F("labelColumns", "country"),
			drow.F("size", []any{2.0, 10.0}), drow.F("sizeColumns", []string{"pop", "gdp"}),
			drow.F("data", rows[0]),
		}},
	})
	run("single slot with several columns takes the first", test{
		rows:      rows[:1],
		graphType: DonutChart,
		cfgs: []Config{
			{ColumnID: Columns("country", "pop"), ChartConfigID: "label"},
			{ColumnID: Column("pop"), ChartConfigID: "size"},
		},
		want: dtable.Table{{
			drow.F("label", "FR"), drow.F("labelColumns", []string{"country", "pop"}),
			drow.F("size", 2.0), drow.F("sizeColumns", "pop"),
			drow.F("data", rows[0]),
		}},
	})
	run("missing required slot", test{
		rows:      rows,
		graphType: BarChart,
		cfgs:      []Config{{ColumnID: Column("country"), ChartConfigID: "label"}},
		wantErr:   "Missing required ID(s) in configuration: size",
	})
	run("unknown columns", test{
		rows:      rows,
		graphType: BarChart,
		cfgs: []Config{
			{ColumnID: Column("region"), ChartConfigID: "label"},
			{ColumnID: Columns("gdp", "area", "region"), ChartConfigID: "size"},
		},
		wantErr: "Column(s) not found in data: region, area",
	})
	run("unknown columns reported before missing slots", test{
		rows:      rows,
		graphType: BarChart,
		cfgs:      []Config{{ColumnID: Column("region"), ChartConfigID: "label"}},
		wantErr:   "Column(s) not found in data: region",
	})
	run("unknown graph type", test{
		rows:      rows,
		graphType: "pieOfPies",
		wantErr:   "Unknown graph type: pieOfPies",
	})
	run("pass through", test{
		rows:      rows,
		graphType: DataTable,
		cfgs:      []Config{{ColumnID: Column("nope"), ChartConfigID: "x"}},
		want:      rows,
	})
	run("empty table", test{
		rows:      dtable.Table{},
		graphType: BarChart,
		want:      dtable.Table{},
	})
}

func TestMap_DataRoundTrip(t *testing.T) {
	rows := dtable.Table{
		{drow.F("d", "2020"), drow.F("a", 1), drow.F("b", []string{"x"})},
		{drow.F("d", "2021"), drow.F("a", 2), drow.F("b", []string{})},
	}
	got := Map(rows, MultiLineChart, []Config{
		{ColumnID: Column("d"), ChartConfigID: "date"},
		{ColumnID: Columns("a", "b"), ChartConfigID: "y"},
	})
	if !got.Valid() {
		t.Fatalf("Map() error = %v", got.Err())
	}
	for i, r := range got.Rows() {
		if !reflect.DeepEqual(r.Value("data"), rows[i]) {
			t.Errorf("row %d data\nwant: %v\n got: %v", i, rows[i], r.Value("data"))
		}
	}
	if !reflect.DeepEqual(got.Source(), rows) {
		t.Errorf("Data.Source()\nwant: %v\n got: %v", rows, got.Source())
	}

	// pass through rows are their own source, even with a data column
	pt := dtable.Table{{drow.F("data", drow.Row{drow.F("x", 1)})}}
	if src := Map(pt, DataTable, nil).Source(); !reflect.DeepEqual(src, pt) {
		t.Errorf("Data.Source() pass through\nwant: %v\n got: %v", pt, src)
	}
	if src := Map(rows, GraphType("nope"), nil).Source(); src != nil {
		t.Errorf("Data.Source() invalid = %v, want nil", src)
	}
}

func TestValidate_ErrorTypes(t *testing.T) {
	rows := dtable.Table{{drow.F("a", 1)}}

	var cerr *ConfigurationError
	if err := Validate(rows, "nope", nil); !errors.As(err, &cerr) {
		t.Errorf("Validate() error = %v, want *ConfigurationError", err)
	}
	var serr *SchemaMismatchError
	err := Validate(rows, StatCard, []Config{{ColumnID: Column("b"), ChartConfigID: "value"}})
	if !errors.As(err, &serr) || !reflect.DeepEqual(serr.Columns, []string{"b"}) {
		t.Errorf("Validate() error = %v, want *SchemaMismatchError", err)
	}
	var merr *MissingRequiredSlotError
	err = Validate(rows, SankeyChart, []Config{{ColumnID: Column("a"), ChartConfigID: "value"}})
	if !errors.As(err, &merr) || !reflect.DeepEqual(merr.Slots, []string{"source", "target"}) {
		t.Errorf("Validate() error = %v, want *MissingRequiredSlotError", err)
	}
}

func TestConfig_JSON(t *testing.T) {
	data := `[{"columnId":"country","chartConfigId":"label"},{"columnId":["a","b"],"chartConfigId":"size"}]`
	var cfgs []Config
	if err := json.Unmarshal([]byte(data), &cfgs); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	want := []Config{
		{ColumnID: Column("country"), ChartConfigID: "label"},
		{ColumnID: Columns("a", "b"), ChartConfigID: "size"},
	}
	if !reflect.DeepEqual(cfgs, want) {
		t.Errorf("json.Unmarshal()\nwant: %v\n got: %v", want, cfgs)
	}
	out, err := json.Marshal(cfgs)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(out) != data {
		t.Errorf("json.Marshal()\nwant: %s\n got: %s", data, out)
	}

	var bad Config
	if err := json.Unmarshal([]byte(`{"columnId":1}`), &bad); err == nil {
		t.Errorf("json.Unmarshal() expected error for numeric columnId")
	}
}

func TestSchemas(t *testing.T) {
	for _, g := range Types() {
		s, ok := Lookup(g)
		if !ok {
			t.Fatalf("Lookup(%q) not found", g)
		}
		if s.PassThrough {
			continue
		}
		seen := map[string]bool{}
		required := 0
		for _, sl := range s.Slots {
			if seen[sl.ID] {
				t.Errorf("%s: duplicated slot %q", g, sl.ID)
			}
			seen[sl.ID] = true
			if sl.Required {
				required++
			}
		}
		if required == 0 {
			t.Errorf("%s: no required slots", g)
		}
	}
}
