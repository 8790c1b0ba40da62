package dsource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/stdiopt/vizdata/dexpr"
	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/dtable"
	"github.com/stdiopt/vizdata/gschema"
)

// dashboard is the subset of a dashboard document driving one graph.
type dashboard struct {
	DataSettings  Settings                    `json:"dataSettings"`
	Filters       []dtable.Filter             `json:"filters"`
	Aggregation   []dtable.AggregationSetting `json:"aggregationSettings"`
	GraphType     gschema.GraphType           `json:"graphType"`
	GraphDataConf []gschema.Config            `json:"graphDataConfiguration"`
}

func render(ctx context.Context, doc string) (gschema.Data, error) {
	var d dashboard
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return gschema.Data{}, err
	}
	t, err := Load(ctx, d.DataSettings)
	if err != nil {
		return gschema.Data{}, err
	}
	t = dtable.FilterRows(t, d.Filters)
	t = dtable.Aggregate(t, "region", d.Aggregation)
	return gschema.Map(t, d.GraphType, d.GraphDataConf), nil
}

func TestPipeline(t *testing.T) {
	doc := `{
		"dataSettings": {
			"data": [
				{"region": "A,B", "value": "10"},
				{"region": "A", "value": "5"},
				{"region": "C", "value": "1"}
			],
			"columnsToArray": [{"column": "region"}]
		},
		"filters": [{"column": "region", "values": ["A", "B"]}],
		"aggregationSettings": [{"column": "value", "aggregationMethod": "sum"}],
		"graphType": "barChart",
		"graphDataConfiguration": [
			{"columnId": "region", "chartConfigId": "label"},
			{"columnId": "value", "chartConfigId": "size"}
		]
	}`

	got, err := render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if !got.Valid() {
		t.Fatalf("Map() unexpected error: %v", got.Err())
	}
	want := Table{
		{
			drow.F("label", "A"), drow.F("labelColumns", "region"),
			drow.F("size", 15.0), drow.F("sizeColumns", "value"),
			drow.F("data", Row{drow.F("region", "A"), drow.F("count", 2), drow.F("value", 15.0)}),
		},
		{
			drow.F("label", "B"), drow.F("labelColumns", "region"),
			drow.F("size", 10.0), drow.F("sizeColumns", "value"),
			drow.F("data", Row{drow.F("region", "B"), drow.F("count", 1), drow.F("value", 10.0)}),
		},
	}
	if !reflect.DeepEqual(got.Rows(), want) {
		t.Errorf("render()\nwant: %v\n got: %v", want, got.Rows())
	}

	buf := &bytes.Buffer{}
	if err := WriteCSV(context.Background(), buf, got.Source()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if want := "region,count,value\nA,2,15\nB,1,10\n"; buf.String() != want {
		t.Errorf("WriteCSV()\nwant: %q\n got: %q", want, buf.String())
	}
}

func TestPipeline_MissingRequiredSlot(t *testing.T) {
	doc := `{
		"dataSettings": {"data": [{"region": "A", "value": 1}]},
		"graphType": "barChart",
		"graphDataConfiguration": [{"columnId": "region", "chartConfigId": "label"}]
	}`
	got, err := render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if got.Valid() {
		t.Fatalf("Map() expected an invalid result")
	}
	if want := "Missing required ID(s) in configuration: size"; got.Message() != want {
		t.Errorf("Map() message\nwant: %q\n got: %q", want, got.Message())
	}
}

func TestPipeline_UnsafeTransformation(t *testing.T) {
	doc := `{
		"dataSettings": {
			"data": [{"region": "A"}],
			"dataTransformation": "while(true){}"
		},
		"graphType": "dataTable"
	}`
	_, err := render(context.Background(), doc)
	var uerr *dexpr.UnsafeExpressionError
	if !errors.As(err, &uerr) {
		t.Fatalf("render() error = %v, want *dexpr.UnsafeExpressionError", err)
	}
	if uerr.Construct != "while(true)" {
		t.Errorf("UnsafeExpressionError.Construct = %q, want while(true)", uerr.Construct)
	}
}
