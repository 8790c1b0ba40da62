package dconf

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	type test struct {
		doc        string
		kind       Kind
		wantValid  bool
		wantPaths  []string
		wantErrSub string
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			res := ValidateJSON([]byte(tt.doc), tt.kind)
			if res.IsValid != tt.wantValid {
				t.Fatalf("Validate() IsValid = %v, want %v (issues: %v)", res.IsValid, tt.wantValid, res.Issues)
			}
			if res.IsValid && res.Err != "" {
				t.Errorf("Validate() valid result with err %q", res.Err)
			}
			if tt.wantErrSub != "" && !strings.Contains(res.Err, tt.wantErrSub) {
				t.Errorf("Validate() err = %q, want it to contain %q", res.Err, tt.wantErrSub)
			}
			if tt.wantPaths != nil {
				paths := []string{}
				for _, i := range res.Issues {
					paths = append(paths, i.Path)
				}
				if !reflect.DeepEqual(paths, tt.wantPaths) {
					t.Errorf("Validate() issue paths\nwant: %v\n got: %v", tt.wantPaths, paths)
				}
			}
		})
	}

	run("valid single graph", test{
		doc: `{
			"graphType": "barChart",
			"dataSettings": {"dataURL": "https://example.org/data.csv", "fileType": "csv"},
			"filters": [{"column": "country"}],
			"graphDataConfiguration": [
				{"columnId": "country", "chartConfigId": "label"},
				{"columnId": ["gdp"], "chartConfigId": "size"}
			]
		}`,
		kind:      SingleGraphDashboard,
		wantValid: true,
		wantPaths: []string{},
	})
	run("missing required keys", test{
		doc:        `{"graphSettings": {}}`,
		kind:       SingleGraphDashboard,
		wantPaths:  []string{"graphType", "dataSettings"},
		wantErrSub: "graphType is required",
	})
	run("unknown graph type", test{
		doc:        `{"graphType": "pieOfPies", "dataSettings": {"data": []}}`,
		kind:       SingleGraphDashboard,
		wantPaths:  []string{"graphType"},
		wantErrSub: `unknown graphType "pieOfPies"`,
	})
	run("data source required", test{
		doc:       `{"graphType": "dataTable", "dataSettings": {"fileType": "csv"}}`,
		kind:      SingleGraphDashboard,
		wantPaths: []string{"dataSettings"},
	})
	run("unsafe transformation", test{
		doc: `{
			"graphType": "dataTable",
			"dataSettings": {"data": [], "dataTransformation": "while(true){}"}
		}`,
		kind:       SingleGraphDashboard,
		wantPaths:  []string{"dataSettings.dataTransformation"},
		wantErrSub: "while(true)",
	})
	run("filters need a column", test{
		doc:       `{"graphType": "dataTable", "dataSettings": {"data": []}, "filters": [{"column": "a"}, {"label": "x"}]}`,
		kind:      SingleGraphDashboard,
		wantPaths: []string{"filters[1].column"},
	})
	run("missing required slot", test{
		doc: `{
			"graphType": "barChart",
			"dataSettings": {"data": []},
			"graphDataConfiguration": [{"columnId": "country", "chartConfigId": "label"}]
		}`,
		kind:       SingleGraphDashboard,
		wantPaths:  []string{"graphDataConfiguration"},
		wantErrSub: "Missing required ID(s) in configuration: size",
	})
	run("unknown fileType is a warning", test{
		doc:       `{"graphType": "dataTable", "dataSettings": {"dataURL": "x.tsv", "fileType": "tsv"}}`,
		kind:      SingleGraphDashboard,
		wantValid: true,
		wantPaths: []string{"dataSettings.fileType"},
	})
	run("sql source needs a query", test{
		doc:        `{"graphType": "dataTable", "dataSettings": {"dataURL": "sqlite:///tmp/x.db", "fileType": "sql"}}`,
		kind:       SingleGraphDashboard,
		wantPaths:  []string{"dataSettings.query"},
		wantErrSub: "sql sources require a query",
	})
	run("valid multi graph", test{
		doc: `{
			"dataSettings": {"dataURL": "https://example.org/data.json", "fileType": "json"},
			"dashboardLayout": {"rows": [
				{"columns": [{"graphType": "lineChart"}, {"graphType": "statCard"}]},
				{"columns": [{"graphType": "dataCards"}]}
			]}
		}`,
		kind:      MultiGraphDashboard,
		wantValid: true,
	})
	run("multi graph column issues", test{
		doc: `{
			"dataSettings": {"data": []},
			"dashboardLayout": {"rows": [
				{"columns": [{"graphType": "nope"}, {"title": "x"}]},
				{"height": 10}
			]}
		}`,
		kind: MultiGraphDashboardWideToLong,
		wantPaths: []string{
			"dashboardLayout.rows[0].columns[0].graphType",
			"dashboardLayout.rows[0].columns[1].graphType",
			"dashboardLayout.rows[1].columns",
		},
	})
	run("gridded graphs", test{
		doc:       `{"graphType": "donutChart", "dataSettings": {"data": []}}`,
		kind:      GriddedGraphs,
		wantPaths: []string{"columnGridBy"},
	})
	run("unknown kind", test{
		doc:        `{}`,
		kind:       "somethingElse",
		wantErrSub: `unknown configuration kind "somethingElse"`,
	})
	run("not an object", test{
		doc:  `[1,2]`,
		kind: SingleGraphDashboard,
	})
	run("malformed json", test{
		doc:        `{"graphType":`,
		kind:       SingleGraphDashboard,
		wantErrSub: "invalid configuration document",
	})
}

func TestValidate_GoValues(t *testing.T) {
	type settings struct {
		Data []map[string]any `json:"data"`
	}
	doc := map[string]any{
		"graphType":    "statCard",
		"dataSettings": settings{Data: []map[string]any{{"v": 1}}},
		"graphDataConfiguration": []map[string]any{
			{"columnId": "v", "chartConfigId": "value"},
		},
	}
	if res := Validate(doc, SingleGraphDashboard); !res.IsValid {
		t.Errorf("Validate() = %+v, want valid", res)
	}
}
