package dconf

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/stdiopt/vizdata/dexpr"
	"github.com/stdiopt/vizdata/gschema"
)

// requiredPaths per kind, every path must resolve to a non null value.
var requiredPaths = map[Kind][]string{
	SingleGraphDashboard:          {"graphType", "dataSettings"},
	MultiGraphDashboard:           {"dashboardLayout", "dashboardLayout.rows", "dataSettings"},
	MultiGraphDashboardWideToLong: {"dashboardLayout", "dashboardLayout.rows", "dataSettings"},
	GriddedGraphs:                 {"graphType", "columnGridBy", "dataSettings"},
}

var knownFileTypes = map[string]struct{}{
	"csv":     {},
	"json":    {},
	"api":     {},
	"parquet": {},
	"sql":     {},
}

func validate(doc any, kind Kind) []Issue {
	paths, ok := requiredPaths[kind]
	if !ok {
		return []Issue{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("unknown configuration kind %q", kind),
		}}
	}
	if _, ok := doc.(map[string]any); !ok {
		return []Issue{{
			Severity: SeverityError,
			Message:  "configuration must be an object",
		}}
	}

	var issues []Issue
	for _, p := range paths {
		if get(doc, p) == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     p,
				Message:  p + " is required",
			})
		}
	}

	issues = append(issues, validateDataSettings(get(doc, "dataSettings"))...)
	issues = append(issues, validateFilters("filters", get(doc, "filters"))...)

	switch kind {
	case SingleGraphDashboard, GriddedGraphs:
		issues = append(issues, validateGraph("", doc.(map[string]any))...)
	case MultiGraphDashboard, MultiGraphDashboardWideToLong:
		issues = append(issues, validateLayout(get(doc, "dashboardLayout.rows"))...)
	}
	return issues
}

// get returns the first value at the dotted JSONPath p, nil if missing.
func get(doc any, p string) any {
	x, err := jp.ParseString("$." + p)
	if err != nil {
		return nil
	}
	if r := x.Get(doc); len(r) > 0 {
		return r[0]
	}
	return nil
}

func validateDataSettings(v any) []Issue {
	if v == nil {
		return nil
	}
	ds, ok := v.(map[string]any)
	if !ok {
		return []Issue{{
			Severity: SeverityError,
			Path:     "dataSettings",
			Message:  "dataSettings must be an object",
		}}
	}

	var issues []Issue
	if ds["data"] == nil && isBlank(ds["dataURL"]) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "dataSettings",
			Message:  "dataSettings requires data or dataURL",
		})
	}
	if ds["dataURL"] != nil && ds["data"] == nil {
		if _, ok := ds["dataURL"].(string); !ok {
			if _, ok := ds["dataURL"].([]any); !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "dataSettings.dataURL",
					Message:  "dataURL must be a string or a list of sources",
				})
			}
		}
	}
	if ft, ok := ds["fileType"].(string); ok {
		if _, known := knownFileTypes[ft]; !known {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "dataSettings.fileType",
				Message:  fmt.Sprintf("unknown fileType %q; the source will be read as csv", ft),
			})
		}
		if ft == "sql" && ds["data"] == nil && isBlank(ds["query"]) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "dataSettings.query",
				Message:  "sql sources require a query",
			})
		}
	}
	if expr, ok := ds["dataTransformation"].(string); ok {
		if err := dexpr.Check(expr); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "dataSettings.dataTransformation",
				Message:  err.Error(),
			})
		}
	}
	return issues
}

func validateFilters(path string, v any) []Issue {
	if v == nil {
		return nil
	}
	fs, ok := v.([]any)
	if !ok {
		return []Issue{{
			Severity: SeverityError,
			Path:     path,
			Message:  path + " must be a list",
		}}
	}
	var issues []Issue
	for i, f := range fs {
		m, _ := f.(map[string]any)
		if isBlank(m["column"]) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("%s[%d].column", path, i),
				Message:  "filter requires a column",
			})
		}
	}
	return issues
}

func validateLayout(v any) []Issue {
	rows, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil
		}
		return []Issue{{
			Severity: SeverityError,
			Path:     "dashboardLayout.rows",
			Message:  "dashboardLayout.rows must be a list",
		}}
	}
	var issues []Issue
	for ri, r := range rows {
		rpath := fmt.Sprintf("dashboardLayout.rows[%d]", ri)
		cols, ok := get(r, "columns").([]any)
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     rpath + ".columns",
				Message:  "row requires a list of columns",
			})
			continue
		}
		for ci, c := range cols {
			cpath := fmt.Sprintf("%s.columns[%d]", rpath, ci)
			m, ok := c.(map[string]any)
			if !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     cpath,
					Message:  "column must be an object",
				})
				continue
			}
			issues = append(issues, validateGraph(cpath, m)...)
		}
	}
	return issues
}

// validateGraph checks the graphType and the graph data configuration of a
// graph definition at path.
func validateGraph(path string, g map[string]any) []Issue {
	at := func(s string) string {
		if path == "" {
			return s
		}
		return path + "." + s
	}

	gt, ok := g["graphType"].(string)
	if !ok {
		if _, present := g["graphType"]; present || path != "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     at("graphType"),
				Message:  "graphType must be a string",
			}}
		}
		// missing top level graphType is reported as a required path
		return nil
	}
	schema, known := gschema.Lookup(gschema.GraphType(gt))
	if !known {
		return []Issue{{
			Severity: SeverityError,
			Path:     at("graphType"),
			Message:  fmt.Sprintf("unknown graphType %q", gt),
		}}
	}

	var issues []Issue
	if path != "" {
		issues = append(issues, validateFilters(at("filters"), g["filters"])...)
	}

	cfgs, ok := g["graphDataConfiguration"].([]any)
	if !ok {
		return issues
	}
	configured := map[string]bool{}
	for i, c := range cfgs {
		cpath := at(fmt.Sprintf("graphDataConfiguration[%d]", i))
		m, _ := c.(map[string]any)
		id, _ := m["chartConfigId"].(string)
		if strings.TrimSpace(id) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     cpath + ".chartConfigId",
				Message:  "chartConfigId is required",
			})
			continue
		}
		configured[id] = true
		if !validColumnID(m["columnId"]) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     cpath + ".columnId",
				Message:  "columnId must be a column name or a list of column names",
			})
		}
		if _, ok := schema.Slot(id); !ok && !schema.PassThrough {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     cpath + ".chartConfigId",
				Message:  fmt.Sprintf("%q is not a field of %s", id, gt),
			})
		}
	}
	var missing []string
	for _, sl := range schema.Slots {
		if sl.Required && !configured[sl.ID] {
			missing = append(missing, sl.ID)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     at("graphDataConfiguration"),
			Message:  "Missing required ID(s) in configuration: " + strings.Join(missing, ", "),
		})
	}
	return issues
}

func validColumnID(v any) bool {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, e := range v {
			if s, ok := e.(string); !ok || strings.TrimSpace(s) == "" {
				return false
			}
		}
		return true
	}
	return false
}

func isBlank(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}
