// Package dconf validates the shape of dashboard and graph configuration
// documents before they are handed to a renderer.
//
// Validation never fails with an error, findings are reported in a Result so
// callers can display them in place of a chart:
//
//	res := dconf.ValidateJSON(data, dconf.SingleGraphDashboard)
//	if !res.IsValid {
//		fmt.Println(res.Err)
//	}
package dconf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// Kind is the kind of configuration document.
type Kind string

// Configuration kinds.
const (
	SingleGraphDashboard          Kind = "singleGraphDashboard"
	MultiGraphDashboard           Kind = "multiGraphDashboard"
	MultiGraphDashboardWideToLong Kind = "multiGraphDashboardWideToLong"
	GriddedGraphs                 Kind = "griddedGraphs"
)

// Severity of an Issue.
type Severity string

const (
	// SeverityError makes the document invalid.
	SeverityError Severity = "error"
	// SeverityWarning is reported but keeps the document valid.
	SeverityWarning Severity = "warning"
)

// Issue is a single finding, Path is a dotted path into the document (e.g.
// "dashboardLayout.rows[0].columns[1].graphType").
type Issue struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Result is the outcome of a validation.
type Result struct {
	IsValid bool `json:"isValid"`
	// Err joins the messages of the error issues.
	Err    string  `json:"err,omitempty"`
	Issues []Issue `json:"issues,omitempty"`
}

func makeResult(issues []Issue) Result {
	var msgs []string
	for _, i := range issues {
		if i.Severity == SeverityError {
			msgs = append(msgs, i.Error())
		}
	}
	return Result{
		IsValid: len(msgs) == 0,
		Err:     strings.Join(msgs, "; "),
		Issues:  issues,
	}
}

// Validate validates doc as a configuration of the given kind, doc can be
// raw JSON ([]byte or string), a decoded JSON value or any value that
// marshals to JSON.
func Validate(doc any, kind Kind) Result {
	v, err := normalize(doc)
	if err != nil {
		return makeResult([]Issue{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("invalid configuration document: %v", err),
		}})
	}
	return makeResult(validate(v, kind))
}

// ValidateJSON is Validate for raw JSON.
func ValidateJSON(data []byte, kind Kind) Result {
	return Validate(data, kind)
}

// normalize returns doc as the generic tree produced by the ojg parser.
func normalize(doc any) (any, error) {
	switch d := doc.(type) {
	case []byte:
		return oj.Parse(d)
	case string:
		return oj.ParseString(d)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return oj.Parse(data)
}
