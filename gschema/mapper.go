package gschema

import (
	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/dtable"
	"github.com/stdiopt/vizdata/util/set"
)

// Data is the result of Map, it either holds the mapped rows or the error
// that prevented the mapping.
type Data struct {
	rows        dtable.Table
	err         error
	passThrough bool
}

// Rows returns the mapped rows, nil when invalid.
func (d Data) Rows() dtable.Table { return d.rows }

// Err returns the mapping error if any.
func (d Data) Err() error { return d.err }

// Valid reports whether the mapping succeeded.
func (d Data) Valid() bool { return d.err == nil }

// Source returns the source row of every mapped row, in order. Rows of pass
// through graph types are their own source.
func (d Data) Source() dtable.Table {
	if d.rows == nil || d.passThrough {
		return d.rows
	}
	ret := make(dtable.Table, len(d.rows))
	for i, r := range d.rows {
		ret[i], _ = r.Value("data").(drow.Row)
	}
	return ret
}

// Message returns the error message or "" when valid.
func (d Data) Message() string {
	if d.err == nil {
		return ""
	}
	return d.err.Error()
}

// Validate checks that g is known, that every configured column exists in
// the first row and that every required slot is configured. Pass through
// graph types and empty tables are always valid.
func Validate(rows dtable.Table, g GraphType, cfgs []Config) error {
	s, ok := Lookup(g)
	if !ok {
		return &ConfigurationError{GraphType: g}
	}
	if s.PassThrough || len(rows) == 0 {
		return nil
	}

	have := set.Set[string]{}
	have.Add(rows.Columns()...)

	missing := set.Set[string]{}
	for _, c := range cfgs {
		for _, n := range c.ColumnID.Names {
			if !have.Has(n) {
				missing.Add(n)
			}
		}
	}
	if missing.Len() > 0 {
		return &SchemaMismatchError{Columns: missing.Data}
	}

	configured := set.Set[string]{}
	for _, c := range cfgs {
		configured.Add(c.ChartConfigID)
	}
	var unmapped []string
	for _, sl := range s.Slots {
		if sl.Required && !configured.Has(sl.ID) {
			unmapped = append(unmapped, sl.ID)
		}
	}
	if len(unmapped) > 0 {
		return &MissingRequiredSlotError{Slots: unmapped}
	}
	return nil
}

// Map validates the configuration and projects every row into the shape
// graph type g expects: one field per configured slot holding the value (or
// the list of values for multiple slots), a slot+"Columns" field holding the
// configured column ids and a "data" field with the source row.
//
// Pass through graph types return rows unchanged, an empty table maps to an
// empty table.
func Map(rows dtable.Table, g GraphType, cfgs []Config) Data {
	if err := Validate(rows, g, cfgs); err != nil {
		return Data{err: err}
	}
	s, _ := Lookup(g)
	if s.PassThrough {
		return Data{rows: rows, passThrough: true}
	}

	ret := make(dtable.Table, len(rows))
	for i, r := range rows {
		ret[i] = project(s, r, cfgs)
	}
	return Data{rows: ret}
}

func project(s Schema, r drow.Row, cfgs []Config) drow.Row {
	out := drow.Row{}
	for _, c := range cfgs {
		// slots missing from the schema are mapped as single valued
		sl, _ := s.Slot(c.ChartConfigID)

		var v any
		if sl.Multiple {
			vs := make([]any, len(c.ColumnID.Names))
			for i, n := range c.ColumnID.Names {
				vs[i] = r.Value(n)
			}
			v = vs
		} else {
			v = r.Value(c.ColumnID.First())
		}
		out = out.WithFields(
			drow.F(c.ChartConfigID, v),
			drow.F(c.ChartConfigID+"Columns", c.ColumnID.Value()),
		)
	}
	return out.WithField("data", r)
}
