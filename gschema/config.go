package gschema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ColumnRef references one column or an ordered list of columns, it
// remembers which form it was given in.
type ColumnRef struct {
	Names []string
	List  bool
}

// Column returns a single column reference.
func Column(name string) ColumnRef {
	return ColumnRef{Names: []string{name}}
}

// Columns returns a list column reference.
func Columns(names ...string) ColumnRef {
	return ColumnRef{Names: names, List: true}
}

// First returns the first referenced column or "".
func (c ColumnRef) First() string {
	if len(c.Names) == 0 {
		return ""
	}
	return c.Names[0]
}

// Value returns the reference as it was given, a string or a []string.
func (c ColumnRef) Value() any {
	if c.List {
		return append([]string{}, c.Names...)
	}
	return c.First()
}

// UnmarshalJSON accepts a string or an array of strings.
func (c *ColumnRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("columnId: %w", err)
		}
		*c = Columns(names...)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("columnId: %w", err)
	}
	*c = Column(name)
	return nil
}

// MarshalJSON writes the reference in the form it was given.
func (c ColumnRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

// Config binds source columns to a schema slot.
type Config struct {
	ColumnID      ColumnRef `json:"columnId"`
	ChartConfigID string    `json:"chartConfigId"`
}
