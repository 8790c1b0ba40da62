package gschema

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned for graph types without a schema.
type ConfigurationError struct {
	GraphType GraphType
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Unknown graph type: %s", e.GraphType)
}

// SchemaMismatchError lists configured columns absent from the data.
type SchemaMismatchError struct {
	Columns []string
}

func (e *SchemaMismatchError) Error() string {
	return "Column(s) not found in data: " + strings.Join(e.Columns, ", ")
}

// MissingRequiredSlotError lists required slots without configuration.
type MissingRequiredSlotError struct {
	Slots []string
}

func (e *MissingRequiredSlotError) Error() string {
	return "Missing required ID(s) in configuration: " + strings.Join(e.Slots, ", ")
}
