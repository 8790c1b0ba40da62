package etlparquet

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/fraugster/parquet-go/floor/interfaces"
	"github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/util/conv"
)

type drowUnmarshaler struct {
	schema *parquetschema.SchemaDefinition
	row    drow.Row
}

// UnmarshalParquet builds the row in schema order, nulls become nil.
func (u *drowUnmarshaler) UnmarshalParquet(obj interfaces.UnmarshalObject) error {
	data := obj.GetData()
	u.row = make(drow.Row, 0, len(u.schema.RootColumn.Children))
	for _, ch := range u.schema.RootColumn.Children {
		el := ch.SchemaElement
		v, err := columnValue(el, data[el.Name])
		if err != nil {
			return fmt.Errorf("column %q: %w", el.Name, err)
		}
		u.row = append(u.row, drow.F(el.Name, v))
	}
	return nil
}

func columnValue(el *parquet.SchemaElement, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if lt := el.LogicalType; lt != nil && lt.TIMESTAMP != nil && lt.TIMESTAMP.Unit != nil {
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("unexpected timestamp type %T", v)
		}
		switch u := lt.TIMESTAMP.Unit; {
		case u.MILLIS != nil:
			return time.UnixMilli(n).UTC(), nil
		case u.MICROS != nil:
			return time.UnixMicro(n).UTC(), nil
		default:
			return time.Unix(0, n).UTC(), nil
		}
	}
	if el.ConvertedType != nil {
		switch el.GetConvertedType() {
		case parquet.ConvertedType_UTF8:
			if b, ok := v.([]byte); ok {
				return string(b), nil
			}
		case parquet.ConvertedType_TIMESTAMP_MILLIS:
			return time.UnixMilli(v.(int64)).UTC(), nil
		case parquet.ConvertedType_TIMESTAMP_MICROS, parquet.ConvertedType_TIME_MICROS:
			return time.UnixMicro(v.(int64)).UTC(), nil
		case parquet.ConvertedType_DECIMAL:
			return decimal(v, el.GetScale())
		}
	}
	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	return v, nil
}

// decimal converts an unscaled parquet decimal to float64 so it can be
// aggregated like any other number.
func decimal(v any, scale int32) (any, error) {
	var d *apd.Decimal
	switch vv := v.(type) {
	case []byte:
		bi := new(big.Int).SetBytes(vv)
		d = apd.NewWithBigInt(bi, -scale)
	case int32:
		d = apd.New(int64(vv), -scale)
	case int64:
		d = apd.New(vv, -scale)
	default:
		return nil, fmt.Errorf("unexpected decimal type %T", v)
	}
	return d.Float64()
}

type column struct {
	name string
	typ  parquet.Type
	time bool
}

type drowMarshaler struct {
	cols []column
	row  drow.Row
}

// MarshalParquet writes the row values converted to the column types, nil
// values and missing fields are left unset.
func (m *drowMarshaler) MarshalParquet(obj interfaces.MarshalObject) error {
	for _, c := range m.cols {
		v := m.row.Value(c.name)
		if v == nil {
			continue
		}
		e := obj.AddField(c.name)
		switch {
		case c.time:
			t, ok := v.(time.Time)
			if !ok {
				return fmt.Errorf("column %q: expected time.Time, got %T", c.name, v)
			}
			e.SetInt64(t.UnixNano())
		case c.typ == parquet.Type_BOOLEAN:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("column %q: expected bool, got %T", c.name, v)
			}
			e.SetBool(b)
		case c.typ == parquet.Type_INT64:
			if !conv.IsNumber(v) {
				return fmt.Errorf("column %q: expected number, got %T", c.name, v)
			}
			e.SetInt64(conv.Conv(int64(0), v))
		case c.typ == parquet.Type_DOUBLE:
			f, ok := conv.Float64(v)
			if !ok {
				return fmt.Errorf("column %q: expected number, got %T", c.name, v)
			}
			e.SetFloat64(f)
		default:
			e.SetByteArray([]byte(conv.ToString(v)))
		}
	}
	return nil
}

// drowSchemaFrom builds an all optional schema from the row values, nil
// values and sequences are stored as strings.
func drowSchemaFrom(r drow.Row) (*parquetschema.SchemaDefinition, []column) {
	root := &parquetschema.SchemaDefinition{
		RootColumn: &parquetschema.ColumnDefinition{
			SchemaElement: &parquet.SchemaElement{Name: "row"},
		},
	}
	cols := make([]column, 0, len(r))
	for _, f := range r {
		c := column{name: f.Name, typ: parquet.Type_BYTE_ARRAY}

		var convTyp *parquet.ConvertedType
		var logTyp *parquet.LogicalType

		switch v := f.Value.(type) {
		case time.Time:
			c.typ = parquet.Type_INT64
			c.time = true
			logTyp = &parquet.LogicalType{
				TIMESTAMP: &parquet.TimestampType{
					IsAdjustedToUTC: true,
					Unit: &parquet.TimeUnit{
						NANOS: &parquet.NanoSeconds{},
					},
				},
			}
		case bool:
			c.typ = parquet.Type_BOOLEAN
		default:
			switch k := reflect.ValueOf(v).Kind(); {
			case k >= reflect.Int && k <= reflect.Uint64:
				c.typ = parquet.Type_INT64
			case k == reflect.Float32 || k == reflect.Float64:
				c.typ = parquet.Type_DOUBLE
			}
		}
		if c.typ == parquet.Type_BYTE_ARRAY {
			convTyp = new(parquet.ConvertedType)
			*convTyp = parquet.ConvertedType_UTF8
			logTyp = &parquet.LogicalType{
				STRING: &parquet.StringType{},
			}
		}

		typ := c.typ
		rep := parquet.FieldRepetitionType_OPTIONAL
		col := &parquetschema.ColumnDefinition{
			SchemaElement: &parquet.SchemaElement{
				Name:           f.Name,
				Type:           &typ,
				RepetitionType: &rep,
				ConvertedType:  convTyp,
				LogicalType:    logTyp,
			},
		}
		root.RootColumn.Children = append(root.RootColumn.Children, col)
		cols = append(cols, c)
	}
	return root, cols
}
