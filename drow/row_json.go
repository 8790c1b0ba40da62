package drow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// UnmarshalJSON implements the json.Unmarshaler interface, field order is the
// order of the keys in the object.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	v, err := jsonReadValue(dec, nil)
	if err != nil {
		return err
	}

	switch v := v.(type) {
	case Row:
		*r = v
	default:
		return fmt.Errorf("Row.UnmarshalJSON: unexpected type: %T", v)
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface keeping the field order.
func (r Row) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}

	buf.WriteByte('{')
	for i, f := range r {
		data, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(data)
		if i < len(r)-1 {
			buf.WriteByte(',')
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeJSONArray reads a JSON array of objects from rd, calling fn for each
// object as soon as it is decoded.
func DecodeJSONArray(rd io.Reader, fn func(Row) error) error {
	dec := json.NewDecoder(rd)
	tok, err := dec.Token()
	if err != nil {
		return unexpectedEOF(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("drow: expected array, got %v", tok)
	}
	for dec.More() {
		v, err := jsonReadValue(dec, nil)
		if err != nil {
			return unexpectedEOF(err)
		}
		row, ok := v.(Row)
		if !ok {
			return fmt.Errorf("drow: expected object, got %T", v)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return unexpectedEOF(err)
}

// unexpectedEOF turns io.EOF into io.ErrUnexpectedEOF so a truncated
// document is not mistaken for the end of an iterator.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func jsonReadArray(dec *json.Decoder) ([]any, error) {
	data := []any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if v, ok := tok.(json.Delim); ok && v == ']' {
			return data, nil
		}

		v, err := jsonReadValue(dec, tok)
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}
}

func jsonReadValue(dec *json.Decoder, tok json.Token) (any, error) {
	if tok == nil {
		t, err := dec.Token()
		if err != nil {
			return nil, err
		}
		tok = t
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return jsonReadObject(dec)
		case '[':
			arr, err := jsonReadArray(dec)
			if err != nil {
				return arr, err
			}
			if len(arr) == 0 {
				return arr, nil
			}
			// Make it a single type, might be expensive
			typ := reflect.TypeOf(arr[0])
			if typ == nil {
				return arr, nil
			}
			for _, a := range arr {
				if typ != reflect.TypeOf(a) {
					return arr, nil
				}
			}
			slice := reflect.MakeSlice(reflect.SliceOf(typ), 0, len(arr))
			for _, a := range arr {
				slice = reflect.Append(slice, reflect.ValueOf(a))
			}

			return slice.Interface(), nil
		}
	default:
		return t, nil
	}
	return nil, errors.New("drow: unexpected json delimiter")
}

func jsonReadObject(dec *json.Decoder) (Row, error) {
	row := Row{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return Row{}, err
		}
		if t, ok := tok.(json.Delim); ok && t == '}' {
			return row, nil
		}

		key, ok := tok.(string)
		if !ok {
			return Row{}, fmt.Errorf("unexpected: %v", tok)
		}
		value, err := jsonReadValue(dec, nil)
		if err != nil {
			return Row{}, err
		}
		row.set(key, value)
	}
}
