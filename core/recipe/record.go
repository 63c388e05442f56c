package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueList
	ValueRecord
)

// Value is a loosely-typed JSON value inside a Record. Numbers keep their
// literal text so re-encoding does not change them.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number json.Number
	String string
	List   []Value
	Record Record
}

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value Value
}

// Record is a JSON object whose structure is not interpreted. Keys keep
// their markup order, duplicates included.
type Record []Field

// Get returns the value of the last field named key.
func (r Record) Get(key string) (Value, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Key == key {
			return r[i].Value, true
		}
	}
	return Value{}, false
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

func (r *Record) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(newDecoder(data))
	if err != nil {
		return err
	}
	if v.Kind != ValueRecord {
		return shapeError("record", data, "object")
	}
	*r = v.Record
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := decodeValue(newDecoder(data))
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueBool:
		return json.Marshal(v.Bool)
	case ValueNumber:
		if v.Number == "" {
			return []byte("0"), nil
		}
		return []byte(v.Number), nil
	case ValueString:
		return json.Marshal(v.String)
	case ValueList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case ValueRecord:
		return v.Record.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

// decodeValue reads one complete value from the token stream.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			rec := Record{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key: unexpected token %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				rec = append(rec, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{Kind: ValueRecord, Record: rec}, nil
		case '[':
			list := []Value{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{Kind: ValueList, List: list}, nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return Value{Kind: ValueString, String: t}, nil
	case json.Number:
		return Value{Kind: ValueNumber, Number: t}, nil
	case bool:
		return Value{Kind: ValueBool, Bool: t}, nil
	case nil:
		return Value{Kind: ValueNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}
