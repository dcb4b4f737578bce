package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind is the type of data held by a Value
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ListKind
	MapKind
)

var kindNames = [...]string{"null", "bool", "number", "string", "list", "map"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value holds a JSON value whose shape is controlled by the upstream API (dependencies, changelogs,
// install metadata...). Nothing interprets it; it only has to survive decoding and re-encoding.
// Map key order and the literal text of numbers are kept. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	s     string // string contents, or the literal text of a number
	list  []Value
	keys  []string
	items map[string]Value
}

// Member is a key/value pair used to build map Values
type Member struct {
	Key   string
	Value Value
}

func BoolValue(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

func StringValue(s string) Value {
	return Value{kind: StringKind, s: s}
}

func IntValue(i int64) Value {
	return Value{kind: NumberKind, s: strconv.FormatInt(i, 10)}
}

func FloatValue(f float64) Value {
	return Value{kind: NumberKind, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

func ListValue(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: ListKind, list: list}
}

// MapValue builds a map Value; a repeated key keeps its first position and its last value
func MapValue(members ...Member) Value {
	v := Value{kind: MapKind, keys: []string{}, items: make(map[string]Value, len(members))}
	for _, m := range members {
		v.set(m.Key, m.Value)
	}
	return v
}

func (v *Value) set(key string, item Value) {
	if _, exists := v.items[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.items[key] = item
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == NullKind
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.s, true
}

func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != NumberKind {
		return "", false
	}
	return json.Number(v.s), true
}

// Len returns the number of items in a list or map, and 0 for anything else
func (v Value) Len() int {
	switch v.kind {
	case ListKind:
		return len(v.list)
	case MapKind:
		return len(v.keys)
	}
	return 0
}

// Index returns the i-th list item, or null if v is not a list or i is out of range
func (v Value) Index(i int) Value {
	if v.kind != ListKind || i < 0 || i >= len(v.list) {
		return Value{}
	}
	return v.list[i]
}

// Keys returns the map keys in the order they were received
func (v Value) Keys() []string {
	if v.kind != MapKind {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

func (v Value) Get(key string) (Value, bool) {
	if v.kind != MapKind {
		return Value{}, false
	}
	item, ok := v.items[key]
	return item, ok
}

// String returns the compact JSON encoding of v
func (v Value) String() string {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return buf.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		if !json.Valid([]byte(v.s)) {
			return fmt.Errorf("invalid number literal %q", v.s)
		}
		buf.WriteString(v.s)
	case StringKind:
		data, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(data)
	case ListKind:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MapKind:
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			if err := v.items[key].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %v", v.kind)
	}
	return nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	*v = parsed
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return Value{kind: NumberKind, s: t.String()}, nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			v := Value{kind: ListKind, list: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				v.list = append(v.list, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return v, nil
		case '{':
			v := Value{kind: MapKind, keys: []string{}, items: make(map[string]Value)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				v.set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}
