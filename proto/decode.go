// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"errors"
	"reflect"
	"unicode/utf8"

	"github.com/lightpb/lightpb/internal/encoding/wire"
	perrors "github.com/lightpb/lightpb/internal/errors"
)

// ErrRecursionLimit is the error returned when the nesting depth of parsed
// messages exceeds the configured bound.
var ErrRecursionLimit = errors.New("proto: message nesting exceeds the recursion limit")

// defaultRecursionLimit bounds nested message depth on adversarial inputs.
const defaultRecursionLimit = 100

// Unmarshal parses the wire-format message in b and places the result in m,
// resetting m first.
//
// Unknown fields are not an error: their bytes are preserved verbatim and
// re-emitted by Marshal. The last occurrence of a duplicated singular
// scalar wins; duplicated singular sub-messages are merged.
func Unmarshal(b []byte, m Message) error {
	return UnmarshalOptions{}.Unmarshal(b, m)
}

// UnmarshalMerge parses the wire-format message in b and merges the result
// into m, without resetting it first.
func UnmarshalMerge(b []byte, m Message) error {
	return UnmarshalOptions{Merge: true}.Unmarshal(b, m)
}

// UnmarshalOptions is a configurable wire-format parser.
type UnmarshalOptions struct {
	// Merge merges the input into the destination message instead of
	// resetting it first.
	Merge bool

	// RecursionLimit bounds the nesting depth of parsed messages.
	// The default is 100.
	RecursionLimit int
}

// Unmarshal parses the wire-format message in b and places the result in m.
func (o UnmarshalOptions) Unmarshal(b []byte, m Message) error {
	if m == nil {
		return ErrNil
	}
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNil
	}
	if !o.Merge {
		m.Reset()
	}
	if o.RecursionLimit == 0 {
		o.RecursionLimit = defaultRecursionLimit
	}
	v = v.Elem()
	return unmarshalMessage(b, v, GetProperties(v.Type()), o.RecursionLimit)
}

func unmarshalMessage(b []byte, v reflect.Value, sprop *StructProperties, depth int) error {
	if depth <= 0 {
		return ErrRecursionLimit
	}
	if ms := sprop.stateOf(v); ms != nil {
		ms.wasSerialized = true
	}
	for len(b) > 0 {
		num, typ, n, err := wire.ConsumeTag(b)
		if err != nil {
			return err
		}
		if typ == wire.StartGroupType || typ == wire.EndGroupType {
			return wire.ErrWireType
		}
		tag := b[:n]
		b = b[n:]

		if i, ok := sprop.byNumber.get(int(num)); ok {
			p := sprop.Prop[i]
			n, err = unmarshalField(b, typ, v.Field(p.fieldIndex), p, depth)
		} else if op, ok := sprop.oneofByNumber[num]; ok {
			n, err = unmarshalOneof(b, typ, v, op, depth)
		} else {
			// Field is unknown to the schema: copy the tag and payload
			// verbatim so Marshal can re-emit them.
			n, err = wire.ConsumeFieldValue(typ, b)
			if err == nil {
				if ms := sprop.stateOf(v); ms != nil {
					ms.unknownFields = append(ms.unknownFields, tag...)
					ms.unknownFields = append(ms.unknownFields, b[:n]...)
				}
			}
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func unmarshalField(b []byte, typ wire.Type, fv reflect.Value, p *Properties, depth int) (int, error) {
	switch {
	case p.IsMap():
		if typ != wire.BytesType {
			return 0, wire.ErrWireType
		}
		raw, n, err := wire.ConsumeBytes(b)
		if err != nil {
			return 0, err
		}
		return n, unmarshalMapEntry(raw, fv, p, depth)

	case p.Repeated:
		return unmarshalRepeated(b, typ, fv, p, depth)

	default:
		// Singular: the last occurrence wins for scalars; sub-messages
		// merge into any previously parsed instance.
		return consumeValue(b, typ, fv, p, depth)
	}
}

// unmarshalRepeated appends to a repeated field. Scalars of packable wire
// types are accepted both packed and unpacked, regardless of the
// descriptor's packed flag.
func unmarshalRepeated(b []byte, typ wire.Type, fv reflect.Value, p *Properties, depth int) (int, error) {
	if p.WireType != wire.BytesType && typ == wire.BytesType {
		// Packed run: a single length-delimited concatenation.
		raw, n, err := wire.ConsumeBytes(b)
		if err != nil {
			return 0, err
		}
		for len(raw) > 0 {
			ev := reflect.New(fv.Type().Elem()).Elem()
			m, err := consumeValue(raw, p.WireType, ev, p, depth)
			if err != nil {
				return 0, err
			}
			fv.Set(reflect.Append(fv, ev))
			raw = raw[m:]
		}
		return n, nil
	}

	ev := reflect.New(fv.Type().Elem()).Elem()
	n, err := consumeValue(b, typ, ev, p, depth)
	if err != nil {
		return 0, err
	}
	fv.Set(reflect.Append(fv, ev))
	return n, nil
}

// unmarshalOneof parses a member of a oneof group. Parsing any member
// makes it the active one; a duplicated message member merges into the
// existing instance, anything else starts fresh.
func unmarshalOneof(b []byte, typ wire.Type, v reflect.Value, op *OneofProperties, depth int) (int, error) {
	iface := v.Field(op.Field)
	wrapper := reflect.New(op.Type.Elem())
	if op.Prop.stype != nil && !iface.IsNil() && iface.Elem().Type() == op.Type {
		wrapper = iface.Elem()
	}
	n, err := consumeValue(b, typ, wrapper.Elem().Field(0), op.Prop, depth)
	if err != nil {
		return 0, err
	}
	iface.Set(wrapper)
	return n, nil
}

// consumeValue decodes a single value of the field's declared type from b,
// checking it against the observed wire type, and stores it into fv.
func consumeValue(b []byte, typ wire.Type, fv reflect.Value, p *Properties, depth int) (int, error) {
	if p.WireType != wire.BytesType {
		if typ != p.WireType {
			return 0, wire.ErrWireType
		}
		var x uint64
		var n int
		var err error
		switch typ {
		case wire.VarintType:
			x, n, err = wire.ConsumeVarint(b)
		case wire.Fixed32Type:
			var x32 uint32
			x32, n, err = wire.ConsumeFixed32(b)
			x = uint64(x32)
		case wire.Fixed64Type:
			x, n, err = wire.ConsumeFixed64(b)
		}
		if err != nil {
			return 0, err
		}
		setScalar(fv, p, x)
		return n, nil
	}

	if typ != wire.BytesType {
		return 0, wire.ErrWireType
	}
	raw, n, err := wire.ConsumeBytes(b)
	if err != nil {
		return 0, err
	}
	switch fv.Kind() {
	case reflect.String:
		if !utf8.Valid(raw) {
			return 0, perrors.Wrap(ErrInvalidUTF8, "field %s", p.OrigName)
		}
		fv.SetString(string(raw))
	case reflect.Slice:
		fv.SetBytes(append(raw[:0:0], raw...))
	case reflect.Ptr:
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		sub := fv.Elem()
		if err := unmarshalMessage(raw, sub, GetProperties(sub.Type()), depth-1); err != nil {
			return 0, err
		}
	default:
		return 0, perrors.New("no decoder for field %s of kind %v", p.OrigName, fv.Kind())
	}
	return n, nil
}

// setScalar stores a decoded wire integer into a numeric, bool, or enum
// field, undoing the zig-zag or bit-reinterpretation transform declared by
// the field's encoding.
func setScalar(fv reflect.Value, p *Properties, x uint64) {
	switch p.Wire {
	case "zigzag32":
		fv.SetInt(int64(wire.DecodeZigZag32(x)))
		return
	case "zigzag64":
		fv.SetInt(wire.DecodeZigZag(x))
		return
	}
	switch fv.Kind() {
	case reflect.Bool:
		fv.SetBool(wire.DecodeBool(x))
	case reflect.Int32:
		fv.SetInt(int64(int32(x)))
	case reflect.Int64:
		fv.SetInt(int64(x))
	case reflect.Uint32:
		fv.SetUint(uint64(uint32(x)))
	case reflect.Uint64:
		fv.SetUint(x)
	case reflect.Float32:
		fv.SetFloat(float64(wire.DecodeFloat32(uint32(x))))
	case reflect.Float64:
		fv.SetFloat(wire.DecodeFloat64(x))
	}
}

// unmarshalMapEntry decodes one synthetic two-field entry message and
// inserts it, overwriting any prior entry with the same key. A missing key
// or value takes the zero of its type.
func unmarshalMapEntry(raw []byte, fv reflect.Value, p *Properties, depth int) error {
	if fv.IsNil() {
		fv.Set(reflect.MakeMap(p.mtype))
	}
	key := reflect.New(p.mtype.Key()).Elem()
	val := reflect.New(p.mtype.Elem()).Elem()

	for len(raw) > 0 {
		num, typ, n, err := wire.ConsumeTag(raw)
		if err != nil {
			return err
		}
		raw = raw[n:]
		switch num {
		case 1:
			n, err = consumeValue(raw, typ, key, p.MapKeyProp, depth)
		case 2:
			n, err = consumeValue(raw, typ, val, p.MapValProp, depth)
		default:
			n, err = wire.ConsumeFieldValue(typ, raw)
		}
		if err != nil {
			return err
		}
		raw = raw[n:]
	}

	// A message-valued entry with no value bytes still maps the key to an
	// empty, present message.
	if val.Kind() == reflect.Ptr && val.IsNil() {
		val.Set(reflect.New(val.Type().Elem()))
	}
	fv.SetMapIndex(key, val)
	return nil
}
