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

var (
	// ErrNil is the error returned if Marshal is called with nil.
	ErrNil = errors.New("proto: Marshal called with nil")

	// ErrInvalidUTF8 is the error returned when a string field holds or
	// receives bytes that are not well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("proto: invalid UTF-8 in string field")
)

// Marshal returns the wire-format encoding of m.
//
// Known fields are emitted in field-number order, which for generated code
// is declaration order. Singular scalars at their default value are
// omitted, unless they are the active member of a oneof. Unknown fields
// preserved from a previous parse are appended verbatim after the known
// fields.
func Marshal(m Message) ([]byte, error) {
	return MarshalAppend(nil, m)
}

// MarshalAppend appends the wire-format encoding of m to b.
func MarshalAppend(b []byte, m Message) ([]byte, error) {
	if m == nil {
		return nil, ErrNil
	}
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, ErrNil
	}
	v = v.Elem()
	return appendMessage(b, v, GetProperties(v.Type()))
}

// Size returns the size in bytes of the wire-format encoding of m.
func Size(m Message) int {
	b, err := Marshal(m)
	if err != nil {
		return 0
	}
	return len(b)
}

func appendMessage(b []byte, v reflect.Value, sprop *StructProperties) ([]byte, error) {
	var err error
	for _, step := range sprop.plan {
		if step.prop != nil {
			b, err = appendField(b, v.Field(step.prop.fieldIndex), step.prop)
		} else {
			b, err = appendOneof(b, v.Field(step.oneofField), sprop)
		}
		if err != nil {
			return nil, err
		}
	}
	if ms := sprop.stateOf(v); ms != nil {
		b = append(b, ms.unknownFields...)
	}
	return b, nil
}

func appendField(b []byte, fv reflect.Value, p *Properties) ([]byte, error) {
	switch {
	case p.IsMap():
		return appendMap(b, fv, p)
	case p.Repeated:
		return appendRepeated(b, fv, p)
	default:
		if isZeroField(fv) {
			return b, nil
		}
		return appendSingular(b, fv, p)
	}
}

// isZeroField reports whether a singular field holds its default value and
// may therefore be elided from the output.
func isZeroField(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.Slice: // []byte
		return fv.Len() == 0
	case reflect.Ptr: // message presence
		return fv.IsNil()
	}
	return fv.IsZero()
}

// appendOneof emits the active member of a oneof group. The member is
// written even when it holds its zero value, so that set-ness survives the
// wire.
func appendOneof(b []byte, iface reflect.Value, sprop *StructProperties) ([]byte, error) {
	if iface.IsNil() {
		return b, nil
	}
	op, ok := sprop.oneofByType[iface.Elem().Type()]
	if !ok {
		return nil, perrors.New("unexpected oneof wrapper type %v", iface.Elem().Type())
	}
	fv := iface.Elem().Elem().Field(0)
	return appendSingular(b, fv, op.Prop)
}

// appendSingular emits one tag-value pair for a scalar, string, bytes,
// enum, or message value. Default elision is the caller's concern.
func appendSingular(b []byte, fv reflect.Value, p *Properties) ([]byte, error) {
	switch p.WireType {
	case wire.VarintType, wire.Fixed32Type, wire.Fixed64Type:
		b = wire.AppendTag(b, p.Tag, p.WireType)
		return appendNumericValue(b, fv, p), nil

	case wire.BytesType:
		switch fv.Kind() {
		case reflect.String:
			if !utf8.ValidString(fv.String()) {
				return nil, perrors.Wrap(ErrInvalidUTF8, "field %s", p.OrigName)
			}
			b = wire.AppendTag(b, p.Tag, wire.BytesType)
			return wire.AppendString(b, fv.String()), nil
		case reflect.Slice: // []byte
			b = wire.AppendTag(b, p.Tag, wire.BytesType)
			return wire.AppendBytes(b, fv.Bytes()), nil
		case reflect.Ptr: // message
			var payload []byte
			if !fv.IsNil() {
				sub := fv.Elem()
				var err error
				payload, err = appendMessage(nil, sub, GetProperties(sub.Type()))
				if err != nil {
					return nil, err
				}
			}
			b = wire.AppendTag(b, p.Tag, wire.BytesType)
			return wire.AppendBytes(b, payload), nil
		}
	}
	return nil, perrors.New("no encoder for field %s with wire type %q", p.OrigName, p.Wire)
}

// appendNumericValue emits the bare wire encoding of a numeric value, with
// no tag. It is shared by the singular, packed, and map paths.
func appendNumericValue(b []byte, fv reflect.Value, p *Properties) []byte {
	switch p.Wire {
	case "zigzag32":
		return wire.AppendVarint(b, wire.EncodeZigZag32(int32(fv.Int())))
	case "zigzag64":
		return wire.AppendVarint(b, wire.EncodeZigZag(fv.Int()))
	case "fixed32":
		switch fv.Kind() {
		case reflect.Float32:
			return wire.AppendFixed32(b, wire.EncodeFloat32(float32(fv.Float())))
		case reflect.Int32:
			return wire.AppendFixed32(b, uint32(fv.Int()))
		default:
			return wire.AppendFixed32(b, uint32(fv.Uint()))
		}
	case "fixed64":
		switch fv.Kind() {
		case reflect.Float64:
			return wire.AppendFixed64(b, wire.EncodeFloat64(fv.Float()))
		case reflect.Int64:
			return wire.AppendFixed64(b, uint64(fv.Int()))
		default:
			return wire.AppendFixed64(b, fv.Uint())
		}
	default: // varint
		switch fv.Kind() {
		case reflect.Bool:
			return wire.AppendVarint(b, wire.EncodeBool(fv.Bool()))
		case reflect.Int32, reflect.Int64:
			return wire.AppendVarint(b, uint64(fv.Int()))
		default:
			return wire.AppendVarint(b, fv.Uint())
		}
	}
}

// appendRepeated emits a repeated field. Scalars of packable wire types go
// out as a single packed run regardless of how they arrived; strings,
// bytes, and messages go out one entry per element. An empty slice emits
// nothing.
func appendRepeated(b []byte, fv reflect.Value, p *Properties) ([]byte, error) {
	n := fv.Len()
	if n == 0 {
		return b, nil
	}

	if p.WireType != wire.BytesType {
		var packed []byte
		for i := 0; i < n; i++ {
			packed = appendNumericValue(packed, fv.Index(i), p)
		}
		b = wire.AppendTag(b, p.Tag, wire.BytesType)
		return wire.AppendBytes(b, packed), nil
	}

	var err error
	for i := 0; i < n; i++ {
		if b, err = appendSingular(b, fv.Index(i), p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// appendMap desugars a map field into repeated two-field entry messages
// with the key at number 1 and the value at number 2. Iteration order is
// unspecified.
func appendMap(b []byte, fv reflect.Value, p *Properties) ([]byte, error) {
	iter := fv.MapRange()
	for iter.Next() {
		entry, err := appendSingular(nil, iter.Key(), p.MapKeyProp)
		if err != nil {
			return nil, err
		}
		entry, err = appendSingular(entry, iter.Value(), p.MapValProp)
		if err != nil {
			return nil, err
		}
		b = wire.AppendTag(b, p.Tag, wire.BytesType)
		b = wire.AppendBytes(b, entry)
	}
	return b, nil
}
