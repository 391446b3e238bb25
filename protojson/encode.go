// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/lightpb/lightpb/internal/encoding/json"
	"github.com/lightpb/lightpb/internal/errors"
	"github.com/lightpb/lightpb/proto"
)

// Marshal writes the given proto.Message in JSON format using default
// options.
func Marshal(m proto.Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(m)
}

// MarshalOptions is a configurable JSON format marshaler.
type MarshalOptions struct {
	// If Indent is a non-empty string, it causes entries for an Array or
	// Object to be preceded by the indent and trailed by a newline. Indent
	// can only be composed of space or tab characters.
	Indent string

	// EmitDefaults specifies whether fields holding their default value
	// are written out. By default they are omitted, matching the wire
	// format's default elision.
	EmitDefaults bool

	// Casing selects the style of the emitted field names.
	Casing Casing

	encoder *json.Encoder
}

// Marshal marshals the given proto.Message in the JSON format using
// options in MarshalOptions.
func (o MarshalOptions) Marshal(m proto.Message) ([]byte, error) {
	enc, err := json.NewEncoder(o.Indent)
	if err != nil {
		return nil, err
	}
	o.encoder = enc
	if err := o.marshalMessage(m); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// marshalMessage marshals the given message, dispatching to the special
// shapes of the well-known types first.
func (o MarshalOptions) marshalMessage(m proto.Message) error {
	if done, err := o.marshalWellKnownType(m); done {
		return err
	}

	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		o.encoder.StartObject()
		o.encoder.EndObject()
		return nil
	}
	v = v.Elem()

	o.encoder.StartObject()
	defer o.encoder.EndObject()
	return o.marshalFields(v)
}

func (o MarshalOptions) marshalFields(v reflect.Value) error {
	sprop := proto.GetProperties(v.Type())

	for _, p := range sprop.Prop {
		fv := v.FieldByName(p.Name)
		if !o.EmitDefaults && isEmptyField(fv, p) {
			continue
		}
		if err := o.encoder.WriteName(o.Casing.jsonName(p)); err != nil {
			return err
		}
		if err := o.marshalValue(fv, p); err != nil {
			return err
		}
	}

	// Marshal out the active member of every oneof group. An inactive
	// group stays absent even when defaults are emitted.
	for _, fi := range oneofFieldIndexes(sprop) {
		iface := v.Field(fi)
		if iface.IsNil() {
			continue
		}
		op := oneofByWrapperType(sprop, iface.Elem().Type())
		if op == nil {
			return errors.New("unexpected oneof wrapper type %v", iface.Elem().Type())
		}
		if err := o.encoder.WriteName(o.Casing.jsonName(op.Prop)); err != nil {
			return err
		}
		if err := o.marshalSingular(iface.Elem().Elem().Field(0), op.Prop); err != nil {
			return err
		}
	}
	return nil
}

// oneofFieldIndexes returns the struct field indexes of the oneof
// interface fields, in ascending order.
func oneofFieldIndexes(sprop *proto.StructProperties) []int {
	seen := map[int]bool{}
	var out []int
	for _, op := range sprop.OneofTypes {
		if !seen[op.Field] {
			seen[op.Field] = true
			out = append(out, op.Field)
		}
	}
	sort.Ints(out)
	return out
}

func oneofByWrapperType(sprop *proto.StructProperties, t reflect.Type) *proto.OneofProperties {
	for _, op := range sprop.OneofTypes {
		if op.Type == t {
			return op
		}
	}
	return nil
}

// isEmptyField reports whether the field holds its default value and may
// be omitted under the default emission policy.
func isEmptyField(fv reflect.Value, p *proto.Properties) bool {
	switch {
	case p.IsMap(), p.Repeated:
		return fv.Len() == 0
	case fv.Kind() == reflect.Ptr:
		return fv.IsNil()
	case fv.Kind() == reflect.Slice: // []byte
		return fv.Len() == 0
	default:
		return fv.IsZero()
	}
}

func (o MarshalOptions) marshalValue(fv reflect.Value, p *proto.Properties) error {
	switch {
	case p.IsMap():
		return o.marshalMap(fv, p)
	case p.Repeated:
		return o.marshalList(fv, p)
	default:
		return o.marshalSingular(fv, p)
	}
}

// marshalSingular marshals a single scalar, string, bytes, enum, or
// message value.
func (o MarshalOptions) marshalSingular(fv reflect.Value, p *proto.Properties) error {
	switch fv.Kind() {
	case reflect.Bool:
		o.encoder.WriteBool(fv.Bool())

	case reflect.Int32:
		if p.Enum != "" {
			return o.marshalEnum(int32(fv.Int()), p)
		}
		o.encoder.WriteInt(fv.Int())

	case reflect.Uint32:
		o.encoder.WriteUint(fv.Uint())

	case reflect.Int64:
		// 64-bit integers are written out as JSON string.
		return o.encoder.WriteString(strconv.FormatInt(fv.Int(), 10))

	case reflect.Uint64:
		return o.encoder.WriteString(strconv.FormatUint(fv.Uint(), 10))

	case reflect.Float32:
		// WriteFloat handles the special values NaN and the infinities.
		o.encoder.WriteFloat(fv.Float(), 32)

	case reflect.Float64:
		o.encoder.WriteFloat(fv.Float(), 64)

	case reflect.String:
		return o.encoder.WriteString(fv.String())

	case reflect.Slice: // []byte
		return o.encoder.WriteString(base64.StdEncoding.EncodeToString(fv.Bytes()))

	case reflect.Ptr: // message
		if fv.IsNil() {
			o.encoder.WriteNull()
			return nil
		}
		return o.marshalMessage(fv.Interface().(proto.Message))
	}
	return errors.New("no JSON encoder for field %s of kind %v", p.OrigName, fv.Kind())
}

// marshalEnum writes an enum value by name when the name is known, as a
// number otherwise. Unknown integers therefore round-trip as integers.
func (o MarshalOptions) marshalEnum(num int32, p *proto.Properties) error {
	if p.Enum == "google.protobuf.NullValue" {
		o.encoder.WriteNull()
		return nil
	}
	if names := proto.EnumNameMap(p.Enum); names != nil {
		if name, ok := names[num]; ok {
			return o.encoder.WriteString(name)
		}
	}
	o.encoder.WriteInt(int64(num))
	return nil
}

func (o MarshalOptions) marshalList(fv reflect.Value, p *proto.Properties) error {
	o.encoder.StartArray()
	defer o.encoder.EndArray()
	for i := 0; i < fv.Len(); i++ {
		if err := o.marshalSingular(fv.Index(i), p); err != nil {
			return err
		}
	}
	return nil
}

type mapEntry struct {
	key   string
	value reflect.Value
}

// marshalMap writes a map field as a JSON object with stringified keys,
// sorted for deterministic output.
func (o MarshalOptions) marshalMap(fv reflect.Value, p *proto.Properties) error {
	o.encoder.StartObject()
	defer o.encoder.EndObject()

	entries := make([]mapEntry, 0, fv.Len())
	iter := fv.MapRange()
	for iter.Next() {
		entries = append(entries, mapEntry{
			key:   mapKeyString(iter.Key()),
			value: iter.Value(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	for _, entry := range entries {
		if err := o.encoder.WriteName(entry.key); err != nil {
			return err
		}
		if err := o.marshalSingular(entry.value, p.MapValProp); err != nil {
			return err
		}
	}
	return nil
}

// mapKeyString stringifies a map key: booleans as "true"/"false",
// integers in decimal, strings as themselves.
func mapKeyString(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Bool:
		return strconv.FormatBool(k.Bool())
	case reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprint(k.Interface())
}
