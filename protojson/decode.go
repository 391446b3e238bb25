// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson

import (
	"encoding/base64"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/lightpb/lightpb/internal/encoding/json"
	"github.com/lightpb/lightpb/internal/errors"
	"github.com/lightpb/lightpb/proto"
)

// Unmarshal reads the given []byte into the given proto.Message, resetting
// it first.
func Unmarshal(b []byte, m proto.Message) error {
	return UnmarshalOptions{}.Unmarshal(b, m)
}

// UnmarshalOptions is a configurable JSON format parser.
type UnmarshalOptions struct {
	// If DiscardUnknown is set, unknown field names are ignored instead of
	// being an error.
	DiscardUnknown bool

	// RecursionLimit bounds the nesting depth of parsed messages.
	// The default is 100.
	RecursionLimit int

	decoder *json.Decoder
}

// Unmarshal reads the given []byte and populates the given proto.Message
// using options in UnmarshalOptions. If it returns an error, the given
// message may be partially set.
func (o UnmarshalOptions) Unmarshal(b []byte, m proto.Message) error {
	if m == nil {
		return proto.ErrNil
	}
	m.Reset()
	if o.RecursionLimit == 0 {
		o.RecursionLimit = 100
	}
	o.decoder = json.NewDecoder(b)

	if err := o.unmarshalMessage(m, o.RecursionLimit); err != nil {
		return err
	}

	// Check for EOF.
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.EOF {
		return unexpectedJSONError{jval}
	}
	return nil
}

// unexpectedJSONError is an error that contains the unexpected json.Value.
type unexpectedJSONError struct {
	value json.Value
}

func (e unexpectedJSONError) Error() string {
	return newError("unexpected value %s", e.value.Raw()).Error()
}

// newError returns an error object. If one of the values passed in is of
// json.Value type, it produces an error with position info.
func newError(f string, x ...interface{}) error {
	var hasValue bool
	var line, column int
	for i := 0; i < len(x); i++ {
		if val, ok := x[i].(json.Value); ok {
			line, column = val.Position()
			x[i] = val.Raw()
			hasValue = true
			break
		}
	}
	e := errors.New(f, x...)
	if hasValue {
		return errors.New("(line %d:%d): %v", line, column, e)
	}
	return e
}

// unmarshalMessage unmarshals a JSON object (or the special shape of a
// well-known type) into m.
func (o UnmarshalOptions) unmarshalMessage(m proto.Message, depth int) error {
	if depth <= 0 {
		return proto.ErrRecursionLimit
	}
	proto.MarkSerialized(m)

	if done, err := o.unmarshalWellKnownType(m, depth); done {
		return err
	}

	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.StartObject {
		return unexpectedJSONError{jval}
	}
	return o.unmarshalFields(m, depth)
}

func (o UnmarshalOptions) unmarshalFields(m proto.Message, depth int) error {
	v := reflect.ValueOf(m).Elem()
	sprop := proto.GetProperties(v.Type())
	seenNums := map[int32]bool{}
	seenOneofs := map[int]bool{}

	for {
		// Read field name.
		jval, err := o.decoder.Read()
		if err != nil {
			return err
		}
		switch jval.Type() {
		default:
			return unexpectedJSONError{jval}
		case json.EndObject:
			return nil
		case json.Name:
			// Continue below.
		}

		name, err := jval.Name()
		if err != nil {
			return err
		}

		// The name can either be the JSON name or the proto field name.
		p, op := findField(sprop, name)
		if p == nil && op == nil {
			if o.DiscardUnknown {
				if err := skipJSONValue(o.decoder); err != nil {
					return err
				}
				continue
			}
			return newError("unknown field %q", name)
		}

		if op != nil {
			// A oneof member: only one member may appear per object.
			if seenOneofs[op.Field] {
				return newError("oneof field group of %q is already set", name)
			}
			seenOneofs[op.Field] = true

			if o.decoder.Peek() == json.Null && !isNullableOneofMember(op) {
				o.decoder.Read()
				continue
			}
			wrapper := reflect.New(op.Type.Elem())
			if err := o.unmarshalSingular(wrapper.Elem().Field(0), op.Prop, depth); err != nil {
				return errors.New("field %q: %v", name, err)
			}
			v.Field(op.Field).Set(wrapper)
			continue
		}

		// Do not allow duplicate fields.
		if seenNums[int32(p.Tag)] {
			return newError("duplicate field %q", name)
		}
		seenNums[int32(p.Tag)] = true

		fv := v.FieldByName(p.Name)

		// A JSON null resets nothing and the field keeps its default,
		// except for google.protobuf.Value where null is a real value.
		if o.decoder.Peek() == json.Null && fv.Type() != structValueType {
			o.decoder.Read()
			continue
		}
		switch {
		case p.IsMap():
			err = o.unmarshalMap(fv, p, depth)
		case p.Repeated:
			err = o.unmarshalList(fv, p, depth)
		default:
			err = o.unmarshalSingular(fv, p, depth)
		}
		if err != nil {
			return errors.New("field %q: %v", name, err)
		}
	}
}

// findField resolves a JSON object name against the descriptor table,
// accepting both the lowerCamelCase and the original snake_case form.
func findField(sprop *proto.StructProperties, name string) (*proto.Properties, *proto.OneofProperties) {
	if p := sprop.ByName(name); p != nil {
		if op, ok := sprop.OneofTypes[p.OrigName]; ok {
			return nil, op
		}
		return p, nil
	}
	for _, p := range sprop.Prop {
		if name == camelName(p) {
			return p, nil
		}
	}
	for _, op := range sprop.OneofTypes {
		if name == camelName(op.Prop) {
			return nil, op
		}
	}
	return nil, nil
}

// isNullableOneofMember reports whether a JSON null is a real value for
// the member, which is the case only for the NullValue enum and the
// google.protobuf.Value message.
func isNullableOneofMember(op *proto.OneofProperties) bool {
	return op.Prop.Enum == "google.protobuf.NullValue" ||
		op.Type.Elem().Field(0).Type == structValueType
}

// unmarshalSingular unmarshals one JSON value into a scalar, string,
// bytes, enum, or message field.
func (o UnmarshalOptions) unmarshalSingular(fv reflect.Value, p *proto.Properties, depth int) error {
	if fv.Kind() == reflect.Ptr {
		// A message field.
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return o.unmarshalMessage(fv.Interface().(proto.Message), depth-1)
	}

	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	return setJSONValue(fv, jval, p)
}

// setJSONValue converts a scalar JSON token to the field's domain and
// stores it.
func setJSONValue(fv reflect.Value, jval json.Value, p *proto.Properties) error {
	const b32, b64 = 32, 64

	switch fv.Kind() {
	case reflect.Bool:
		b, err := jval.Bool()
		if err != nil {
			return err
		}
		fv.SetBool(b)

	case reflect.Int32:
		if p.Enum != "" {
			n, err := unmarshalEnum(jval, p)
			if err != nil {
				return err
			}
			fv.SetInt(int64(n))
			return nil
		}
		n, err := getInt(jval, b32)
		if err != nil {
			return err
		}
		fv.SetInt(n)

	case reflect.Int64:
		n, err := getInt(jval, b64)
		if err != nil {
			return err
		}
		fv.SetInt(n)

	case reflect.Uint32:
		n, err := getUint(jval, b32)
		if err != nil {
			return err
		}
		fv.SetUint(n)

	case reflect.Uint64:
		n, err := getUint(jval, b64)
		if err != nil {
			return err
		}
		fv.SetUint(n)

	case reflect.Float32:
		n, err := getFloat(jval, b32)
		if err != nil {
			return err
		}
		fv.SetFloat(n)

	case reflect.Float64:
		n, err := getFloat(jval, b64)
		if err != nil {
			return err
		}
		fv.SetFloat(n)

	case reflect.String:
		if jval.Type() != json.String {
			return unexpectedJSONError{jval}
		}
		fv.SetString(jval.String())

	case reflect.Slice: // []byte
		if jval.Type() != json.String {
			return unexpectedJSONError{jval}
		}
		b, err := decodeBase64(jval.String())
		if err != nil {
			return newError("invalid base64 value %v", jval)
		}
		fv.SetBytes(b)

	default:
		return errors.New("no JSON decoder for kind %v", fv.Kind())
	}
	return nil
}

// getInt accepts a JSON number or a decimal number in a JSON string.
func getInt(jval json.Value, bitSize int) (int64, error) {
	switch jval.Type() {
	case json.Number:
		return jval.Int(bitSize)
	case json.String:
		s := strings.TrimSpace(jval.String())
		if len(s) != len(jval.String()) {
			return 0, newError("invalid number %v", jval)
		}
		return reparseNumber(s).Int(bitSize)
	}
	return 0, unexpectedJSONError{jval}
}

func getUint(jval json.Value, bitSize int) (uint64, error) {
	switch jval.Type() {
	case json.Number:
		return jval.Uint(bitSize)
	case json.String:
		s := strings.TrimSpace(jval.String())
		if len(s) != len(jval.String()) {
			return 0, newError("invalid number %v", jval)
		}
		return reparseNumber(s).Uint(bitSize)
	}
	return 0, unexpectedJSONError{jval}
}

// getFloat accepts a JSON number, the distinguished strings for the
// non-finite values, or a decimal number in a JSON string.
func getFloat(jval json.Value, bitSize int) (float64, error) {
	switch jval.Type() {
	case json.Number:
		return jval.Float(bitSize)
	case json.String:
		switch s := jval.String(); s {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(+1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		default:
			return reparseNumber(s).Float(bitSize)
		}
	}
	return 0, unexpectedJSONError{jval}
}

// reparseNumber re-tokenizes a number that arrived inside a JSON string.
func reparseNumber(s string) json.Value {
	dec := json.NewDecoder([]byte(s))
	jval, err := dec.Read()
	if err != nil || jval.Type() != json.Number {
		return json.Value{}
	}
	return jval
}

// unmarshalEnum accepts either the symbolic name or the integer form of an
// enum value. Unknown integers are kept, since proto3 enums are open.
func unmarshalEnum(jval json.Value, p *proto.Properties) (int32, error) {
	switch jval.Type() {
	case json.String:
		name := jval.String()
		if values := proto.EnumValueMap(p.Enum); values != nil {
			if n, ok := values[name]; ok {
				return n, nil
			}
		}
		return 0, newError("invalid enum value %v", jval)
	case json.Number:
		n, err := jval.Int(32)
		if err != nil {
			return 0, err
		}
		return int32(n), nil
	case json.Null:
		if p.Enum == "google.protobuf.NullValue" {
			return 0, nil
		}
	}
	return 0, unexpectedJSONError{jval}
}

// decodeBase64 accepts both the standard and the URL-safe alphabet, with
// and without padding.
func decodeBase64(s string) ([]byte, error) {
	if strings.ContainsAny(s, "-_") {
		if strings.HasSuffix(s, "=") {
			return base64.URLEncoding.DecodeString(s)
		}
		return base64.RawURLEncoding.DecodeString(s)
	}
	if strings.HasSuffix(s, "=") || len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func (o UnmarshalOptions) unmarshalList(fv reflect.Value, p *proto.Properties, depth int) error {
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.StartArray {
		return unexpectedJSONError{jval}
	}
	for {
		if o.decoder.Peek() == json.EndArray {
			o.decoder.Read()
			return nil
		}
		ev := reflect.New(fv.Type().Elem()).Elem()
		if err := o.unmarshalSingular(ev, p, depth); err != nil {
			return err
		}
		fv.Set(reflect.Append(fv, ev))
	}
}

func (o UnmarshalOptions) unmarshalMap(fv reflect.Value, p *proto.Properties, depth int) error {
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.StartObject {
		return unexpectedJSONError{jval}
	}
	if fv.IsNil() {
		fv.Set(reflect.MakeMap(fv.Type()))
	}
	for {
		jval, err := o.decoder.Read()
		if err != nil {
			return err
		}
		switch jval.Type() {
		default:
			return unexpectedJSONError{jval}
		case json.EndObject:
			return nil
		case json.Name:
			// Continue below.
		}

		name, err := jval.Name()
		if err != nil {
			return err
		}
		key := reflect.New(fv.Type().Key()).Elem()
		if err := setMapKey(key, name); err != nil {
			return err
		}
		val := reflect.New(fv.Type().Elem()).Elem()
		if err := o.unmarshalSingular(val, p.MapValProp, depth); err != nil {
			return err
		}
		fv.SetMapIndex(key, val)
	}
}

// setMapKey parses a stringified map key back to its declared domain.
func setMapKey(key reflect.Value, name string) error {
	switch key.Kind() {
	case reflect.String:
		key.SetString(name)
	case reflect.Bool:
		b, err := strconv.ParseBool(name)
		if err != nil {
			return newError("invalid map key %q", name)
		}
		key.SetBool(b)
	case reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(name, 10, key.Type().Bits())
		if err != nil {
			return newError("invalid map key %q", name)
		}
		key.SetInt(n)
	case reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(name, 10, key.Type().Bits())
		if err != nil {
			return newError("invalid map key %q", name)
		}
		key.SetUint(n)
	default:
		return errors.New("invalid map key kind %v", key.Kind())
	}
	return nil
}

// skipJSONValue reads over one complete JSON value of any shape.
func skipJSONValue(d *json.Decoder) error {
	depth := 0
	for {
		jval, err := d.Read()
		if err != nil {
			return err
		}
		switch jval.Type() {
		case json.StartObject, json.StartArray:
			depth++
		case json.EndObject, json.EndArray:
			depth--
		case json.EOF:
			return unexpectedJSONError{jval}
		}
		if depth == 0 {
			return nil
		}
	}
}
