// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lightpb/lightpb/internal/encoding/json"
	"github.com/lightpb/lightpb/internal/errors"
	"github.com/lightpb/lightpb/proto"
	"github.com/lightpb/lightpb/types/known/durationpb"
	"github.com/lightpb/lightpb/types/known/emptypb"
	"github.com/lightpb/lightpb/types/known/fieldmaskpb"
	"github.com/lightpb/lightpb/types/known/structpb"
	"github.com/lightpb/lightpb/types/known/timestamppb"
	"github.com/lightpb/lightpb/types/known/wrapperspb"
)

// structValueType identifies fields of type google.protobuf.Value, the
// one message type for which a JSON null is a real value.
var structValueType = reflect.TypeOf((*structpb.Value)(nil))

// marshalWellKnownType writes the distinguished JSON shape of the
// well-known types and reports whether m was one of them.
func (o MarshalOptions) marshalWellKnownType(m proto.Message) (bool, error) {
	switch v := m.(type) {
	case *timestamppb.Timestamp:
		return true, o.marshalTimestamp(v)
	case *durationpb.Duration:
		return true, o.marshalDuration(v)
	case *wrapperspb.DoubleValue:
		o.encoder.WriteFloat(v.Value, 64)
		return true, nil
	case *wrapperspb.FloatValue:
		o.encoder.WriteFloat(float64(v.Value), 32)
		return true, nil
	case *wrapperspb.Int64Value:
		return true, o.encoder.WriteString(strconv.FormatInt(v.Value, 10))
	case *wrapperspb.UInt64Value:
		return true, o.encoder.WriteString(strconv.FormatUint(v.Value, 10))
	case *wrapperspb.Int32Value:
		o.encoder.WriteInt(int64(v.Value))
		return true, nil
	case *wrapperspb.UInt32Value:
		o.encoder.WriteUint(uint64(v.Value))
		return true, nil
	case *wrapperspb.BoolValue:
		o.encoder.WriteBool(v.Value)
		return true, nil
	case *wrapperspb.StringValue:
		return true, o.encoder.WriteString(v.Value)
	case *wrapperspb.BytesValue:
		return true, o.encoder.WriteString(base64.StdEncoding.EncodeToString(v.Value))
	case *structpb.Struct:
		return true, o.marshalStruct(v)
	case *structpb.ListValue:
		return true, o.marshalListValue(v)
	case *structpb.Value:
		return true, o.marshalKnownValue(v)
	case *fieldmaskpb.FieldMask:
		return true, o.marshalFieldMask(v)
	case *emptypb.Empty:
		o.encoder.StartObject()
		o.encoder.EndObject()
		return true, nil
	}
	return false, nil
}

// unmarshalWellKnownType parses the distinguished JSON shape of the
// well-known types and reports whether m was one of them.
func (o UnmarshalOptions) unmarshalWellKnownType(m proto.Message, depth int) (bool, error) {
	switch v := m.(type) {
	case *timestamppb.Timestamp:
		return true, o.unmarshalTimestamp(v)
	case *durationpb.Duration:
		return true, o.unmarshalDuration(v)
	case *wrapperspb.DoubleValue:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		v.Value, err = getFloat(jval, 64)
		return true, err
	case *wrapperspb.FloatValue:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		f, err := getFloat(jval, 32)
		v.Value = float32(f)
		return true, err
	case *wrapperspb.Int64Value:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		v.Value, err = getInt(jval, 64)
		return true, err
	case *wrapperspb.UInt64Value:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		v.Value, err = getUint(jval, 64)
		return true, err
	case *wrapperspb.Int32Value:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		n, err := getInt(jval, 32)
		v.Value = int32(n)
		return true, err
	case *wrapperspb.UInt32Value:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		n, err := getUint(jval, 32)
		v.Value = uint32(n)
		return true, err
	case *wrapperspb.BoolValue:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		v.Value, err = jval.Bool()
		return true, err
	case *wrapperspb.StringValue:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		if jval.Type() != json.String {
			return true, unexpectedJSONError{jval}
		}
		v.Value = jval.String()
		return true, nil
	case *wrapperspb.BytesValue:
		jval, err := o.decoder.Read()
		if err != nil {
			return true, err
		}
		if jval.Type() != json.String {
			return true, unexpectedJSONError{jval}
		}
		v.Value, err = decodeBase64(jval.String())
		return true, err
	case *structpb.Struct:
		return true, o.unmarshalStruct(v, depth)
	case *structpb.ListValue:
		return true, o.unmarshalListValue(v, depth)
	case *structpb.Value:
		return true, o.unmarshalKnownValue(v, depth)
	case *fieldmaskpb.FieldMask:
		return true, o.unmarshalFieldMask(v)
	case *emptypb.Empty:
		return true, o.unmarshalEmpty()
	}
	return false, nil
}

// The JSON representation for Struct is a JSON object that contains the
// encoded Struct.fields map and follows the serialization rules for a map.

func (o MarshalOptions) marshalStruct(m *structpb.Struct) error {
	o.encoder.StartObject()
	defer o.encoder.EndObject()

	keys := make([]string, 0, len(m.GetFields()))
	for k := range m.GetFields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := o.encoder.WriteName(k); err != nil {
			return err
		}
		if err := o.marshalKnownValue(m.Fields[k]); err != nil {
			return err
		}
	}
	return nil
}

func (o UnmarshalOptions) unmarshalStruct(m *structpb.Struct, depth int) error {
	if depth <= 0 {
		return proto.ErrRecursionLimit
	}
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.StartObject {
		return unexpectedJSONError{jval}
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
		val := new(structpb.Value)
		if err := o.unmarshalKnownValue(val, depth-1); err != nil {
			return err
		}
		if m.Fields == nil {
			m.Fields = make(map[string]*structpb.Value)
		}
		m.Fields[name] = val
	}
}

// The JSON representation for ListValue is a JSON array that contains the
// encoded ListValue.values repeated field.

func (o MarshalOptions) marshalListValue(m *structpb.ListValue) error {
	o.encoder.StartArray()
	defer o.encoder.EndArray()
	for _, v := range m.GetValues() {
		if err := o.marshalKnownValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (o UnmarshalOptions) unmarshalListValue(m *structpb.ListValue, depth int) error {
	if depth <= 0 {
		return proto.ErrRecursionLimit
	}
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
		val := new(structpb.Value)
		if err := o.unmarshalKnownValue(val, depth-1); err != nil {
			return err
		}
		m.Values = append(m.Values, val)
	}
}

// The JSON representation for a Value is dependent on the oneof member
// that is set.

func (o MarshalOptions) marshalKnownValue(m *structpb.Value) error {
	switch v := m.GetKind().(type) {
	case *structpb.Value_NullValue:
		o.encoder.WriteNull()
		return nil
	case *structpb.Value_NumberValue:
		o.encoder.WriteFloat(v.NumberValue, 64)
		return nil
	case *structpb.Value_StringValue:
		return o.encoder.WriteString(v.StringValue)
	case *structpb.Value_BoolValue:
		o.encoder.WriteBool(v.BoolValue)
		return nil
	case *structpb.Value_StructValue:
		return o.marshalStruct(v.StructValue)
	case *structpb.Value_ListValue:
		return o.marshalListValue(v.ListValue)
	case nil:
		return errors.New("google.protobuf.Value: none of the variants is set")
	}
	return errors.New("google.protobuf.Value: unknown variant %T", m.GetKind())
}

func (o UnmarshalOptions) unmarshalKnownValue(m *structpb.Value, depth int) error {
	if depth <= 0 {
		return proto.ErrRecursionLimit
	}
	switch o.decoder.Peek() {
	case json.Null:
		o.decoder.Read()
		m.Kind = &structpb.Value_NullValue{NullValue: structpb.NullValue_NULL_VALUE}

	case json.Bool:
		jval, err := o.decoder.Read()
		if err != nil {
			return err
		}
		b, err := jval.Bool()
		if err != nil {
			return err
		}
		m.Kind = &structpb.Value_BoolValue{BoolValue: b}

	case json.Number:
		jval, err := o.decoder.Read()
		if err != nil {
			return err
		}
		f, err := jval.Float(64)
		if err != nil {
			return err
		}
		m.Kind = &structpb.Value_NumberValue{NumberValue: f}

	case json.String:
		// A JSON string is always assigned to the string_value member,
		// even if it could have been encoded from number_value ("NaN" and
		// friends); that ambiguity is inherent to the encoding.
		jval, err := o.decoder.Read()
		if err != nil {
			return err
		}
		m.Kind = &structpb.Value_StringValue{StringValue: jval.String()}

	case json.StartObject:
		sub := new(structpb.Struct)
		if err := o.unmarshalStruct(sub, depth); err != nil {
			return err
		}
		m.Kind = &structpb.Value_StructValue{StructValue: sub}

	case json.StartArray:
		sub := new(structpb.ListValue)
		if err := o.unmarshalListValue(sub, depth); err != nil {
			return err
		}
		m.Kind = &structpb.Value_ListValue{ListValue: sub}

	default:
		jval, err := o.decoder.Read()
		if err != nil {
			return err
		}
		return unexpectedJSONError{jval}
	}
	return nil
}

// The JSON representation for a Duration is a decimal number of seconds
// with the suffix "s". Generated output always contains 0, 3, 6, or 9
// fractional digits, depending on required precision.
//
// Duration.seconds must be from -315,576,000,000 to +315,576,000,000
// inclusive, and the sign of a non-zero nanos must match the sign of
// seconds.

const (
	secondsInNanos       = 999999999
	maxSecondsInDuration = 315576000000
)

func (o MarshalOptions) marshalDuration(m *durationpb.Duration) error {
	secs := m.Seconds
	nanos := int64(m.Nanos)
	if secs < -maxSecondsInDuration || secs > maxSecondsInDuration {
		return errors.New("google.protobuf.Duration: seconds out of range")
	}
	if nanos < -secondsInNanos || nanos > secondsInNanos {
		return errors.New("google.protobuf.Duration: nanos out of range")
	}
	if (secs > 0 && nanos < 0) || (secs < 0 && nanos > 0) {
		return errors.New("google.protobuf.Duration: signs of seconds and nanos do not match")
	}
	f := "%d.%09d"
	if nanos < 0 {
		nanos = -nanos
		if secs == 0 {
			f = "-%d.%09d"
		}
	}
	x := fmt.Sprintf(f, secs, nanos)
	x = strings.TrimSuffix(x, "000")
	x = strings.TrimSuffix(x, "000")
	x = strings.TrimSuffix(x, ".000")
	return o.encoder.WriteString(x + "s")
}

func (o UnmarshalOptions) unmarshalDuration(m *durationpb.Duration) error {
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.String {
		return unexpectedJSONError{jval}
	}

	input := jval.String()
	secs, nanos, ok := parseDuration(input)
	if !ok {
		return errors.New("google.protobuf.Duration: invalid value %q", input)
	}
	// Validate seconds. Nanos were covered by parseDuration already.
	if secs < -maxSecondsInDuration || secs > maxSecondsInDuration {
		return errors.New("google.protobuf.Duration: out of range %q", input)
	}
	m.Seconds = secs
	m.Nanos = nanos
	return nil
}

// Regular expression for Duration type in JSON format. This allows for
// values like 1s, 0.1s, 1.s, .1s. It limits the fractional part to 9
// digits for nanosecond precision.
var durationRE = regexp.MustCompile(`^-?([0-9]|[1-9][0-9]+)?(\.[0-9]{0,9})?s$`)

func parseDuration(input string) (int64, int32, bool) {
	b := []byte(input)
	matched := durationRE.FindSubmatch(b)
	if len(matched) != 3 {
		return 0, 0, false
	}

	neg := len(b) > 0 && b[0] == '-'
	secb := matched[1]
	if len(secb) == 0 {
		secb = []byte{'0'}
	}
	nanob := []byte{'0'}
	if len(matched[2]) > 1 {
		nanob = matched[2][1:]
		// Right-pad with 0s for nanosecond precision.
		for i := len(nanob); i < 9; i++ {
			nanob = append(nanob, '0')
		}
		nanob = bytes.TrimLeft(nanob, "0")
		if len(nanob) == 0 {
			nanob = []byte{'0'}
		}
	}

	secs, err := strconv.ParseInt(string(secb), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	nanos, err := strconv.ParseInt(string(nanob), 10, 32)
	if err != nil {
		return 0, 0, false
	}

	if neg {
		secs = -secs
		nanos = -nanos
	}
	return secs, int32(nanos), true
}

// The JSON representation for a Timestamp is an RFC 3339 string, always
// Z-normalized on output with 0, 3, 6, or 9 fractional digits. Parsing
// accepts any UTC offset and normalizes to UTC.
//
// Timestamp.seconds must be within [0001-01-01T00:00:00Z,
// 9999-12-31T23:59:59Z] and Timestamp.nanos within [0, 1e9).

const (
	maxTimestampSeconds = 253402300799
	minTimestampSeconds = -62135596800
)

func (o MarshalOptions) marshalTimestamp(m *timestamppb.Timestamp) error {
	secs := m.Seconds
	nanos := int64(m.Nanos)
	if secs < minTimestampSeconds || secs > maxTimestampSeconds {
		return errors.New("google.protobuf.Timestamp: seconds out of range %d", secs)
	}
	if nanos < 0 || nanos > secondsInNanos {
		return errors.New("google.protobuf.Timestamp: nanos out of range %d", nanos)
	}
	t := time.Unix(secs, nanos).UTC()
	x := t.Format("2006-01-02T15:04:05.000000000")
	x = strings.TrimSuffix(x, "000")
	x = strings.TrimSuffix(x, "000")
	x = strings.TrimSuffix(x, ".000")
	return o.encoder.WriteString(x + "Z")
}

func (o UnmarshalOptions) unmarshalTimestamp(m *timestamppb.Timestamp) error {
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.String {
		return unexpectedJSONError{jval}
	}

	input := jval.String()
	t, err := time.Parse(time.RFC3339Nano, input)
	if err != nil {
		return errors.New("google.protobuf.Timestamp: invalid value %q", input)
	}
	// Validate seconds. Nanos were covered by time.Parse already.
	secs := t.Unix()
	if secs < minTimestampSeconds || secs > maxTimestampSeconds {
		return errors.New("google.protobuf.Timestamp: out of range %q", input)
	}
	m.Seconds = secs
	m.Nanos = int32(t.Nanosecond())
	return nil
}

// The JSON representation for a FieldMask is a single string where paths
// are separated by a comma. Field names in each path are converted to and
// from lower-camel naming conventions. Encoding fails if a path name would
// come back differently after a round-trip.

func (o MarshalOptions) marshalFieldMask(m *fieldmaskpb.FieldMask) error {
	paths := make([]string, 0, len(m.GetPaths()))
	for _, s := range m.GetPaths() {
		cc := pathCamelCase(s)
		if s != pathSnakeCase(cc) {
			return errors.New("google.protobuf.FieldMask: paths contains irreversible value %q", s)
		}
		paths = append(paths, cc)
	}
	return o.encoder.WriteString(strings.Join(paths, ","))
}

func (o UnmarshalOptions) unmarshalFieldMask(m *fieldmaskpb.FieldMask) error {
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.String {
		return unexpectedJSONError{jval}
	}
	str := strings.TrimSpace(jval.String())
	if str == "" {
		return nil
	}
	for _, s := range strings.Split(str, ",") {
		// Convert to snake_case. Unlike encoding, no validation is done
		// because it is not possible to know the original path names.
		m.Paths = append(m.Paths, pathSnakeCase(strings.TrimSpace(s)))
	}
	return nil
}

func (o UnmarshalOptions) unmarshalEmpty() error {
	jval, err := o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.StartObject {
		return unexpectedJSONError{jval}
	}
	jval, err = o.decoder.Read()
	if err != nil {
		return err
	}
	if jval.Type() != json.EndObject {
		return unexpectedJSONError{jval}
	}
	return nil
}

// pathCamelCase converts given string into camelCase where ASCII character
// after _ is turned into uppercase and _'s are removed.
func pathCamelCase(s string) string {
	var b []byte
	var afterUnderscore bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		if afterUnderscore {
			if isASCIILower(c) {
				c -= 'a' - 'A'
			}
		}
		if c == '_' {
			afterUnderscore = true
			continue
		}
		afterUnderscore = false
		b = append(b, c)
	}
	return string(b)
}

// pathSnakeCase converts given string into snake_case where ASCII
// uppercase character is turned into _ + lowercase.
func pathSnakeCase(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIIUpper(c) {
			c += 'a' - 'A'
			b = append(b, '_', c)
		} else {
			b = append(b, c)
		}
	}
	return string(b)
}

func isASCIILower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isASCIIUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}
