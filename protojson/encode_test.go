// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lightpb/lightpb/internal/testprotos/testpb"
	"github.com/lightpb/lightpb/proto"
	"github.com/lightpb/lightpb/protojson"
	"github.com/lightpb/lightpb/types/known/durationpb"
	"github.com/lightpb/lightpb/types/known/emptypb"
	"github.com/lightpb/lightpb/types/known/fieldmaskpb"
	"github.com/lightpb/lightpb/types/known/structpb"
	"github.com/lightpb/lightpb/types/known/timestamppb"
	"github.com/lightpb/lightpb/types/known/wrapperspb"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		desc string
		mo   protojson.MarshalOptions
		msg  proto.Message
		want string
	}{{
		desc: "string field",
		msg:  &testpb.Greeting{Message: "Hey!"},
		want: `{"message":"Hey!"}`,
	}, {
		desc: "defaults elided",
		msg:  &testpb.Greeting{},
		want: `{}`,
	}, {
		desc: "emit defaults",
		mo:   protojson.MarshalOptions{EmitDefaults: true},
		msg:  &testpb.Greeting{},
		want: `{"message":""}`,
	}, {
		desc: "64-bit integers as strings",
		msg:  &testpb.Scalars{Int64Val: 123, Uint64Val: 18446744073709551615},
		want: `{"int64Val":"123","uint64Val":"18446744073709551615"}`,
	}, {
		desc: "non-finite doubles as strings",
		msg:  &testpb.Scalars{DoubleVal: math.Inf(+1), FloatVal: float32(math.NaN())},
		want: `{"floatVal":"NaN","doubleVal":"Infinity"}`,
	}, {
		desc: "negative infinity",
		msg:  &testpb.Scalars{DoubleVal: math.Inf(-1)},
		want: `{"doubleVal":"-Infinity"}`,
	}, {
		desc: "bytes as padded base64",
		msg:  &testpb.Scalars{BytesVal: []byte{1, 2, 3, 253, 254, 255}},
		want: `{"bytesVal":"AQID/f7/"}`,
	}, {
		desc: "enum by name",
		msg:  &testpb.Scalars{ColorVal: testpb.Color_COLOR_BLUE},
		want: `{"colorVal":"COLOR_BLUE"}`,
	}, {
		desc: "unknown enum integer stays numeric",
		msg:  &testpb.Scalars{ColorVal: 99},
		want: `{"colorVal":99}`,
	}, {
		desc: "repeated field",
		msg:  &testpb.Repeats{Values: []uint32{1, 300, 128}, Names: []string{"a", ""}},
		want: `{"values":[1,300,128],"names":["a",""]}`,
	}, {
		desc: "map with stringified keys, sorted",
		msg:  &testpb.Maps{Labels: map[int32]string{7: "seven", -1: "neg"}},
		want: `{"labels":{"-1":"neg","7":"seven"}}`,
	}, {
		desc: "bool map keys",
		msg:  &testpb.Maps{Flags: map[bool]uint64{true: 1, false: 2}},
		want: `{"flags":{"false":"2","true":"1"}}`,
	}, {
		desc: "oneof member",
		msg:  &testpb.TestOneof{Foo: &testpb.TestOneof_Count{Count: 57}},
		want: `{"count":57}`,
	}, {
		desc: "oneof member at zero is still present",
		msg:  &testpb.TestOneof{Foo: &testpb.TestOneof_On{On: false}},
		want: `{"on":false}`,
	}, {
		desc: "unset oneof stays absent even with defaults",
		mo:   protojson.MarshalOptions{EmitDefaults: true},
		msg:  &testpb.TestOneof{},
		want: `{}`,
	}, {
		desc: "snake casing",
		mo:   protojson.MarshalOptions{Casing: protojson.CasingSnake},
		msg:  &testpb.Scalars{StringVal: "x"},
		want: `{"string_val":"x"}`,
	}, {
		desc: "pascal casing",
		mo:   protojson.MarshalOptions{Casing: protojson.CasingPascal},
		msg:  &testpb.Scalars{StringVal: "x"},
		want: `{"StringVal":"x"}`,
	}, {
		desc: "original casing",
		mo:   protojson.MarshalOptions{Casing: protojson.CasingOriginal},
		msg:  &testpb.Scalars{StringVal: "x"},
		want: `{"string_val":"x"}`,
	}, {
		desc: "well-known types",
		msg: &testpb.WellKnowns{
			Maybe:    wrapperspb.Bool(true),
			Ts:       &timestamppb.Timestamp{Seconds: 1546344000},
			Duration: &durationpb.Duration{Seconds: 1, Nanos: 200000000},
		},
		want: `{"maybe":true,"ts":"2019-01-01T12:00:00Z","duration":"1.200s"}`,
	}, {
		desc: "absent wrapper has no key",
		msg:  &testpb.WellKnowns{Ts: &timestamppb.Timestamp{Seconds: 1546344000}},
		want: `{"ts":"2019-01-01T12:00:00Z"}`,
	}, {
		desc: "absent message fields are null under emit defaults",
		mo:   protojson.MarshalOptions{EmitDefaults: true},
		msg:  &testpb.WellKnowns{},
		want: `{"maybe":null,"ts":null,"duration":null,"meta":null,"dyn":null,"mask":null,"label":null,"count":null}`,
	}, {
		desc: "timestamp fractional digits",
		msg:  &testpb.WellKnowns{Ts: &timestamppb.Timestamp{Seconds: 1546344000, Nanos: 1}},
		want: `{"ts":"2019-01-01T12:00:00.000000001Z"}`,
	}, {
		desc: "timestamp millisecond precision",
		msg:  &testpb.WellKnowns{Ts: &timestamppb.Timestamp{Seconds: 1546344000, Nanos: 500000000}},
		want: `{"ts":"2019-01-01T12:00:00.500Z"}`,
	}, {
		desc: "duration whole seconds",
		msg:  &testpb.WellKnowns{Duration: &durationpb.Duration{Seconds: 3}},
		want: `{"duration":"3s"}`,
	}, {
		desc: "negative sub-second duration",
		msg:  &testpb.WellKnowns{Duration: &durationpb.Duration{Nanos: -500000000}},
		want: `{"duration":"-0.500s"}`,
	}, {
		desc: "field mask paths in camel",
		msg:  &testpb.WellKnowns{Mask: fieldmaskpb.New("foo_bar", "baz")},
		want: `{"mask":"fooBar,baz"}`,
	}, {
		desc: "struct and dynamic value",
		msg: &testpb.WellKnowns{
			Meta: &structpb.Struct{Fields: map[string]*structpb.Value{
				"b": structpb.NewBoolValue(true),
				"n": structpb.NewNumberValue(1),
				"z": structpb.NewNullValue(),
			}},
			Dyn: structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
				structpb.NewStringValue("s"),
				structpb.NewNumberValue(2.5),
			}}),
		},
		want: `{"meta":{"b":true,"n":1,"z":null},"dyn":["s",2.5]}`,
	}, {
		desc: "empty",
		msg:  &emptypb.Empty{},
		want: `{}`,
	}, {
		desc: "top-level wrapper",
		msg:  wrapperspb.Int64(42),
		want: `"42"`,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := tt.mo.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	m := &testpb.Greeting{Message: "hi"}
	got, err := protojson.MarshalOptions{Indent: "  "}.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := "{\n  \"message\": \"hi\"\n}"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Marshal() with indent mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalFieldMaskIrreversible(t *testing.T) {
	m := &testpb.WellKnowns{Mask: fieldmaskpb.New("foo_3_bar")}
	if _, err := protojson.Marshal(m); err == nil {
		t.Error("Marshal() of irreversible field mask path succeeded, want error")
	}
}

func TestMarshalEmptyValue(t *testing.T) {
	m := &testpb.WellKnowns{Dyn: &structpb.Value{}}
	if _, err := protojson.Marshal(m); err == nil {
		t.Error("Marshal() of Value with no variant set succeeded, want error")
	}
}

func TestMap(t *testing.T) {
	m := &testpb.WellKnowns{
		Maybe:    wrapperspb.Bool(true),
		Duration: &durationpb.Duration{Seconds: 1, Nanos: 200000000},
	}
	got, err := protojson.Map(m)
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}
	if got["maybe"] != true {
		t.Errorf(`got["maybe"] = %v, want true`, got["maybe"])
	}
	if got["duration"] != "1.200s" {
		t.Errorf(`got["duration"] = %v, want "1.200s"`, got["duration"])
	}

	back := new(testpb.WellKnowns)
	if err := protojson.FromMap(got, back); err != nil {
		t.Fatalf("FromMap() error: %v", err)
	}
	if !proto.Equal(m, back) {
		t.Errorf("Map/FromMap round-trip mismatch: got %v, want %v", back, m)
	}
}
