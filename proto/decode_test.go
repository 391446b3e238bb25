// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lightpb/lightpb/internal/encoding/wire"
	"github.com/lightpb/lightpb/internal/testprotos/testpb"
	"github.com/lightpb/lightpb/proto"
)

var ignoreState = cmpopts.IgnoreUnexported(proto.MessageState{})

func TestUnmarshalGolden(t *testing.T) {
	tests := []struct {
		desc string
		in   string
		want proto.Message
	}{{
		desc: "string field",
		in:   "0a 04 48 65 79 21",
		want: &testpb.Greeting{Message: "Hey!"},
	}, {
		desc: "empty input yields defaults",
		in:   "",
		want: &testpb.Greeting{},
	}, {
		desc: "oneof bool member",
		in:   "08 01",
		want: &testpb.TestOneof{Foo: &testpb.TestOneof_On{On: true}},
	}, {
		desc: "last oneof member on the wire wins",
		in:   "08 01 10 39",
		want: &testpb.TestOneof{Foo: &testpb.TestOneof_Count{Count: 57}},
	}, {
		desc: "packed repeated uint32",
		in:   "0a 04 01 ac 02 80 01",
		want: &testpb.Repeats{Values: []uint32{1, 300, 128}},
	}, {
		desc: "unpacked repeated uint32",
		in:   "08 01 08 ac 02 08 80 01",
		want: &testpb.Repeats{Values: []uint32{1, 300, 128}},
	}, {
		desc: "interleaved packed and unpacked",
		in:   "08 01 0a 02 ac 02 08 80 01",
		want: &testpb.Repeats{Values: []uint32{1, 300, 128}},
	}, {
		desc: "last singular scalar wins",
		in:   "0a 01 61 0a 01 62",
		want: &testpb.Greeting{Message: "b"},
	}, {
		desc: "map entries in either order",
		in:   "0a 05 0a 01 62 10 02 0a 05 0a 01 61 10 01",
		want: &testpb.Maps{Counts: map[string]int32{"a": 1, "b": 2}},
	}, {
		desc: "duplicate map key overwrites",
		in:   "0a 05 0a 01 61 10 01 0a 05 0a 01 61 10 03",
		want: &testpb.Maps{Counts: map[string]int32{"a": 3}},
	}, {
		desc: "map entry with missing value defaults to zero",
		in:   "0a 03 0a 01 61",
		want: &testpb.Maps{Counts: map[string]int32{"a": 0}},
	}, {
		desc: "zigzag decode",
		in:   "28 01",
		want: &testpb.Scalars{Sint32Val: -1},
	}, {
		desc: "unknown enum integer is preserved",
		in:   "80 01 63",
		want: &testpb.Scalars{ColorVal: 99},
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := reflect.New(reflect.TypeOf(tt.want).Elem()).Interface().(proto.Message)
			if err := proto.Unmarshal(dehex(t, tt.in), got); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreState); diff != "" {
				t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalMergesSubMessages(t *testing.T) {
	m1 := &testpb.Everything{Scalars: &testpb.Scalars{Int32Val: 1}}
	m2 := &testpb.Everything{Scalars: &testpb.Scalars{StringVal: "x"}}
	b1, _ := proto.Marshal(m1)
	b2, _ := proto.Marshal(m2)

	got := new(testpb.Everything)
	if err := proto.Unmarshal(append(b1, b2...), got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	want := &testpb.Everything{Scalars: &testpb.Scalars{Int32Val: 1, StringVal: "x"}}
	if !proto.Equal(want, got) {
		t.Errorf("merge mismatch: got %v, want %v", got, want)
	}
}

func TestUnmarshalUnknownFields(t *testing.T) {
	// Unknown varint field 99 followed by known field 1.
	in := dehex(t, "98 06 2a 0a 01 78")
	got := new(testpb.Greeting)
	if err := proto.Unmarshal(in, got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.Message != "x" {
		t.Errorf("Message = %q, want %q", got.Message, "x")
	}
	if diff := cmp.Diff(dehex(t, "98 06 2a"), proto.UnknownFields(got)); diff != "" {
		t.Errorf("unknown fields mismatch (-want +got):\n%s", diff)
	}

	// Known fields are re-emitted first, the unknown bytes verbatim after.
	out, err := proto.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if diff := cmp.Diff(dehex(t, "0a 01 78 98 06 2a"), out); diff != "" {
		t.Errorf("re-encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		desc string
		msg  proto.Message
		in   string
		want error
	}{{
		desc: "truncated varint",
		msg:  &testpb.Scalars{},
		in:   "08 80",
		want: wire.ErrTruncated,
	}, {
		desc: "truncated length-delimited payload",
		msg:  &testpb.Greeting{},
		in:   "0a 05 61",
		want: wire.ErrTruncated,
	}, {
		desc: "start group wire type",
		msg:  &testpb.Greeting{},
		in:   "0b",
		want: wire.ErrWireType,
	}, {
		desc: "end group wire type",
		msg:  &testpb.Greeting{},
		in:   "0c",
		want: wire.ErrWireType,
	}, {
		desc: "wire type inconsistent with declared type",
		msg:  &testpb.Greeting{},
		in:   "08 01",
		want: wire.ErrWireType,
	}, {
		desc: "varint longer than ten bytes",
		msg:  &testpb.Scalars{},
		in:   "08 ff ff ff ff ff ff ff ff ff ff 01",
		want: wire.ErrOverflow,
	}, {
		desc: "field number zero",
		msg:  &testpb.Greeting{},
		in:   "00 01",
		want: wire.ErrFieldNumber,
	}, {
		desc: "invalid UTF-8 in string field",
		msg:  &testpb.Greeting{},
		in:   "0a 02 ff fe",
		want: proto.ErrInvalidUTF8,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := proto.Unmarshal(dehex(t, tt.in), tt.msg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnmarshalRecursionLimit(t *testing.T) {
	deep := &testpb.Nested{}
	for i := 0; i < 101; i++ {
		deep = &testpb.Nested{Child: deep}
	}
	b, err := proto.Marshal(deep)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if err := proto.Unmarshal(b, new(testpb.Nested)); !errors.Is(err, proto.ErrRecursionLimit) {
		t.Errorf("Unmarshal() error = %v, want %v", err, proto.ErrRecursionLimit)
	}
	// A raised limit parses the same bytes fine.
	o := proto.UnmarshalOptions{RecursionLimit: 200}
	if err := o.Unmarshal(b, new(testpb.Nested)); err != nil {
		t.Errorf("Unmarshal() with raised limit error: %v", err)
	}
}

func TestUnmarshalResets(t *testing.T) {
	m := &testpb.Greeting{Message: "old"}
	if err := proto.Unmarshal(nil, m); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if m.Message != "" {
		t.Errorf("Message = %q after Unmarshal of empty input, want empty", m.Message)
	}

	m = &testpb.Greeting{Message: "old"}
	if err := proto.UnmarshalMerge(dehex(t, ""), m); err != nil {
		t.Fatalf("UnmarshalMerge() error: %v", err)
	}
	if m.Message != "old" {
		t.Errorf("Message = %q after UnmarshalMerge, want %q", m.Message, "old")
	}
}
