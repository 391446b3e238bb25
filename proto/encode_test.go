// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lightpb/lightpb/internal/testprotos/testpb"
	"github.com/lightpb/lightpb/proto"
)

func dehex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Map(func(r rune) rune {
		if r == ' ' {
			return -1
		}
		return r
	}, s))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestMarshalGolden(t *testing.T) {
	tests := []struct {
		desc string
		msg  proto.Message
		want string
	}{{
		desc: "string field",
		msg:  &testpb.Greeting{Message: "Hey!"},
		want: "0a 04 48 65 79 21",
	}, {
		desc: "fresh message is empty",
		msg:  &testpb.Greeting{},
		want: "",
	}, {
		desc: "all defaults elided",
		msg:  &testpb.Scalars{},
		want: "",
	}, {
		desc: "oneof bool member",
		msg:  &testpb.TestOneof{Foo: &testpb.TestOneof_On{On: true}},
		want: "08 01",
	}, {
		desc: "oneof int member",
		msg:  &testpb.TestOneof{Foo: &testpb.TestOneof_Count{Count: 57}},
		want: "10 39",
	}, {
		desc: "oneof member at zero is still emitted",
		msg:  &testpb.TestOneof{Foo: &testpb.TestOneof_On{On: false}},
		want: "08 00",
	}, {
		desc: "packed repeated uint32",
		msg:  &testpb.Repeats{Values: []uint32{1, 300, 128}},
		want: "0a 04 01 ac 02 80 01",
	}, {
		desc: "empty repeated emits nothing",
		msg:  &testpb.Repeats{Values: []uint32{}},
		want: "",
	}, {
		desc: "single map entry",
		msg:  &testpb.Maps{Counts: map[string]int32{"a": 1}},
		want: "0a 05 0a 01 61 10 01",
	}, {
		desc: "zigzag scalar",
		msg:  &testpb.Scalars{Sint32Val: -1},
		want: "28 01",
	}, {
		desc: "negative int32 is ten bytes",
		msg:  &testpb.Scalars{Int32Val: -1},
		want: "08 ff ff ff ff ff ff ff ff ff 01",
	}, {
		desc: "nested message",
		msg:  &testpb.Nested{Name: "a", Child: &testpb.Nested{Name: "b"}},
		want: "0a 01 61 12 03 0a 01 62",
	}, {
		desc: "present empty sub-message emits header",
		msg:  &testpb.Nested{Child: &testpb.Nested{}},
		want: "12 00",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := proto.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if diff := cmp.Diff(dehex(t, tt.want), got, cmp.Transformer("hex", hex.EncodeToString)); diff != "" {
				t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalMapIsOrderIndependent(t *testing.T) {
	m := &testpb.Maps{Counts: map[string]int32{"a": 1, "b": 2}}
	b, err := proto.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	// Iteration order is unspecified, so canonicalize by parsing back.
	got := new(testpb.Maps)
	if err := proto.Unmarshal(b, got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !proto.Equal(m, got) {
		t.Errorf("map did not round-trip: got %v, want %v", got, m)
	}
	if len(b) != 2*7 {
		t.Errorf("len(Marshal()) = %d, want %d", len(b), 2*7)
	}
}

func TestMarshalInvalidUTF8(t *testing.T) {
	m := &testpb.Greeting{Message: string([]byte{0xff, 0xfe})}
	if _, err := proto.Marshal(m); err == nil {
		t.Error("Marshal() with invalid UTF-8 succeeded, want error")
	}
}

func TestMarshalNil(t *testing.T) {
	if _, err := proto.Marshal(nil); err != proto.ErrNil {
		t.Errorf("Marshal(nil) error = %v, want %v", err, proto.ErrNil)
	}
	if _, err := proto.Marshal((*testpb.Greeting)(nil)); err != proto.ErrNil {
		t.Errorf("Marshal(typed nil) error = %v, want %v", err, proto.ErrNil)
	}
}

func TestSize(t *testing.T) {
	m := &testpb.Greeting{Message: "Hey!"}
	if got, want := proto.Size(m), 6; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}
