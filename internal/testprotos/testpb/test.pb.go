// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testpb contains hand-maintained message definitions in the form
// the code generator emits, used by the codec tests.
package testpb

import (
	"github.com/lightpb/lightpb/proto"
	"github.com/lightpb/lightpb/types/known/durationpb"
	"github.com/lightpb/lightpb/types/known/fieldmaskpb"
	"github.com/lightpb/lightpb/types/known/structpb"
	"github.com/lightpb/lightpb/types/known/timestamppb"
	"github.com/lightpb/lightpb/types/known/wrapperspb"
)

// Color is a test enum.
type Color int32

const (
	Color_COLOR_UNSPECIFIED Color = 0
	Color_COLOR_GREEN       Color = 1
	Color_COLOR_BLUE        Color = 2
)

var Color_name = map[int32]string{
	0: "COLOR_UNSPECIFIED",
	1: "COLOR_GREEN",
	2: "COLOR_BLUE",
}

var Color_value = map[string]int32{
	"COLOR_UNSPECIFIED": 0,
	"COLOR_GREEN":       1,
	"COLOR_BLUE":        2,
}

func (x Color) String() string {
	return proto.EnumName(Color_name, int32(x))
}

// Greeting carries a single string field.
type Greeting struct {
	proto.MessageState

	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *Greeting) Reset()         { *m = Greeting{} }
func (m *Greeting) String() string { return proto.CompactString(m) }
func (*Greeting) ProtoMessage()    {}

// Scalars covers every scalar proto type.
type Scalars struct {
	proto.MessageState

	Int32Val    int32   `protobuf:"varint,1,opt,name=int32_val,json=int32Val,proto3" json:"int32_val,omitempty"`
	Int64Val    int64   `protobuf:"varint,2,opt,name=int64_val,json=int64Val,proto3" json:"int64_val,omitempty"`
	Uint32Val   uint32  `protobuf:"varint,3,opt,name=uint32_val,json=uint32Val,proto3" json:"uint32_val,omitempty"`
	Uint64Val   uint64  `protobuf:"varint,4,opt,name=uint64_val,json=uint64Val,proto3" json:"uint64_val,omitempty"`
	Sint32Val   int32   `protobuf:"zigzag32,5,opt,name=sint32_val,json=sint32Val,proto3" json:"sint32_val,omitempty"`
	Sint64Val   int64   `protobuf:"zigzag64,6,opt,name=sint64_val,json=sint64Val,proto3" json:"sint64_val,omitempty"`
	BoolVal     bool    `protobuf:"varint,7,opt,name=bool_val,json=boolVal,proto3" json:"bool_val,omitempty"`
	Fixed32Val  uint32  `protobuf:"fixed32,8,opt,name=fixed32_val,json=fixed32Val,proto3" json:"fixed32_val,omitempty"`
	Fixed64Val  uint64  `protobuf:"fixed64,9,opt,name=fixed64_val,json=fixed64Val,proto3" json:"fixed64_val,omitempty"`
	Sfixed32Val int32   `protobuf:"fixed32,10,opt,name=sfixed32_val,json=sfixed32Val,proto3" json:"sfixed32_val,omitempty"`
	Sfixed64Val int64   `protobuf:"fixed64,11,opt,name=sfixed64_val,json=sfixed64Val,proto3" json:"sfixed64_val,omitempty"`
	FloatVal    float32 `protobuf:"fixed32,12,opt,name=float_val,json=floatVal,proto3" json:"float_val,omitempty"`
	DoubleVal   float64 `protobuf:"fixed64,13,opt,name=double_val,json=doubleVal,proto3" json:"double_val,omitempty"`
	StringVal   string  `protobuf:"bytes,14,opt,name=string_val,json=stringVal,proto3" json:"string_val,omitempty"`
	BytesVal    []byte  `protobuf:"bytes,15,opt,name=bytes_val,json=bytesVal,proto3" json:"bytes_val,omitempty"`
	ColorVal    Color   `protobuf:"varint,16,opt,name=color_val,json=colorVal,proto3,enum=test.Color" json:"color_val,omitempty"`
}

func (m *Scalars) Reset()         { *m = Scalars{} }
func (m *Scalars) String() string { return proto.CompactString(m) }
func (*Scalars) ProtoMessage()    {}

// Repeats covers repeated scalar fields.
type Repeats struct {
	proto.MessageState

	Values  []uint32  `protobuf:"varint,1,rep,packed,name=values,proto3" json:"values,omitempty"`
	Names   []string  `protobuf:"bytes,2,rep,name=names,proto3" json:"names,omitempty"`
	Sints   []int64   `protobuf:"zigzag64,3,rep,packed,name=sints,proto3" json:"sints,omitempty"`
	Doubles []float64 `protobuf:"fixed64,4,rep,packed,name=doubles,proto3" json:"doubles,omitempty"`
	Blobs   [][]byte  `protobuf:"bytes,5,rep,name=blobs,proto3" json:"blobs,omitempty"`
	Colors  []Color   `protobuf:"varint,6,rep,packed,name=colors,proto3,enum=test.Color" json:"colors,omitempty"`
}

func (m *Repeats) Reset()         { *m = Repeats{} }
func (m *Repeats) String() string { return proto.CompactString(m) }
func (*Repeats) ProtoMessage()    {}

// Nested is a recursive message.
type Nested struct {
	proto.MessageState

	Name  string  `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Child *Nested `protobuf:"bytes,2,opt,name=child,proto3" json:"child,omitempty"`
}

func (m *Nested) Reset()         { *m = Nested{} }
func (m *Nested) String() string { return proto.CompactString(m) }
func (*Nested) ProtoMessage()    {}

func (m *Nested) GetChild() *Nested {
	if m != nil {
		return m.Child
	}
	return nil
}

// TestOneof has a single oneof group named foo.
type TestOneof struct {
	proto.MessageState

	// Types that are assignable to Foo:
	//	*TestOneof_On
	//	*TestOneof_Count
	//	*TestOneof_Msg
	Foo isTestOneof_Foo `protobuf_oneof:"foo"`
}

func (m *TestOneof) Reset()         { *m = TestOneof{} }
func (m *TestOneof) String() string { return proto.CompactString(m) }
func (*TestOneof) ProtoMessage()    {}

type isTestOneof_Foo interface {
	isTestOneof_Foo()
}

type TestOneof_On struct {
	On bool `protobuf:"varint,1,opt,name=on,proto3,oneof"`
}

type TestOneof_Count struct {
	Count int32 `protobuf:"varint,2,opt,name=count,proto3,oneof"`
}

type TestOneof_Msg struct {
	Msg *Nested `protobuf:"bytes,3,opt,name=msg,proto3,oneof"`
}

func (*TestOneof_On) isTestOneof_Foo()    {}
func (*TestOneof_Count) isTestOneof_Foo() {}
func (*TestOneof_Msg) isTestOneof_Foo()   {}

// XXX_OneofWrappers is for the internal use of the proto package.
func (*TestOneof) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*TestOneof_On)(nil),
		(*TestOneof_Count)(nil),
		(*TestOneof_Msg)(nil),
	}
}

func (m *TestOneof) GetFoo() isTestOneof_Foo {
	if m != nil {
		return m.Foo
	}
	return nil
}

func (m *TestOneof) GetOn() bool {
	if x, ok := m.GetFoo().(*TestOneof_On); ok {
		return x.On
	}
	return false
}

func (m *TestOneof) GetCount() int32 {
	if x, ok := m.GetFoo().(*TestOneof_Count); ok {
		return x.Count
	}
	return 0
}

func (m *TestOneof) GetMsg() *Nested {
	if x, ok := m.GetFoo().(*TestOneof_Msg); ok {
		return x.Msg
	}
	return nil
}

// Maps covers the permitted map key types and message values.
type Maps struct {
	proto.MessageState

	Counts map[string]int32  `protobuf:"bytes,1,rep,name=counts,proto3" json:"counts,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
	Labels map[int32]string  `protobuf:"bytes,2,rep,name=labels,proto3" json:"labels,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
	Nodes  map[string]*Nested `protobuf:"bytes,3,rep,name=nodes,proto3" json:"nodes,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
	Flags  map[bool]uint64   `protobuf:"bytes,4,rep,name=flags,proto3" json:"flags,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
}

func (m *Maps) Reset()         { *m = Maps{} }
func (m *Maps) String() string { return proto.CompactString(m) }
func (*Maps) ProtoMessage()    {}

// WellKnowns exercises the well-known type fields.
type WellKnowns struct {
	proto.MessageState

	Maybe    *wrapperspb.BoolValue   `protobuf:"bytes,1,opt,name=maybe,proto3" json:"maybe,omitempty"`
	Ts       *timestamppb.Timestamp  `protobuf:"bytes,2,opt,name=ts,proto3" json:"ts,omitempty"`
	Duration *durationpb.Duration    `protobuf:"bytes,3,opt,name=duration,proto3" json:"duration,omitempty"`
	Meta     *structpb.Struct        `protobuf:"bytes,4,opt,name=meta,proto3" json:"meta,omitempty"`
	Dyn      *structpb.Value         `protobuf:"bytes,5,opt,name=dyn,proto3" json:"dyn,omitempty"`
	Mask     *fieldmaskpb.FieldMask  `protobuf:"bytes,6,opt,name=mask,proto3" json:"mask,omitempty"`
	Label    *wrapperspb.StringValue `protobuf:"bytes,7,opt,name=label,proto3" json:"label,omitempty"`
	Count    *wrapperspb.Int64Value  `protobuf:"bytes,8,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *WellKnowns) Reset()         { *m = WellKnowns{} }
func (m *WellKnowns) String() string { return proto.CompactString(m) }
func (*WellKnowns) ProtoMessage()    {}

// Everything aggregates the other shapes for round-trip tests.
type Everything struct {
	proto.MessageState

	Scalars *Scalars   `protobuf:"bytes,1,opt,name=scalars,proto3" json:"scalars,omitempty"`
	Repeats *Repeats   `protobuf:"bytes,2,opt,name=repeats,proto3" json:"repeats,omitempty"`
	Maps    *Maps      `protobuf:"bytes,3,opt,name=maps,proto3" json:"maps,omitempty"`
	Oneof   *TestOneof `protobuf:"bytes,4,opt,name=oneof,proto3" json:"oneof,omitempty"`
	Nested  []*Nested  `protobuf:"bytes,5,rep,name=nested,proto3" json:"nested,omitempty"`
}

func (m *Everything) Reset()         { *m = Everything{} }
func (m *Everything) String() string { return proto.CompactString(m) }
func (*Everything) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("test.Color", Color_name, Color_value)
	proto.RegisterType((*Greeting)(nil), "test.Greeting")
	proto.RegisterType((*Scalars)(nil), "test.Scalars")
	proto.RegisterType((*Repeats)(nil), "test.Repeats")
	proto.RegisterType((*Nested)(nil), "test.Nested")
	proto.RegisterType((*TestOneof)(nil), "test.TestOneof")
	proto.RegisterType((*Maps)(nil), "test.Maps")
	proto.RegisterType((*WellKnowns)(nil), "test.WellKnowns")
	proto.RegisterType((*Everything)(nil), "test.Everything")
}
