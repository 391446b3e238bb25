// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wrapperspb contains the wrapper message types for the proto3
// scalar value types. Wrapping a scalar in a message distinguishes the
// absence of a value from its presence at the default.
package wrapperspb

import "github.com/lightpb/lightpb/proto"

// DoubleValue wraps a double.
type DoubleValue struct {
	proto.MessageState

	Value float64 `protobuf:"fixed64,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *DoubleValue) Reset()         { *m = DoubleValue{} }
func (m *DoubleValue) String() string { return proto.CompactString(m) }
func (*DoubleValue) ProtoMessage()    {}

// Double stores v in a new DoubleValue and returns a pointer to it.
func Double(v float64) *DoubleValue { return &DoubleValue{Value: v} }

// FloatValue wraps a float.
type FloatValue struct {
	proto.MessageState

	Value float32 `protobuf:"fixed32,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *FloatValue) Reset()         { *m = FloatValue{} }
func (m *FloatValue) String() string { return proto.CompactString(m) }
func (*FloatValue) ProtoMessage()    {}

// Float stores v in a new FloatValue and returns a pointer to it.
func Float(v float32) *FloatValue { return &FloatValue{Value: v} }

// Int64Value wraps an int64.
type Int64Value struct {
	proto.MessageState

	Value int64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Int64Value) Reset()         { *m = Int64Value{} }
func (m *Int64Value) String() string { return proto.CompactString(m) }
func (*Int64Value) ProtoMessage()    {}

// Int64 stores v in a new Int64Value and returns a pointer to it.
func Int64(v int64) *Int64Value { return &Int64Value{Value: v} }

// UInt64Value wraps a uint64.
type UInt64Value struct {
	proto.MessageState

	Value uint64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *UInt64Value) Reset()         { *m = UInt64Value{} }
func (m *UInt64Value) String() string { return proto.CompactString(m) }
func (*UInt64Value) ProtoMessage()    {}

// UInt64 stores v in a new UInt64Value and returns a pointer to it.
func UInt64(v uint64) *UInt64Value { return &UInt64Value{Value: v} }

// Int32Value wraps an int32.
type Int32Value struct {
	proto.MessageState

	Value int32 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Int32Value) Reset()         { *m = Int32Value{} }
func (m *Int32Value) String() string { return proto.CompactString(m) }
func (*Int32Value) ProtoMessage()    {}

// Int32 stores v in a new Int32Value and returns a pointer to it.
func Int32(v int32) *Int32Value { return &Int32Value{Value: v} }

// UInt32Value wraps a uint32.
type UInt32Value struct {
	proto.MessageState

	Value uint32 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *UInt32Value) Reset()         { *m = UInt32Value{} }
func (m *UInt32Value) String() string { return proto.CompactString(m) }
func (*UInt32Value) ProtoMessage()    {}

// UInt32 stores v in a new UInt32Value and returns a pointer to it.
func UInt32(v uint32) *UInt32Value { return &UInt32Value{Value: v} }

// BoolValue wraps a bool.
type BoolValue struct {
	proto.MessageState

	Value bool `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *BoolValue) Reset()         { *m = BoolValue{} }
func (m *BoolValue) String() string { return proto.CompactString(m) }
func (*BoolValue) ProtoMessage()    {}

// Bool stores v in a new BoolValue and returns a pointer to it.
func Bool(v bool) *BoolValue { return &BoolValue{Value: v} }

// StringValue wraps a string.
type StringValue struct {
	proto.MessageState

	Value string `protobuf:"bytes,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *StringValue) Reset()         { *m = StringValue{} }
func (m *StringValue) String() string { return proto.CompactString(m) }
func (*StringValue) ProtoMessage()    {}

// String stores v in a new StringValue and returns a pointer to it.
func String(v string) *StringValue { return &StringValue{Value: v} }

// BytesValue wraps a bytes value.
type BytesValue struct {
	proto.MessageState

	Value []byte `protobuf:"bytes,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *BytesValue) Reset()         { *m = BytesValue{} }
func (m *BytesValue) String() string { return proto.CompactString(m) }
func (*BytesValue) ProtoMessage()    {}

// Bytes stores v in a new BytesValue and returns a pointer to it.
func Bytes(v []byte) *BytesValue { return &BytesValue{Value: v} }

func init() {
	proto.RegisterType((*DoubleValue)(nil), "google.protobuf.DoubleValue")
	proto.RegisterType((*FloatValue)(nil), "google.protobuf.FloatValue")
	proto.RegisterType((*Int64Value)(nil), "google.protobuf.Int64Value")
	proto.RegisterType((*UInt64Value)(nil), "google.protobuf.UInt64Value")
	proto.RegisterType((*Int32Value)(nil), "google.protobuf.Int32Value")
	proto.RegisterType((*UInt32Value)(nil), "google.protobuf.UInt32Value")
	proto.RegisterType((*BoolValue)(nil), "google.protobuf.BoolValue")
	proto.RegisterType((*StringValue)(nil), "google.protobuf.StringValue")
	proto.RegisterType((*BytesValue)(nil), "google.protobuf.BytesValue")
}
