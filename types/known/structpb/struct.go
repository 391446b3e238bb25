// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package structpb contains the google.protobuf.Struct family: a dynamic
// representation of arbitrary JSON-shaped data as messages. Struct mirrors
// a JSON object, ListValue a JSON array, and Value any JSON value through
// a oneof over the six possible kinds.
package structpb

import (
	"github.com/lightpb/lightpb/internal/errors"
	"github.com/lightpb/lightpb/proto"
)

// NullValue is a singleton enumeration to represent the null value for the
// Value type union.
type NullValue int32

const (
	// NullValue_NULL_VALUE is the only null value.
	NullValue_NULL_VALUE NullValue = 0
)

var NullValue_name = map[int32]string{
	0: "NULL_VALUE",
}

var NullValue_value = map[string]int32{
	"NULL_VALUE": 0,
}

func (x NullValue) String() string {
	return proto.EnumName(NullValue_name, int32(x))
}

// Struct represents a structured data value, consisting of fields which
// map to dynamically typed values. It mirrors a JSON object.
type Struct struct {
	proto.MessageState

	// Unordered map of dynamically typed values.
	Fields map[string]*Value `protobuf:"bytes,1,rep,name=fields,proto3" json:"fields,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *Struct) Reset()         { *m = Struct{} }
func (m *Struct) String() string { return proto.CompactString(m) }
func (*Struct) ProtoMessage()    {}

// NewStruct constructs a Struct from a general-purpose Go map.
// The map keys must be valid UTF-8; the map values are converted per
// NewValue.
func NewStruct(v map[string]interface{}) (*Struct, error) {
	x := &Struct{Fields: make(map[string]*Value, len(v))}
	for k, e := range v {
		var err error
		if x.Fields[k], err = NewValue(e); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// AsMap converts x to a general-purpose Go map. The map values are
// converted per the AsInterface method of Value.
func (m *Struct) AsMap() map[string]interface{} {
	f := m.GetFields()
	vs := make(map[string]interface{}, len(f))
	for k, v := range f {
		vs[k] = v.AsInterface()
	}
	return vs
}

// GetFields returns the field map, or nil for a nil receiver.
func (m *Struct) GetFields() map[string]*Value {
	if m != nil {
		return m.Fields
	}
	return nil
}

// Value represents a dynamically typed value which can be either null, a
// number, a string, a boolean, a recursive struct value, or a list of
// values.
type Value struct {
	proto.MessageState

	// The kind of value.
	//
	// Types that are assignable to Kind:
	//	*Value_NullValue
	//	*Value_NumberValue
	//	*Value_StringValue
	//	*Value_BoolValue
	//	*Value_StructValue
	//	*Value_ListValue
	Kind isValue_Kind `protobuf_oneof:"kind"`
}

func (m *Value) Reset()         { *m = Value{} }
func (m *Value) String() string { return proto.CompactString(m) }
func (*Value) ProtoMessage()    {}

type isValue_Kind interface {
	isValue_Kind()
}

type Value_NullValue struct {
	// Represents a null value.
	NullValue NullValue `protobuf:"varint,1,opt,name=null_value,proto3,enum=google.protobuf.NullValue,oneof"`
}

type Value_NumberValue struct {
	// Represents a double value.
	NumberValue float64 `protobuf:"fixed64,2,opt,name=number_value,proto3,oneof"`
}

type Value_StringValue struct {
	// Represents a string value.
	StringValue string `protobuf:"bytes,3,opt,name=string_value,proto3,oneof"`
}

type Value_BoolValue struct {
	// Represents a boolean value.
	BoolValue bool `protobuf:"varint,4,opt,name=bool_value,proto3,oneof"`
}

type Value_StructValue struct {
	// Represents a structured value.
	StructValue *Struct `protobuf:"bytes,5,opt,name=struct_value,proto3,oneof"`
}

type Value_ListValue struct {
	// Represents a repeated Value.
	ListValue *ListValue `protobuf:"bytes,6,opt,name=list_value,proto3,oneof"`
}

func (*Value_NullValue) isValue_Kind()   {}
func (*Value_NumberValue) isValue_Kind() {}
func (*Value_StringValue) isValue_Kind() {}
func (*Value_BoolValue) isValue_Kind()   {}
func (*Value_StructValue) isValue_Kind() {}
func (*Value_ListValue) isValue_Kind()   {}

// XXX_OneofWrappers is for the internal use of the proto package.
func (*Value) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*Value_NullValue)(nil),
		(*Value_NumberValue)(nil),
		(*Value_StringValue)(nil),
		(*Value_BoolValue)(nil),
		(*Value_StructValue)(nil),
		(*Value_ListValue)(nil),
	}
}

// GetKind returns the active member of the kind oneof, or nil.
func (m *Value) GetKind() isValue_Kind {
	if m != nil {
		return m.Kind
	}
	return nil
}

// NewValue constructs a Value from a general-purpose Go interface.
//
//	╔═══════════════════════════╤══════════════════════════╗
//	║ Go type                   │ Conversion               ║
//	╠═══════════════════════════╪══════════════════════════╣
//	║ nil                       │ stored as NullValue      ║
//	║ bool                      │ stored as BoolValue      ║
//	║ int, int32, int64         │ stored as NumberValue    ║
//	║ uint, uint32, uint64      │ stored as NumberValue    ║
//	║ float32, float64          │ stored as NumberValue    ║
//	║ string                    │ stored as StringValue    ║
//	║ map[string]interface{}    │ stored as StructValue    ║
//	║ []interface{}             │ stored as ListValue      ║
//	╚═══════════════════════════╧══════════════════════════╝
func NewValue(v interface{}) (*Value, error) {
	switch v := v.(type) {
	case nil:
		return NewNullValue(), nil
	case bool:
		return NewBoolValue(v), nil
	case int:
		return NewNumberValue(float64(v)), nil
	case int32:
		return NewNumberValue(float64(v)), nil
	case int64:
		return NewNumberValue(float64(v)), nil
	case uint:
		return NewNumberValue(float64(v)), nil
	case uint32:
		return NewNumberValue(float64(v)), nil
	case uint64:
		return NewNumberValue(float64(v)), nil
	case float32:
		return NewNumberValue(float64(v)), nil
	case float64:
		return NewNumberValue(v), nil
	case string:
		return NewStringValue(v), nil
	case map[string]interface{}:
		v2, err := NewStruct(v)
		if err != nil {
			return nil, err
		}
		return NewStructValue(v2), nil
	case []interface{}:
		v2, err := NewList(v)
		if err != nil {
			return nil, err
		}
		return NewListValue(v2), nil
	default:
		return nil, errors.New("invalid type %T for structpb.Value", v)
	}
}

// NewNullValue constructs a Value representing null.
func NewNullValue() *Value {
	return &Value{Kind: &Value_NullValue{NullValue: NullValue_NULL_VALUE}}
}

// NewBoolValue constructs a Value from a bool.
func NewBoolValue(v bool) *Value {
	return &Value{Kind: &Value_BoolValue{BoolValue: v}}
}

// NewNumberValue constructs a Value from a float64.
func NewNumberValue(v float64) *Value {
	return &Value{Kind: &Value_NumberValue{NumberValue: v}}
}

// NewStringValue constructs a Value from a string.
func NewStringValue(v string) *Value {
	return &Value{Kind: &Value_StringValue{StringValue: v}}
}

// NewStructValue constructs a Value from a Struct.
func NewStructValue(v *Struct) *Value {
	return &Value{Kind: &Value_StructValue{StructValue: v}}
}

// NewListValue constructs a Value from a ListValue.
func NewListValue(v *ListValue) *Value {
	return &Value{Kind: &Value_ListValue{ListValue: v}}
}

// AsInterface converts x to a general-purpose Go interface, inverting
// NewValue.
func (m *Value) AsInterface() interface{} {
	if m == nil {
		return nil
	}
	switch v := m.Kind.(type) {
	case *Value_NumberValue:
		return v.NumberValue
	case *Value_StringValue:
		return v.StringValue
	case *Value_BoolValue:
		return v.BoolValue
	case *Value_StructValue:
		return v.StructValue.AsMap()
	case *Value_ListValue:
		return v.ListValue.AsSlice()
	}
	return nil
}

// ListValue is a wrapper around a repeated field of values. It mirrors a
// JSON array.
type ListValue struct {
	proto.MessageState

	// Repeated field of dynamically typed values.
	Values []*Value `protobuf:"bytes,1,rep,name=values,proto3" json:"values,omitempty"`
}

func (m *ListValue) Reset()         { *m = ListValue{} }
func (m *ListValue) String() string { return proto.CompactString(m) }
func (*ListValue) ProtoMessage()    {}

// NewList constructs a ListValue from a general-purpose Go slice. The
// slice elements are converted per NewValue.
func NewList(v []interface{}) (*ListValue, error) {
	x := &ListValue{Values: make([]*Value, len(v))}
	for i, e := range v {
		var err error
		if x.Values[i], err = NewValue(e); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// AsSlice converts x to a general-purpose Go slice. The slice elements are
// converted per the AsInterface method of Value.
func (m *ListValue) AsSlice() []interface{} {
	vals := m.GetValues()
	vs := make([]interface{}, len(vals))
	for i, v := range vals {
		vs[i] = v.AsInterface()
	}
	return vs
}

// GetValues returns the element slice, or nil for a nil receiver.
func (m *ListValue) GetValues() []*Value {
	if m != nil {
		return m.Values
	}
	return nil
}

func init() {
	proto.RegisterEnum("google.protobuf.NullValue", NullValue_name, NullValue_value)
	proto.RegisterType((*Struct)(nil), "google.protobuf.Struct")
	proto.RegisterType((*Value)(nil), "google.protobuf.Value")
	proto.RegisterType((*ListValue)(nil), "google.protobuf.ListValue")
}
