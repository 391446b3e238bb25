// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Protocol buffer comparison.

package proto

import (
	"bytes"
	"log"
	"reflect"
)

/*
Equal returns true iff protocol buffers a and b are equal.
The arguments must both be pointers to protocol buffer structs.

Equality is defined in this way:
  - Two messages are equal iff they are the same type, corresponding
    fields are equal, and unknown field sets are equal.
  - Two scalar fields are equal iff their values are equal. If the fields
    are of a floating-point type, remember that NaN != x for all x,
    including NaN. Zero-length proto3 "bytes" fields are equal (nil == {}).
  - Two repeated fields are equal iff their lengths are the same, and their
    corresponding elements are equal.
  - Two map fields are equal iff their lengths are the same, and they
    contain the same set of elements. Zero-length map fields are equal.
  - For each oneof group, two messages are equal iff both groups are
    inactive, or both are active on the same member with equal values.
  - Two unknown field sets are equal if their current encoded state is
    byte-wise equal.

The return value is undefined if a and b are not protocol buffers.
*/
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == b
	}
	v1, v2 := reflect.ValueOf(a), reflect.ValueOf(b)
	if v1.Type() != v2.Type() {
		return false
	}
	if v1.Kind() == reflect.Ptr {
		if v1.IsNil() {
			return v2.IsNil()
		}
		if v2.IsNil() {
			return false
		}
		v1, v2 = v1.Elem(), v2.Elem()
	}
	if v1.Kind() != reflect.Struct {
		return false
	}
	return equalStruct(v1, v2)
}

// v1 and v2 are known to have the same type.
func equalStruct(v1, v2 reflect.Value) bool {
	sprop := GetProperties(v1.Type())
	for _, p := range sprop.Prop {
		if !equalAny(v1.Field(p.fieldIndex), v2.Field(p.fieldIndex)) {
			return false
		}
	}
	for _, fi := range sprop.oneofFields {
		if !equalAny(v1.Field(fi), v2.Field(fi)) {
			return false
		}
	}

	ms1, ms2 := sprop.stateOf(v1), sprop.stateOf(v2)
	if ms1 == nil || ms2 == nil {
		return true
	}
	return bytes.Equal(ms1.unknownFields, ms2.unknownFields)
}

// v1 and v2 are known to have the same type.
func equalAny(v1, v2 reflect.Value) bool {
	switch v1.Kind() {
	case reflect.Bool:
		return v1.Bool() == v2.Bool()
	case reflect.Float32, reflect.Float64:
		return v1.Float() == v2.Float()
	case reflect.Int32, reflect.Int64:
		return v1.Int() == v2.Int()
	case reflect.Uint32, reflect.Uint64:
		return v1.Uint() == v2.Uint()
	case reflect.String:
		return v1.String() == v2.String()
	case reflect.Interface:
		// A oneof field; compare the inner values.
		n1, n2 := v1.IsNil(), v2.IsNil()
		if n1 || n2 {
			return n1 == n2
		}
		e1, e2 := v1.Elem(), v2.Elem()
		if e1.Type() != e2.Type() {
			return false
		}
		return equalAny(e1, e2)
	case reflect.Map:
		if v1.Len() != v2.Len() {
			return false
		}
		for _, key := range v1.MapKeys() {
			val2 := v2.MapIndex(key)
			if !val2.IsValid() {
				// This key was not found in the second map.
				return false
			}
			if !equalAny(v1.MapIndex(key), val2) {
				return false
			}
		}
		return true
	case reflect.Ptr:
		if v1.IsNil() || v2.IsNil() {
			return v1.IsNil() == v2.IsNil()
		}
		return equalAny(v1.Elem(), v2.Elem())
	case reflect.Slice:
		if v1.Type().Elem().Kind() == reflect.Uint8 {
			// Zero-length proto3 bytes fields are the zero value: nil == {}.
			return bytes.Equal(v1.Bytes(), v2.Bytes())
		}
		if v1.Len() != v2.Len() {
			return false
		}
		for i := 0; i < v1.Len(); i++ {
			if !equalAny(v1.Index(i), v2.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		return equalStruct(v1, v2)
	}

	// unknown type, so not a protocol buffer
	log.Printf("proto: don't know how to compare %v", v1)
	return false
}
