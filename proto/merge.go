// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"log"
	"reflect"
)

// Merge merges src into dst, which must be messages of the same type.
//
// Populated scalar fields in src are copied to dst, while populated
// singular messages in src are merged into dst by recursively calling
// Merge. The elements of every repeated field in src are appended to the
// corresponding field in dst, and every map entry in src overwrites the
// entry with the same key in dst. The active oneof member of src replaces
// whatever member dst had active. The unknown fields of src are appended
// to the unknown fields of dst.
func Merge(dst, src Message) {
	if dst == nil || src == nil {
		return
	}
	in := reflect.ValueOf(src)
	out := reflect.ValueOf(dst)
	if in.Type() != out.Type() {
		panic("proto: type mismatch")
	}
	if in.IsNil() || out.IsNil() {
		return
	}
	mergeStruct(out.Elem(), in.Elem())
}

func mergeStruct(out, in reflect.Value) {
	sprop := GetProperties(in.Type())
	for _, p := range sprop.Prop {
		mergeAny(out.Field(p.fieldIndex), in.Field(p.fieldIndex))
	}
	for _, fi := range sprop.oneofFields {
		iface := in.Field(fi)
		if iface.IsNil() {
			continue
		}
		wrapper := reflect.New(iface.Elem().Type().Elem())
		mergeAny(wrapper.Elem().Field(0), iface.Elem().Elem().Field(0))
		out.Field(fi).Set(wrapper)
	}

	msIn, msOut := sprop.stateOf(in), sprop.stateOf(out)
	if msIn == nil || msOut == nil {
		return
	}
	if len(msIn.unknownFields) > 0 {
		msOut.unknownFields = append(msOut.unknownFields, msIn.unknownFields...)
	}
	if msIn.wasSerialized {
		msOut.wasSerialized = true
	}
}

func mergeAny(out, in reflect.Value) {
	switch in.Kind() {
	case reflect.Bool, reflect.Float32, reflect.Float64, reflect.Int32, reflect.Int64,
		reflect.String, reflect.Uint32, reflect.Uint64:
		if !in.IsZero() {
			out.Set(in)
		}
	case reflect.Ptr:
		// A singular message: merge recursively.
		if in.IsNil() {
			return
		}
		if out.IsNil() {
			out.Set(reflect.New(in.Type().Elem()))
		}
		mergeStruct(out.Elem(), in.Elem())
	case reflect.Map:
		if in.Len() == 0 {
			return
		}
		if out.IsNil() {
			out.Set(reflect.MakeMap(in.Type()))
		}
		iter := in.MapRange()
		for iter.Next() {
			val := iter.Value()
			if val.Kind() == reflect.Ptr {
				cloned := reflect.New(val.Type().Elem())
				if !val.IsNil() {
					mergeStruct(cloned.Elem(), val.Elem())
				}
				val = cloned
			}
			out.SetMapIndex(iter.Key(), val)
		}
	case reflect.Slice:
		if in.Len() == 0 && in.IsNil() {
			return
		}
		if in.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a scalar.
			if in.Len() > 0 {
				out.SetBytes(append([]byte(nil), in.Bytes()...))
			}
			return
		}
		if in.Type().Elem().Kind() == reflect.Ptr {
			for i := 0; i < in.Len(); i++ {
				elem := in.Index(i)
				cloned := reflect.New(elem.Type().Elem())
				if !elem.IsNil() {
					mergeStruct(cloned.Elem(), elem.Elem())
				}
				out.Set(reflect.Append(out, cloned))
			}
			return
		}
		out.Set(reflect.AppendSlice(out, in))
	default:
		// unknown type, so not a protocol buffer
		log.Printf("proto: don't know how to merge %v", in)
	}
}
