// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Compact debug rendering of messages, used by the generated String
// methods. This is a one-way printer; it is not a text-format codec.

package proto

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// CompactString returns a compact single-line rendering of m in the form
// `field:value field:value`, suitable for the String method of generated
// messages and for debug logs. Map entries are sorted by key so that the
// rendering is deterministic.
func CompactString(m Message) string {
	if m == nil {
		return "<nil>"
	}
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return "<nil>"
	}
	var sb strings.Builder
	writeStruct(&sb, v.Elem())
	return sb.String()
}

func writeStruct(sb *strings.Builder, v reflect.Value) {
	sprop := GetProperties(v.Type())
	sep := ""
	for _, step := range sprop.plan {
		if step.prop != nil {
			fv := v.Field(step.prop.fieldIndex)
			if isZeroField(fv) && !step.prop.Repeated && !step.prop.IsMap() {
				continue
			}
			writeField(sb, &sep, fv, step.prop)
			continue
		}
		iface := v.Field(step.oneofField)
		if iface.IsNil() {
			continue
		}
		op := sprop.oneofByType[iface.Elem().Type()]
		sb.WriteString(sep)
		sep = " "
		sb.WriteString(op.Prop.OrigName)
		sb.WriteString(":")
		writeValue(sb, iface.Elem().Elem().Field(0), op.Prop)
	}
	if ms := sprop.stateOf(v); ms != nil && len(ms.unknownFields) > 0 {
		fmt.Fprintf(sb, "%s<unknown:%d bytes>", sep, len(ms.unknownFields))
	}
}

func writeField(sb *strings.Builder, sep *string, fv reflect.Value, p *Properties) {
	switch {
	case p.IsMap():
		keys := fv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		for _, k := range keys {
			sb.WriteString(*sep)
			*sep = " "
			fmt.Fprintf(sb, "%s:{key:%v value:", p.OrigName, k.Interface())
			writeValue(sb, fv.MapIndex(k), p.MapValProp)
			sb.WriteString("}")
		}
	case p.Repeated:
		for i := 0; i < fv.Len(); i++ {
			sb.WriteString(*sep)
			*sep = " "
			sb.WriteString(p.OrigName)
			sb.WriteString(":")
			writeValue(sb, fv.Index(i), p)
		}
	default:
		sb.WriteString(*sep)
		*sep = " "
		sb.WriteString(p.OrigName)
		sb.WriteString(":")
		writeValue(sb, fv, p)
	}
}

func writeValue(sb *strings.Builder, fv reflect.Value, p *Properties) {
	switch fv.Kind() {
	case reflect.String:
		fmt.Fprintf(sb, "%q", fv.String())
	case reflect.Slice: // []byte
		fmt.Fprintf(sb, "%q", fv.Bytes())
	case reflect.Ptr:
		if fv.IsNil() {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{")
		writeStruct(sb, fv.Elem())
		sb.WriteString("}")
	case reflect.Int32:
		if p.Enum != "" {
			if names := EnumNameMap(p.Enum); names != nil {
				sb.WriteString(EnumName(names, int32(fv.Int())))
				return
			}
		}
		fmt.Fprintf(sb, "%v", fv.Interface())
	default:
		fmt.Fprintf(sb, "%v", fv.Interface())
	}
}
