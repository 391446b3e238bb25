// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import "reflect"

// WhichOneof reports which member of the named oneof group is currently
// set on m, returning the member's original field name and its value. It
// returns ("", nil) when no member is set or when m has no group with
// that name.
func WhichOneof(m Message, group string) (string, interface{}) {
	if m == nil {
		return "", nil
	}
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return "", nil
	}
	v = v.Elem()
	sprop := GetProperties(v.Type())
	fi, ok := sprop.oneofFields[group]
	if !ok {
		return "", nil
	}
	iface := v.Field(fi)
	if iface.IsNil() {
		return "", nil
	}
	op, ok := sprop.oneofByType[iface.Elem().Type()]
	if !ok {
		return "", nil
	}
	return op.Prop.OrigName, iface.Elem().Elem().Field(0).Interface()
}

// ClearOneof resets the named oneof group on m so that no member is set.
func ClearOneof(m Message, group string) {
	if m == nil {
		return
	}
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	v = v.Elem()
	sprop := GetProperties(v.Type())
	if fi, ok := sprop.oneofFields[group]; ok {
		v.Field(fi).Set(reflect.Zero(v.Field(fi).Type()))
	}
}
