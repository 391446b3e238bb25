// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Protocol buffer deep copy.

package proto

import "reflect"

// Clone returns a deep copy of a protocol buffer.
func Clone(m Message) Message {
	in := reflect.ValueOf(m)
	if m == nil || in.IsNil() {
		return m
	}
	out := reflect.New(in.Type().Elem()).Interface().(Message)
	Merge(out, m)
	return out
}
