// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson

import (
	"bytes"
	stdjson "encoding/json"

	"github.com/lightpb/lightpb/proto"
)

// Map returns m as a nested map with the same shapes as the JSON form:
// 64-bit integers become strings, bytes become base64 strings, enums
// become names, and the well-known types take their distinguished shapes.
// Numbers are represented as json.Number so that no precision is lost.
func Map(m proto.Message) (map[string]interface{}, error) {
	return MarshalOptions{}.Map(m)
}

// Map returns m as a nested map using the options in MarshalOptions.
// The Indent option has no effect.
func (o MarshalOptions) Map(m proto.Message) (map[string]interface{}, error) {
	o.Indent = ""
	b, err := o.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	dec := stdjson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromMap populates m from a nested map of the shape produced by Map,
// resetting m first.
func FromMap(v map[string]interface{}, m proto.Message) error {
	return UnmarshalOptions{}.FromMap(v, m)
}

// FromMap populates m from a nested map using the options in
// UnmarshalOptions.
func (o UnmarshalOptions) FromMap(v map[string]interface{}, m proto.Message) error {
	b, err := stdjson.Marshal(v)
	if err != nil {
		return err
	}
	return o.Unmarshal(b, m)
}
