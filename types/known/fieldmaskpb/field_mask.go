// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fieldmaskpb contains the google.protobuf.FieldMask message,
// a set of symbolic field paths.
package fieldmaskpb

import "github.com/lightpb/lightpb/proto"

// FieldMask represents a set of symbolic field paths, ordered and in the
// snake_case form used in .proto files.
type FieldMask struct {
	proto.MessageState

	// The set of field mask paths.
	Paths []string `protobuf:"bytes,1,rep,name=paths,proto3" json:"paths,omitempty"`
}

func (m *FieldMask) Reset()         { *m = FieldMask{} }
func (m *FieldMask) String() string { return proto.CompactString(m) }
func (*FieldMask) ProtoMessage()    {}

// New constructs a field mask from a list of paths.
func New(paths ...string) *FieldMask {
	return &FieldMask{Paths: paths}
}

// Append appends a list of paths to the mask.
func (m *FieldMask) Append(paths ...string) {
	m.Paths = append(m.Paths, paths...)
}

// GetPaths returns the path list, or nil for a nil receiver.
func (m *FieldMask) GetPaths() []string {
	if m != nil {
		return m.Paths
	}
	return nil
}

func init() {
	proto.RegisterType((*FieldMask)(nil), "google.protobuf.FieldMask")
}
