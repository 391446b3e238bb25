// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package emptypb contains the google.protobuf.Empty message, the unit
// value for APIs whose requests or responses carry no data.
package emptypb

import "github.com/lightpb/lightpb/proto"

// Empty is an empty message.
type Empty struct {
	proto.MessageState
}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return proto.CompactString(m) }
func (*Empty) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Empty)(nil), "google.protobuf.Empty")
}
