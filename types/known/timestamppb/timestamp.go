// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timestamppb contains the google.protobuf.Timestamp message and
// its conversions to and from time.Time.
package timestamppb

import (
	"time"

	"github.com/lightpb/lightpb/internal/errors"
	"github.com/lightpb/lightpb/proto"
)

const (
	// Seconds field of the earliest valid Timestamp.
	// This is time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Unix().
	minValidSeconds = -62135596800
	// Seconds field just after the latest valid Timestamp.
	// This is time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).Unix().
	maxValidSeconds = 253402300800
)

// A Timestamp represents a point in time independent of any time zone or
// calendar, encoded as a count of seconds and fractions of seconds at
// nanosecond resolution since the Unix epoch.
type Timestamp struct {
	proto.MessageState

	// Represents seconds of UTC time since Unix epoch.
	// Must be from 0001-01-01T00:00:00Z to 9999-12-31T23:59:59Z inclusive.
	Seconds int64 `protobuf:"varint,1,opt,name=seconds,proto3" json:"seconds,omitempty"`
	// Non-negative fractions of a second at nanosecond resolution.
	// Must be from 0 to 999,999,999 inclusive.
	Nanos int32 `protobuf:"varint,2,opt,name=nanos,proto3" json:"nanos,omitempty"`
}

func (m *Timestamp) Reset()         { *m = Timestamp{} }
func (m *Timestamp) String() string { return proto.CompactString(m) }
func (*Timestamp) ProtoMessage()    {}

// New constructs a new Timestamp from the provided time.Time.
func New(t time.Time) *Timestamp {
	return &Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

// Now constructs a new Timestamp from the current time.
func Now() *Timestamp {
	return New(time.Now())
}

// AsTime converts ts to a time.Time in UTC.
func (m *Timestamp) AsTime() time.Time {
	if m == nil {
		return time.Unix(0, 0).UTC()
	}
	return time.Unix(m.Seconds, int64(m.Nanos)).UTC()
}

// IsValid reports whether ts is within the range
// [0001-01-01, 10000-01-01) with a Nanos field in [0, 1e9).
func (m *Timestamp) IsValid() bool {
	return m.CheckValid() == nil
}

// CheckValid returns an error if the timestamp is invalid.
func (m *Timestamp) CheckValid() error {
	switch {
	case m == nil:
		return errors.New("timestamp: nil Timestamp")
	case m.Seconds < minValidSeconds:
		return errors.New("timestamp: %v before 0001-01-01", m)
	case m.Seconds >= maxValidSeconds:
		return errors.New("timestamp: %v after 10000-01-01", m)
	case m.Nanos < 0 || m.Nanos >= 1e9:
		return errors.New("timestamp: %v: nanos not in range [0, 1e9)", m)
	}
	return nil
}

func init() {
	proto.RegisterType((*Timestamp)(nil), "google.protobuf.Timestamp")
}
