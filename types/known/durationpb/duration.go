// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package durationpb contains the google.protobuf.Duration message and its
// conversions to and from time.Duration.
package durationpb

import (
	"time"

	"github.com/lightpb/lightpb/internal/errors"
	"github.com/lightpb/lightpb/proto"
)

// Range of a Duration in seconds, as specified in
// google/protobuf/duration.proto. This is about 10,000 years in seconds.
const (
	maxSeconds = +315576000000
	minSeconds = -maxSeconds
)

// A Duration represents a signed, fixed-length span of time at nanosecond
// resolution. It is independent of any calendar and concepts like "day" or
// "month".
type Duration struct {
	proto.MessageState

	// Signed seconds of the span of time.
	Seconds int64 `protobuf:"varint,1,opt,name=seconds,proto3" json:"seconds,omitempty"`
	// Signed fractions of a second at nanosecond resolution of the span of
	// time. For durations of one second or more, a non-zero value for this
	// field must be of the same sign as seconds.
	Nanos int32 `protobuf:"varint,2,opt,name=nanos,proto3" json:"nanos,omitempty"`
}

func (m *Duration) Reset()         { *m = Duration{} }
func (m *Duration) String() string { return proto.CompactString(m) }
func (*Duration) ProtoMessage()    {}

// New constructs a new Duration from the provided time.Duration.
func New(d time.Duration) *Duration {
	nanos := d.Nanoseconds()
	secs := nanos / 1e9
	nanos -= secs * 1e9
	return &Duration{Seconds: secs, Nanos: int32(nanos)}
}

// AsDuration converts d to a time.Duration, truncating to the closest
// representable value if it overflows the range of a time.Duration.
func (m *Duration) AsDuration() time.Duration {
	if m == nil {
		return 0
	}
	secs := m.Seconds
	nanos := int64(m.Nanos)
	d := time.Duration(secs) * time.Second
	overflow := int64(d/time.Second) != secs
	d += time.Duration(nanos) * time.Nanosecond
	overflow = overflow || (secs < 0 && nanos < 0 && d > 0) || (secs > 0 && nanos > 0 && d < 0)
	if overflow {
		switch {
		case secs < 0:
			return time.Duration(minInt64)
		case secs > 0:
			return time.Duration(maxInt64)
		}
	}
	return d
}

const (
	maxInt64 = +1<<63 - 1
	minInt64 = -1 << 63
)

// IsValid reports whether d is within the valid range and the signs of
// Seconds and Nanos agree.
func (m *Duration) IsValid() bool {
	return m.CheckValid() == nil
}

// CheckValid returns an error if the duration is invalid.
func (m *Duration) CheckValid() error {
	switch {
	case m == nil:
		return errors.New("duration: nil Duration")
	case m.Seconds < minSeconds || m.Seconds > maxSeconds:
		return errors.New("duration: %v: seconds out of range", m)
	case m.Nanos <= -1e9 || m.Nanos >= 1e9:
		return errors.New("duration: %v: nanos out of range", m)
	case (m.Seconds < 0 && m.Nanos > 0) || (m.Seconds > 0 && m.Nanos < 0):
		return errors.New("duration: %v: seconds and nanos have different signs", m)
	}
	return nil
}

func init() {
	proto.RegisterType((*Duration)(nil), "google.protobuf.Duration")
}
