// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timestamppb_test

import (
	"testing"
	"time"

	"github.com/lightpb/lightpb/proto"
	"github.com/lightpb/lightpb/types/known/timestamppb"
)

func TestConversion(t *testing.T) {
	tests := []struct {
		ts *timestamppb.Timestamp
		t  time.Time
	}{
		{&timestamppb.Timestamp{Seconds: 0, Nanos: 0}, time.Unix(0, 0).UTC()},
		{&timestamppb.Timestamp{Seconds: 1546344000, Nanos: 0}, time.Date(2019, 1, 1, 12, 0, 0, 0, time.UTC)},
		{&timestamppb.Timestamp{Seconds: 1546344000, Nanos: 1}, time.Date(2019, 1, 1, 12, 0, 0, 1, time.UTC)},
		{&timestamppb.Timestamp{Seconds: -1, Nanos: 999999999}, time.Unix(0, 0).Add(-time.Nanosecond).UTC()},
	}
	for _, tt := range tests {
		if got := tt.ts.AsTime(); !got.Equal(tt.t) {
			t.Errorf("AsTime(%v) = %v, want %v", tt.ts, got, tt.t)
		}
		got := timestamppb.New(tt.t)
		if !proto.Equal(got, tt.ts) {
			t.Errorf("New(%v) = %v, want %v", tt.t, got, tt.ts)
		}
	}
}

func TestValidity(t *testing.T) {
	tests := []struct {
		ts   *timestamppb.Timestamp
		want bool
	}{
		{nil, false},
		{&timestamppb.Timestamp{}, true},
		{&timestamppb.Timestamp{Seconds: -62135596800}, true},
		{&timestamppb.Timestamp{Seconds: -62135596801}, false},
		{&timestamppb.Timestamp{Seconds: 253402300799}, true},
		{&timestamppb.Timestamp{Seconds: 253402300800}, false},
		{&timestamppb.Timestamp{Nanos: -1}, false},
		{&timestamppb.Timestamp{Nanos: 1e9}, false},
	}
	for _, tt := range tests {
		if got := tt.ts.IsValid(); got != tt.want {
			t.Errorf("IsValid(%v) = %v, want %v", tt.ts, got, tt.want)
		}
	}
}

func TestWireRoundTrip(t *testing.T) {
	ts := timestamppb.New(time.Date(2019, 1, 1, 12, 0, 0, 500, time.UTC))
	b, err := proto.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got := new(timestamppb.Timestamp)
	if err := proto.Unmarshal(b, got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !proto.Equal(ts, got) {
		t.Errorf("round-trip mismatch: got %v, want %v", got, ts)
	}
}
