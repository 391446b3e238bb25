// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVarint(t *testing.T) {
	tests := []struct {
		in   uint64
		want []byte
	}{
		{0x00, []byte{0x00}},
		{0x01, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x12c, []byte{0xac, 0x02}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, tt := range tests {
		got := AppendVarint(nil, tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("AppendVarint(%#x) mismatch (-want +got):\n%s", tt.in, diff)
		}
		if n := SizeVarint(tt.in); n != len(tt.want) {
			t.Errorf("SizeVarint(%#x) = %d, want %d", tt.in, n, len(tt.want))
		}
		v, n, err := ConsumeVarint(tt.want)
		if err != nil {
			t.Errorf("ConsumeVarint(% x): unexpected error: %v", tt.want, err)
			continue
		}
		if v != tt.in || n != len(tt.want) {
			t.Errorf("ConsumeVarint(% x) = (%#x, %d), want (%#x, %d)", tt.want, v, n, tt.in, len(tt.want))
		}
	}
}

func TestVarintErrors(t *testing.T) {
	tests := []struct {
		in      []byte
		wantErr error
	}{
		{nil, ErrTruncated},
		{[]byte{0x80}, ErrTruncated},
		{[]byte{0x80, 0x80, 0x80}, ErrTruncated},
		// Eleven bytes with continuation bits set on the first ten.
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, ErrOverflow},
		// Tenth byte contributes more than the top bit.
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, ErrOverflow},
	}
	for _, tt := range tests {
		if _, _, err := ConsumeVarint(tt.in); err != tt.wantErr {
			t.Errorf("ConsumeVarint(% x) error = %v, want %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestZigZag(t *testing.T) {
	tests := []struct {
		dec int64
		enc uint64
	}{
		{0, 0},
		{-1, 1},
		{+1, 2},
		{-2, 3},
		{+2, 4},
		{math.MinInt64, math.MaxUint64},
		{math.MaxInt64, math.MaxUint64 - 1},
	}
	for _, tt := range tests {
		if got := EncodeZigZag(tt.dec); got != tt.enc {
			t.Errorf("EncodeZigZag(%d) = %d, want %d", tt.dec, got, tt.enc)
		}
		if got := DecodeZigZag(tt.enc); got != tt.dec {
			t.Errorf("DecodeZigZag(%d) = %d, want %d", tt.enc, got, tt.dec)
		}
	}
}

func TestZigZag32(t *testing.T) {
	tests := []struct {
		dec int32
		enc uint64
	}{
		{0, 0},
		{-1, 1},
		{+1, 2},
		{math.MinInt32, math.MaxUint32},
		{math.MaxInt32, math.MaxUint32 - 1},
	}
	for _, tt := range tests {
		if got := EncodeZigZag32(tt.dec); got != tt.enc {
			t.Errorf("EncodeZigZag32(%d) = %d, want %d", tt.dec, got, tt.enc)
		}
		if got := DecodeZigZag32(tt.enc); got != tt.dec {
			t.Errorf("DecodeZigZag32(%d) = %d, want %d", tt.enc, got, tt.dec)
		}
	}
}

func TestFixed(t *testing.T) {
	b := AppendFixed32(nil, 0x01020304)
	if want := []byte{0x04, 0x03, 0x02, 0x01}; !bytes.Equal(b, want) {
		t.Errorf("AppendFixed32 = % x, want % x", b, want)
	}
	if v, n, err := ConsumeFixed32(b); err != nil || v != 0x01020304 || n != 4 {
		t.Errorf("ConsumeFixed32 = (%#x, %d, %v)", v, n, err)
	}
	if _, _, err := ConsumeFixed32([]byte{1, 2, 3}); err != ErrTruncated {
		t.Errorf("ConsumeFixed32 short error = %v, want %v", err, ErrTruncated)
	}

	b = AppendFixed64(nil, 0x0102030405060708)
	if v, n, err := ConsumeFixed64(b); err != nil || v != 0x0102030405060708 || n != 8 {
		t.Errorf("ConsumeFixed64 = (%#x, %d, %v)", v, n, err)
	}
	if _, _, err := ConsumeFixed64(b[:7]); err != ErrTruncated {
		t.Errorf("ConsumeFixed64 short error = %v, want %v", err, ErrTruncated)
	}
}

func TestFloatBits(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.5, math.Pi, math.Inf(1), math.Inf(-1)} {
		if got := DecodeFloat64(EncodeFloat64(f)); got != f {
			t.Errorf("DecodeFloat64(EncodeFloat64(%v)) = %v", f, got)
		}
	}
	if !math.IsNaN(DecodeFloat64(EncodeFloat64(math.NaN()))) {
		t.Error("NaN did not round-trip")
	}
}

func TestTag(t *testing.T) {
	b := AppendTag(nil, 1, BytesType)
	if want := []byte{0x0a}; !bytes.Equal(b, want) {
		t.Errorf("AppendTag(1, bytes) = % x, want % x", b, want)
	}
	num, typ, n, err := ConsumeTag(b)
	if err != nil || num != 1 || typ != BytesType || n != 1 {
		t.Errorf("ConsumeTag = (%v, %v, %d, %v)", num, typ, n, err)
	}

	if _, _, _, err := ConsumeTag([]byte{0x00}); err != ErrFieldNumber {
		t.Errorf("ConsumeTag(field 0) error = %v, want %v", err, ErrFieldNumber)
	}
}

func TestBytes(t *testing.T) {
	b := AppendBytes(nil, []byte("Hey!"))
	if want := []byte{0x04, 'H', 'e', 'y', '!'}; !bytes.Equal(b, want) {
		t.Errorf("AppendBytes = % x, want % x", b, want)
	}
	v, n, err := ConsumeBytes(b)
	if err != nil || string(v) != "Hey!" || n != 5 {
		t.Errorf("ConsumeBytes = (%q, %d, %v)", v, n, err)
	}
	if _, _, err := ConsumeBytes([]byte{0x05, 'a'}); err != ErrTruncated {
		t.Errorf("ConsumeBytes overrun error = %v, want %v", err, ErrTruncated)
	}
}

func TestNumberValidity(t *testing.T) {
	for _, tt := range []struct {
		num  Number
		want bool
	}{
		{0, false},
		{1, true},
		{18999, true},
		{19000, false},
		{19500, false},
		{19999, false},
		{20000, true},
		{MaxValidNumber, true},
		{MaxValidNumber + 1, false},
	} {
		if got := tt.num.IsValid(); got != tt.want {
			t.Errorf("Number(%d).IsValid() = %v, want %v", tt.num, got, tt.want)
		}
	}
}

func TestConsumeFieldValue(t *testing.T) {
	if _, err := ConsumeFieldValue(StartGroupType, nil); err != ErrWireType {
		t.Errorf("ConsumeFieldValue(group) error = %v, want %v", err, ErrWireType)
	}
	n, err := ConsumeFieldValue(VarintType, []byte{0xac, 0x02})
	if err != nil || n != 2 {
		t.Errorf("ConsumeFieldValue(varint) = (%d, %v)", n, err)
	}
}
