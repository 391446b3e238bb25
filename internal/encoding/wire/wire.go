// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire parses and formats the low-level raw wire encoding.
//
// Every function in this package operates either on an append-only output
// slice or as a cursor over an input slice, reporting the number of bytes
// consumed. None of the functions know anything about message schemas.
package wire

import (
	"errors"
	"math"
	"math/bits"
)

// Number represents the field number. It must be a positive integer and
// numbers within the reserved range are rejected by the descriptor layer.
type Number int32

const (
	MinValidNumber      Number = 1
	FirstReservedNumber Number = 19000
	LastReservedNumber  Number = 19999
	MaxValidNumber      Number = 1<<29 - 1
)

// IsValid reports whether the field number is semantically valid.
func (n Number) IsValid() bool {
	return MinValidNumber <= n && n <= MaxValidNumber &&
		!(FirstReservedNumber <= n && n <= LastReservedNumber)
}

// Type represents the wire type, the low 3 bits of every tag.
type Type int8

const (
	VarintType     Type = 0
	Fixed64Type    Type = 1
	BytesType      Type = 2
	StartGroupType Type = 3
	EndGroupType   Type = 4
	Fixed32Type    Type = 5
)

var (
	// ErrTruncated is reported when the input ends mid-value.
	ErrTruncated = errors.New("proto: unexpected end of input")
	// ErrOverflow is reported for a varint longer than 10 bytes.
	ErrOverflow = errors.New("proto: varint overflows a 64-bit integer")
	// ErrWireType is reported for wire types 3 and 4, or a wire type
	// inconsistent with a known field's declared type.
	ErrWireType = errors.New("proto: unsupported wire type")
	// ErrFieldNumber is reported for a tag carrying field number zero or a
	// number outside the valid range.
	ErrFieldNumber = errors.New("proto: invalid field number")
)

// AppendTag appends a varint-encoded field tag to b.
func AppendTag(b []byte, num Number, typ Type) []byte {
	return AppendVarint(b, EncodeTag(num, typ))
}

// ConsumeTag parses b as a varint-encoded tag, reporting its length.
func ConsumeTag(b []byte) (Number, Type, int, error) {
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, 0, err
	}
	if v>>3 < uint64(MinValidNumber) || v>>3 > uint64(MaxValidNumber) {
		return 0, 0, 0, ErrFieldNumber
	}
	num, typ := DecodeTag(v)
	return num, typ, n, nil
}

// EncodeTag encodes the field Number and wire Type into its unified form.
func EncodeTag(num Number, typ Type) uint64 {
	return uint64(num)<<3 | uint64(typ&7)
}

// DecodeTag decodes the field Number and wire Type from its unified form.
func DecodeTag(x uint64) (Number, Type) {
	return Number(x >> 3), Type(x & 7)
}

// AppendVarint appends v to b as a varint-encoded uint64.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// ConsumeVarint parses b as a varint-encoded uint64, reporting its length.
func ConsumeVarint(b []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < len(b); i++ {
		if i == 10 {
			return 0, 0, ErrOverflow
		}
		c := b[i]
		v |= uint64(c&0x7f) << uint(7*i)
		if c < 0x80 {
			if i == 9 && c > 1 {
				// The tenth byte may only contribute the top bit.
				return 0, 0, ErrOverflow
			}
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}

// SizeVarint returns the encoded size of a varint.
func SizeVarint(v uint64) int {
	return (bits.Len64(v|1) + 6) / 7
}

// AppendFixed32 appends v to b as a little-endian uint32.
func AppendFixed32(b []byte, v uint32) []byte {
	return append(b,
		byte(v>>0),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24))
}

// ConsumeFixed32 parses b as a little-endian uint32, reporting its length.
func ConsumeFixed32(b []byte) (uint32, int, error) {
	if len(b) < 4 {
		return 0, 0, ErrTruncated
	}
	v := uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return v, 4, nil
}

// AppendFixed64 appends v to b as a little-endian uint64.
func AppendFixed64(b []byte, v uint64) []byte {
	return append(b,
		byte(v>>0),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
		byte(v>>32),
		byte(v>>40),
		byte(v>>48),
		byte(v>>56))
}

// ConsumeFixed64 parses b as a little-endian uint64, reporting its length.
func ConsumeFixed64(b []byte) (uint64, int, error) {
	if len(b) < 8 {
		return 0, 0, ErrTruncated
	}
	v := uint64(b[0])<<0 | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	return v, 8, nil
}

// AppendBytes appends v to b as a length-prefixed bytes value.
func AppendBytes(b []byte, v []byte) []byte {
	return append(AppendVarint(b, uint64(len(v))), v...)
}

// ConsumeBytes parses b as a length-prefixed bytes value, reporting its
// length. The returned slice aliases the input.
func ConsumeBytes(b []byte) ([]byte, int, error) {
	m, n, err := ConsumeVarint(b)
	if err != nil {
		return nil, 0, err
	}
	if m > uint64(len(b[n:])) {
		return nil, 0, ErrTruncated
	}
	return b[n:][:m], n + int(m), nil
}

// AppendString appends v to b as a length-prefixed bytes value.
func AppendString(b []byte, v string) []byte {
	return append(AppendVarint(b, uint64(len(v))), v...)
}

// ConsumeFieldValue parses a field value of the given wire type and reports
// its length. This is what allows unknown fields to be skipped over or
// copied verbatim without knowing their schema.
func ConsumeFieldValue(typ Type, b []byte) (int, error) {
	switch typ {
	case VarintType:
		_, n, err := ConsumeVarint(b)
		return n, err
	case Fixed32Type:
		_, n, err := ConsumeFixed32(b)
		return n, err
	case Fixed64Type:
		_, n, err := ConsumeFixed64(b)
		return n, err
	case BytesType:
		_, n, err := ConsumeBytes(b)
		return n, err
	default:
		return 0, ErrWireType
	}
}

// EncodeZigZag encodes an int64 as a zig-zag-encoded uint64.
//
//	Input:  {…, -3, -2, -1,  0, +1, +2, +3, …}
//	Output: {…,  5,  3,  1,  0,  2,  4,  6, …}
func EncodeZigZag(x int64) uint64 {
	return uint64(x<<1) ^ uint64(x>>63)
}

// DecodeZigZag decodes a zig-zag-encoded uint64 as an int64.
func DecodeZigZag(x uint64) int64 {
	return int64(x>>1) ^ int64(x)<<63>>63
}

// EncodeZigZag32 encodes an int32 as a zig-zag-encoded uint64 using
// 32-bit arithmetic, matching the encoding of sint32 fields.
func EncodeZigZag32(x int32) uint64 {
	return uint64(uint32(x<<1) ^ uint32(x>>31))
}

// DecodeZigZag32 decodes a zig-zag-encoded uint64 as an int32.
func DecodeZigZag32(x uint64) int32 {
	return int32(uint32(x)>>1) ^ int32(uint32(x))<<31>>31
}

// EncodeBool encodes a bool as a uint64.
func EncodeBool(x bool) uint64 {
	if x {
		return 1
	}
	return 0
}

// DecodeBool decodes a uint64 as a bool. Any non-zero value reads as true.
func DecodeBool(x uint64) bool {
	return x != 0
}

// EncodeFloat32 and friends wrap the math bit-conversion functions so that
// callers of this package do not reinterpret bits themselves.

// EncodeFloat32 reinterprets a float32 as a uint32 per IEEE 754.
func EncodeFloat32(x float32) uint32 { return math.Float32bits(x) }

// DecodeFloat32 reinterprets a uint32 as a float32 per IEEE 754.
func DecodeFloat32(x uint32) float32 { return math.Float32frombits(x) }

// EncodeFloat64 reinterprets a float64 as a uint64 per IEEE 754.
func EncodeFloat64(x float64) uint64 { return math.Float64bits(x) }

// DecodeFloat64 reinterprets a uint64 as a float64 per IEEE 754.
func DecodeFloat64(x uint64) float64 { return math.Float64frombits(x) }
