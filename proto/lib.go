// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package proto converts data structures to and from the wire format of
protocol buffers. It works in concert with the Go source code generated
for .proto files by the protocol compiler.

A summary of the properties of the protocol buffer interface
for a protocol buffer variable v:

  - Names are turned from camel_case to CamelCase for export.
  - There are no methods on v to set fields; just treat
    them as structure fields.
  - The zero value for a struct is its correct initialization state.
  - A Reset() method will restore a protobuf struct to its zero state.
  - Non-repeated fields of non-message type are values, not pointers;
    message-typed fields are pointers and nil means absent.
  - Repeated fields are slices, map fields are maps.
  - Oneof field sets are given a single interface-typed field in their
    message, with distinguished wrapper types for each possible field
    value, enumerated by an XXX_OneofWrappers method.
  - Every generated struct embeds MessageState, which carries the bytes
    of fields the schema does not know about and the record of whether
    the message was produced by a parse.
  - Marshal and Unmarshal are functions to encode and decode the wire
    format.

Only proto3 semantics are supported: there are no groups, no required
fields, no extensions, and enums are open.
*/
package proto

// Message is implemented by generated protocol buffer messages.
type Message interface {
	Reset()
	String() string
	ProtoMessage()
}

// MessageState is embedded by every generated message struct. It holds the
// verbatim bytes of fields that were present on the wire but unknown to
// the schema, and records whether the message came from a parse.
//
// The codec reaches the embedded state through the descriptor table, so a
// message without it still round-trips its known fields; it just cannot
// preserve unknown ones.
type MessageState struct {
	unknownFields []byte
	wasSerialized bool
}

// UnknownFields returns the raw bytes of fields preserved from parsing
// that were not declared in the schema.
func (ms *MessageState) UnknownFields() []byte { return ms.unknownFields }

// SetUnknownFields replaces the preserved unknown-field bytes.
func (ms *MessageState) SetUnknownFields(b []byte) { ms.unknownFields = b }

// WasSerialized reports whether a message instance was produced by a parse
// call rather than constructed locally. This is what distinguishes "field
// absent" from "field present at its default" for sub-message fields.
func WasSerialized(m Message) bool {
	ms := stateOf(m)
	return ms != nil && ms.wasSerialized
}

// MarkSerialized records on m's embedded MessageState that the instance
// was produced by a parse. It is intended for use by codec packages.
func MarkSerialized(m Message) {
	if ms := stateOf(m); ms != nil {
		ms.wasSerialized = true
	}
}

// UnknownFields returns the unknown-field bytes preserved on m, or nil.
func UnknownFields(m Message) []byte {
	if ms := stateOf(m); ms != nil {
		return ms.unknownFields
	}
	return nil
}
