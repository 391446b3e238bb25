// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protojson marshals and unmarshals protocol buffer messages as
// JSON format, following the proto3 JSON mapping: lowerCamelCase field
// names, 64-bit integers as decimal strings, bytes as base64, enums by
// name, and the distinguished shapes of the well-known types.
package protojson

import (
	"github.com/iancoleman/strcase"

	"github.com/lightpb/lightpb/proto"
)

// Casing selects the style of the field names written by Marshal.
// Unmarshal always accepts both the lowerCamelCase and the original
// snake_case names, regardless of this setting.
type Casing int

const (
	// CasingCamel emits lowerCamelCase names. This is the default and the
	// casing the proto3 JSON mapping specifies.
	CasingCamel Casing = iota
	// CasingSnake emits snake_case names.
	CasingSnake
	// CasingPascal emits PascalCase names.
	CasingPascal
	// CasingOriginal emits the names exactly as declared in the schema.
	CasingOriginal
)

// jsonName returns the name to emit for p under the configured casing.
func (c Casing) jsonName(p *proto.Properties) string {
	switch c {
	case CasingSnake:
		return strcase.ToSnake(p.OrigName)
	case CasingPascal:
		return strcase.ToCamel(p.OrigName)
	case CasingOriginal:
		return p.OrigName
	default:
		if p.JSONName != "" {
			return p.JSONName
		}
		return strcase.ToLowerCamel(p.OrigName)
	}
}

// camelName returns the lowerCamelCase name of p, the name Unmarshal
// matches in addition to the original one.
func camelName(p *proto.Properties) string {
	if p.JSONName != "" {
		return p.JSONName
	}
	return strcase.ToLowerCamel(p.OrigName)
}
