// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"log"
	"reflect"
	"strconv"

	perrors "github.com/lightpb/lightpb/internal/errors"
)

// A global registry of enum types.
// The generated code will register the generated maps by calling RegisterEnum.

var (
	enumNameMaps  = make(map[string]map[int32]string)
	enumValueMaps = make(map[string]map[string]int32)
)

// RegisterEnum is called from the generated code to install the enum
// descriptor maps into the global table. The JSON codec uses them to emit
// enum values by name.
func RegisterEnum(typeName string, nameMap map[int32]string, valueMap map[string]int32) {
	if _, ok := enumValueMaps[typeName]; ok {
		panic("proto: duplicate enum registered: " + typeName)
	}
	enumNameMaps[typeName] = nameMap
	enumValueMaps[typeName] = valueMap
}

// EnumValueMap returns the mapping from names to integers of the
// enum type enumType, or nil if not found.
func EnumValueMap(enumType string) map[string]int32 {
	return enumValueMaps[enumType]
}

// EnumNameMap returns the mapping from integers to names of the
// enum type enumType, or nil if not found.
func EnumNameMap(enumType string) map[int32]string {
	return enumNameMaps[enumType]
}

// EnumName is a helper function to simplify printing enums by name. Given
// an enum map and a value, it returns a useful string.
func EnumName(m map[int32]string, v int32) string {
	s, ok := m[v]
	if ok {
		return s
	}
	return strconv.Itoa(int(v))
}

// UnmarshalJSONEnum is a helper function to simplify recovering enum int
// values from their JSON-encoded representation. Given a map from the
// enum's symbolic names to its int values, and a byte buffer containing
// the JSON-encoded value, it returns an int32 that can be cast to the
// enum type by the caller.
//
// The function can deal with both JSON representations, numeric and
// symbolic.
func UnmarshalJSONEnum(m map[string]int32, data []byte, enumName string) (int32, error) {
	if data[0] == '"' {
		// New style: enums are strings.
		name := string(data[1 : len(data)-1])
		v, ok := m[name]
		if !ok {
			return 0, perrors.New("unknown value %q for enum %s", name, enumName)
		}
		return v, nil
	}
	// Old style: enums are ints.
	n, err := strconv.ParseInt(string(data), 10, 32)
	if err != nil {
		return 0, perrors.New("cannot parse %q as int32 for enum %s", string(data), enumName)
	}
	return int32(n), nil
}

// A registry of all linked message types.
// The string is a fully-qualified proto name ("pkg.Message").
var (
	protoTypes    = make(map[string]reflect.Type)
	revProtoTypes = make(map[reflect.Type]string)
)

// RegisterType is called from generated code and maps from the fully
// qualified proto name to the type (pointer to struct) of the protocol
// buffer.
func RegisterType(x Message, name string) {
	if _, ok := protoTypes[name]; ok {
		log.Printf("proto: duplicate proto type registered: %s", name)
		return
	}
	t := reflect.TypeOf(x)
	protoTypes[name] = t
	revProtoTypes[t] = name
}

// MessageName returns the fully-qualified proto name for the given message
// type, or the empty string for an unregistered type.
func MessageName(x Message) string {
	return revProtoTypes[reflect.TypeOf(x)]
}

// MessageType returns the message type (pointer to struct) for a named
// message.
func MessageType(name string) reflect.Type { return protoTypes[name] }
