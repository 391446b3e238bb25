// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lightpb/lightpb/internal/encoding/wire"
)

// tagMap is an optimization over map[int]int for typical protocol buffer
// use-cases. Encoded protocol buffers are often in tag order with small tag
// numbers.
type tagMap struct {
	fastTags []int
	slowTags map[int]int
}

// tagMapFastLimit is the upper bound on the tag number that will be stored in
// the tagMap slice rather than its map.
const tagMapFastLimit = 1024

func (p *tagMap) get(t int) (int, bool) {
	if t > 0 && t < tagMapFastLimit {
		if t >= len(p.fastTags) {
			return 0, false
		}
		fi := p.fastTags[t]
		return fi, fi >= 0
	}
	fi, ok := p.slowTags[t]
	return fi, ok
}

func (p *tagMap) put(t int, fi int) {
	if t > 0 && t < tagMapFastLimit {
		for len(p.fastTags) < t+1 {
			p.fastTags = append(p.fastTags, -1)
		}
		p.fastTags[t] = fi
		return
	}
	if p.slowTags == nil {
		p.slowTags = make(map[int]int)
	}
	p.slowTags[t] = fi
}

// StructProperties represents properties for all the fields of a struct.
type StructProperties struct {
	Prop []*Properties // properties of the encoded fields, in field-number order

	// OneofTypes contains information about the oneof fields in this
	// message. It is keyed by the original name of a field.
	OneofTypes map[string]*OneofProperties

	byNumber      tagMap                           // field number -> index into Prop
	byName        map[string]int                   // original field name -> index into Prop
	oneofByNumber map[wire.Number]*OneofProperties // member number -> member
	oneofByType   map[reflect.Type]*OneofProperties
	oneofFields   map[string]int // group name -> struct field index of the interface
	stateField    int            // index of the embedded MessageState, or -1
	plan          []planStep     // unified emit order of fields and oneof groups
}

// planStep is one entry of a message's serialization order: either a plain
// field or a oneof group, positioned by its (smallest) field number.
type planStep struct {
	num        wire.Number
	prop       *Properties // non-nil for plain fields
	oneofField int         // struct field index of the oneof interface, else -1
}

// ByNumber returns the properties of the field with the given number, or
// nil if the number is not declared (oneof members included).
func (sp *StructProperties) ByNumber(num wire.Number) *Properties {
	if i, ok := sp.byNumber.get(int(num)); ok {
		return sp.Prop[i]
	}
	if op, ok := sp.oneofByNumber[num]; ok {
		return op.Prop
	}
	return nil
}

// ByName returns the properties of the field with the given original name,
// or nil if the name is not declared (oneof members included).
func (sp *StructProperties) ByName(name string) *Properties {
	if i, ok := sp.byName[name]; ok {
		return sp.Prop[i]
	}
	if op, ok := sp.OneofTypes[name]; ok {
		return op.Prop
	}
	return nil
}

// OneofProperties represents information about a specific field in a oneof.
type OneofProperties struct {
	Type  reflect.Type // pointer to generated wrapper struct type for this oneof field
	Field int          // struct field number of the containing oneof in the message
	Group string       // name of the oneof group
	Prop  *Properties
}

// Properties represents the protocol-specific behavior of a single struct field.
type Properties struct {
	Name     string // name of the field, for error messages
	OrigName string // original name before protocol compiler (always set)
	JSONName string // name to use for JSON; determined by protoc
	Wire     string
	WireType wire.Type
	Tag      wire.Number
	Repeated bool
	Packed   bool   // relevant for repeated scalars only
	Enum     string // set for enum types only
	Proto3   bool
	Oneof    bool // whether this is a oneof member field

	fieldIndex int          // index of the field in the struct, -1 for synthetic props
	stype      reflect.Type // struct type, set for message fields
	mtype      reflect.Type // map type, set for map fields

	MapKeyProp *Properties // set for map types only
	MapValProp *Properties // set for map types only
}

// IsMap reports whether this field is a map field.
func (p *Properties) IsMap() bool { return p.mtype != nil }

// String formats the properties in the protobuf struct field tag style.
func (p *Properties) String() string {
	s := p.Wire
	s += "," + strconv.Itoa(int(p.Tag))
	s += ",opt"
	if p.Repeated {
		s += ",rep"
	}
	if p.Packed {
		s += ",packed"
	}
	s += ",name=" + p.OrigName
	if p.JSONName != "" {
		s += ",json=" + p.JSONName
	}
	if p.Proto3 {
		s += ",proto3"
	}
	if p.Oneof {
		s += ",oneof"
	}
	if len(p.Enum) > 0 {
		s += ",enum=" + p.Enum
	}
	return s
}

// Parse populates p by parsing a string in the protobuf struct field tag style.
func (p *Properties) Parse(tag string) {
	// For example: "varint,2,opt,name=field_name,proto3"
	for len(tag) > 0 {
		i := strings.IndexByte(tag, ',')
		if i < 0 {
			i = len(tag)
		}
		switch s := tag[:i]; {
		case strings.HasPrefix(s, "name="):
			p.OrigName = s[len("name="):]
		case strings.HasPrefix(s, "json="):
			p.JSONName = s[len("json="):]
		case strings.HasPrefix(s, "enum="):
			p.Enum = s[len("enum="):]
		case strings.Trim(s, "0123456789") == "":
			n, _ := strconv.ParseUint(s, 10, 32)
			p.Tag = wire.Number(n)
		case s == "rep":
			p.Repeated = true
		case s == "varint" || s == "zigzag32" || s == "zigzag64":
			p.Wire = s
			p.WireType = wire.VarintType
		case s == "fixed32":
			p.Wire = s
			p.WireType = wire.Fixed32Type
		case s == "fixed64":
			p.Wire = s
			p.WireType = wire.Fixed64Type
		case s == "bytes":
			p.Wire = s
			p.WireType = wire.BytesType
		case s == "packed":
			p.Packed = true
		case s == "proto3":
			p.Proto3 = true
		case s == "oneof":
			p.Oneof = true
		}
		tag = strings.TrimPrefix(tag[i:], ",")
	}
}

func (p *Properties) init(typ reflect.Type, name, tag string, f *reflect.StructField) {
	p.Name = name
	p.OrigName = name
	p.fieldIndex = -1
	if tag == "" {
		return
	}
	p.Parse(tag)
	if !p.Tag.IsValid() {
		panic(fmt.Sprintf("proto: field %q has invalid number %d", name, p.Tag))
	}

	if typ == nil {
		return
	}
	switch typ.Kind() {
	case reflect.Ptr:
		if typ.Elem().Kind() == reflect.Struct {
			p.stype = typ.Elem()
		}
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Ptr && typ.Elem().Elem().Kind() == reflect.Struct {
			p.stype = typ.Elem().Elem()
		}
	case reflect.Map:
		p.mtype = typ
		p.MapKeyProp = new(Properties)
		p.MapKeyProp.init(nil, "Key", f.Tag.Get("protobuf_key"), nil)
		p.MapValProp = new(Properties)
		p.MapValProp.init(nil, "Value", f.Tag.Get("protobuf_val"), nil)
		if !isValidMapKey(p.mtype.Key()) {
			panic(fmt.Sprintf("proto: field %q has invalid map key type %v", name, p.mtype.Key()))
		}
		if vt := p.mtype.Elem(); vt.Kind() == reflect.Ptr && vt.Elem().Kind() == reflect.Struct {
			p.MapValProp.stype = vt.Elem()
		}
	}
}

// isValidMapKey reports whether t is a permitted map key type: integral,
// bool, or string, but never float, bytes, or message.
func isValidMapKey(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int32, reflect.Int64, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

var propertiesCache sync.Map // map[reflect.Type]*StructProperties

// GetProperties returns the descriptor table for the type represented by t,
// which must be a generated struct type of a protocol message. The table is
// built on first use and immutable afterwards.
func GetProperties(t reflect.Type) *StructProperties {
	if p, ok := propertiesCache.Load(t); ok {
		return p.(*StructProperties)
	}
	p, _ := propertiesCache.LoadOrStore(t, newProperties(t))
	return p.(*StructProperties)
}

var messageStateType = reflect.TypeOf(MessageState{})

func newProperties(t reflect.Type) *StructProperties {
	if t.Kind() != reflect.Struct {
		panic("proto: type must have kind struct")
	}

	prop := &StructProperties{stateField: -1}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == messageStateType {
			prop.stateField = i
			continue
		}
		if name := f.Tag.Get("protobuf_oneof"); name != "" {
			if prop.oneofFields == nil {
				prop.oneofFields = make(map[string]int)
			}
			prop.oneofFields[name] = i
			continue
		}
		tag := f.Tag.Get("protobuf")
		if tag == "" {
			continue
		}
		p := new(Properties)
		p.init(f.Type, f.Name, tag, &f)
		p.fieldIndex = i
		prop.Prop = append(prop.Prop, p)
	}

	sort.Slice(prop.Prop, func(i, j int) bool { return prop.Prop[i].Tag < prop.Prop[j].Tag })
	prop.byName = make(map[string]int, len(prop.Prop))
	for i, p := range prop.Prop {
		if _, dup := prop.byNumber.get(int(p.Tag)); dup {
			panic(fmt.Sprintf("proto: %v has duplicate field number %d", t, p.Tag))
		}
		prop.byNumber.put(int(p.Tag), i)
		prop.byName[p.OrigName] = i
	}

	// Construct a mapping of oneof field names to properties.
	var oneofWrappers []interface{}
	if fn, ok := reflect.PtrTo(t).MethodByName("XXX_OneofWrappers"); ok {
		oneofWrappers = fn.Func.Call([]reflect.Value{reflect.Zero(fn.Type.In(0))})[0].Interface().([]interface{})
	}
	if len(oneofWrappers) > 0 {
		prop.OneofTypes = make(map[string]*OneofProperties)
		prop.oneofByNumber = make(map[wire.Number]*OneofProperties)
		prop.oneofByType = make(map[reflect.Type]*OneofProperties)
		for _, wrapper := range oneofWrappers {
			op := &OneofProperties{
				Type: reflect.ValueOf(wrapper).Type(), // *T
				Prop: new(Properties),
			}
			f := op.Type.Elem().Field(0)
			op.Prop.init(f.Type, f.Name, f.Tag.Get("protobuf"), &f)
			op.Prop.fieldIndex = 0

			// Determine the struct field that contains this oneof.
			// Each wrapper is assignable to exactly one parent field.
			op.Field = -1
			for name, i := range prop.oneofFields {
				if op.Type.AssignableTo(t.Field(i).Type) {
					op.Field = i
					op.Group = name
					break
				}
			}
			if op.Field < 0 {
				panic(fmt.Sprintf("proto: %v: no oneof field accepts wrapper %v", t, op.Type))
			}
			if prop.ByNumber(op.Prop.Tag) != nil {
				panic(fmt.Sprintf("proto: %v has duplicate field number %d", t, op.Prop.Tag))
			}
			prop.OneofTypes[op.Prop.OrigName] = op
			prop.oneofByNumber[op.Prop.Tag] = op
			prop.oneofByType[op.Type] = op
		}
	}

	prop.plan = buildPlan(prop)
	return prop
}

// buildPlan computes the serialization order: plain fields at their numbers
// and each oneof group positioned at its smallest member number.
func buildPlan(sp *StructProperties) []planStep {
	var plan []planStep
	for _, p := range sp.Prop {
		plan = append(plan, planStep{num: p.Tag, prop: p, oneofField: -1})
	}
	groupMin := make(map[int]wire.Number)
	for _, op := range sp.OneofTypes {
		if min, ok := groupMin[op.Field]; !ok || op.Prop.Tag < min {
			groupMin[op.Field] = op.Prop.Tag
		}
	}
	for fi, num := range groupMin {
		plan = append(plan, planStep{num: num, oneofField: fi})
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].num < plan[j].num })
	return plan
}

// stateOf returns the embedded MessageState of the struct value v, or nil.
func (sp *StructProperties) stateOf(v reflect.Value) *MessageState {
	if sp.stateField < 0 {
		return nil
	}
	return v.Field(sp.stateField).Addr().Interface().(*MessageState)
}

// stateOf returns the embedded MessageState of message m, or nil.
func stateOf(m Message) *MessageState {
	if m == nil {
		return nil
	}
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	v = v.Elem()
	return GetProperties(v.Type()).stateOf(v)
}
