// Copyright 2025 The LightPB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package json

import (
	"math"
	"testing"
)

func TestDecoderSequence(t *testing.T) {
	in := `{"a": 1, "b": [true, null, "séq"], "c": {"d": -2.5e3}}`
	d := NewDecoder([]byte(in))

	wantTypes := []Type{
		StartObject,
		Name, Number,
		Name, StartArray, Bool, Null, String, EndArray,
		Name, StartObject, Name, Number, EndObject,
		EndObject,
		EOF,
	}
	for i, want := range wantTypes {
		v, err := d.Read()
		if err != nil {
			t.Fatalf("Read() #%d error: %v", i, err)
		}
		if v.Type() != want {
			t.Fatalf("Read() #%d = %v, want %v", i, v.Type(), want)
		}
	}
}

func TestDecoderValues(t *testing.T) {
	d := NewDecoder([]byte(`["séq", 42, "300", -2.5]`))
	d.Read() // [

	v, _ := d.Read()
	if got := v.String(); got != "séq" {
		t.Errorf("String() = %q, want %q", got, "séq")
	}

	v, _ = d.Read()
	if n, err := v.Int(32); err != nil || n != 42 {
		t.Errorf("Int() = (%d, %v), want 42", n, err)
	}

	v, _ = d.Read()
	if v.Type() != String {
		t.Errorf("Type() = %v, want String", v.Type())
	}

	v, _ = d.Read()
	if f, err := v.Float(64); err != nil || f != -2.5 {
		t.Errorf("Float() = (%v, %v), want -2.5", f, err)
	}
	if _, err := v.Int(64); err == nil {
		t.Error("Int() on fractional number succeeded, want error")
	}
}

func TestDecoderPeek(t *testing.T) {
	d := NewDecoder([]byte(`[null]`))
	d.Read() // [
	if got := d.Peek(); got != Null {
		t.Errorf("Peek() = %v, want Null", got)
	}
	// Peek must not consume.
	if v, err := d.Read(); err != nil || v.Type() != Null {
		t.Errorf("Read() after Peek = (%v, %v), want Null", v.Type(), err)
	}
}

func TestDecoderErrors(t *testing.T) {
	tests := []string{
		`{`,
		`[1,]`,
		`{"a" 1}`,
		`{"a":}`,
		`tru`,
		`01`,
		`"unterminated`,
		"\"bad\xff\"",
		`{"a":1}}`,
	}
	for _, in := range tests {
		d := NewDecoder([]byte(in))
		var err error
		for err == nil {
			var v Value
			v, err = d.Read()
			if err == nil && v.Type() == EOF {
				t.Errorf("Decoder(%q) reached EOF without error", in)
				break
			}
		}
	}
}

func TestEncoder(t *testing.T) {
	e, err := NewEncoder("")
	if err != nil {
		t.Fatal(err)
	}
	e.StartObject()
	e.WriteName("a")
	e.WriteInt(-1)
	e.WriteName("b")
	e.StartArray()
	e.WriteBool(true)
	e.WriteNull()
	e.WriteString("s")
	e.WriteFloat(math.NaN(), 64)
	e.WriteFloat(math.Inf(-1), 64)
	e.EndArray()
	e.WriteName("c")
	e.WriteUint(300)
	e.EndObject()

	want := `{"a":-1,"b":[true,null,"s","NaN","-Infinity"],"c":300}`
	if got := string(e.Bytes()); got != want {
		t.Errorf("Encoder output = %s, want %s", got, want)
	}
}

func TestEncoderIndent(t *testing.T) {
	if _, err := NewEncoder("x"); err == nil {
		t.Error("NewEncoder with non-whitespace indent succeeded, want error")
	}

	e, _ := NewEncoder("\t")
	e.StartObject()
	e.WriteName("a")
	e.WriteInt(1)
	e.EndObject()
	want := "{\n\t\"a\": 1\n}"
	if got := string(e.Bytes()); got != want {
		t.Errorf("indented output = %q, want %q", got, want)
	}
}
