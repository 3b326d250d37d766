// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value holds the tagged-union document representation shared by
// every format backend (internal/format/jsonfmt, internal/format/yamlfmt)
// and consumed by the inode store in package fs. A parser turns bytes into
// a Value; a serializer turns a Value back into bytes. Neither direction
// is aware of inodes, FUSE, or any other filesystem concept.
package value

import "encoding/json"

// Kind identifies which of the six variants a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Field is one key/value pair of an Object, in the order the parser
// surfaced it. Ingestion does not require stable ordering across
// different parses of the same bytes; it only needs a single,
// deterministic pass over whatever order a given parse returns.
type Field struct {
	Key   string
	Value Value
}

// Value is the parsed document: Null, Bool, Number, String, Array, or
// Object. The zero Value is Null.
//
// Number is kept as its canonical textual form (json.Number is just a
// string) rather than float64 so that large integers and YAML's distinct
// int/float literals survive a round trip without precision loss.
type Value struct {
	kind   Kind
	b      bool
	num    json.Number
	s      string
	arr    []Value
	fields []Field
}

func NewNull() Value { return Value{kind: Null} }

func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

func NewNumber(n json.Number) Value { return Value{kind: Number, num: n} }

func NewString(s string) Value { return Value{kind: String, s: s} }

func NewArray(elems []Value) Value { return Value{kind: Array, arr: elems} }

func NewObject(fields []Field) Value { return Value{kind: Object, fields: fields} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsArray() bool  { return v.kind == Array }
func (v Value) IsObject() bool { return v.kind == Object }

// Bool returns the boolean payload. Only meaningful when Kind() == Bool.
func (v Value) Bool() bool { return v.b }

// Number returns the canonical textual number. Only meaningful when
// Kind() == Number.
func (v Value) Number() json.Number { return v.num }

// Str returns the string payload. Only meaningful when Kind() == String.
func (v Value) Str() string { return v.s }

// Elements returns an Array's children in order. Only meaningful when
// Kind() == Array.
func (v Value) Elements() []Value { return v.arr }

// Fields returns an Object's fields in parser order. Only meaningful
// when Kind() == Object.
func (v Value) Fields() []Field { return v.fields }

// Size is the number of AST nodes used to represent v, i.e. v itself plus
// every descendant. Used to preallocate the inode table before ingestion.
func (v Value) Size() int {
	switch v.kind {
	case Array:
		n := 1
		for _, e := range v.arr {
			n += e.Size()
		}
		return n
	case Object:
		n := 1
		for _, f := range v.fields {
			n += f.Value.Size()
		}
		return n
	default:
		return 1
	}
}
