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

// Package jsonfmt is the JSON format backend: bytes → value.Value on
// mount, and fs.Node → bytes on write-back. It is grounded directly in
// original_source/src/json.rs's use of serde_json, translated to
// encoding/json with UseNumber() so integers and floats keep their
// original textual form instead of collapsing through float64.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/value"
)

// Parse reads a single JSON document from r into a value.Value. It
// fails if r contains anything beyond one JSON value (no partial
// trees), matching spec.md §6's parser contract.
func Parse(r io.Reader) (value.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return value.Value{}, fmt.Errorf("jsonfmt: decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return value.Value{}, fmt.Errorf("jsonfmt: trailing data after JSON document")
	}

	return fromRaw(raw), nil
}

func fromRaw(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.NewNull()
	case bool:
		return value.NewBool(v)
	case json.Number:
		return value.NewNumber(v)
	case string:
		return value.NewString(v)
	case []interface{}:
		elems := make([]value.Value, len(v))
		for i, e := range v {
			elems[i] = fromRaw(e)
		}
		return value.NewArray(elems)
	case map[string]interface{}:
		fields := make([]value.Field, 0, len(v))
		for k, fv := range v {
			fields = append(fields, value.Field{Key: k, Value: fromRaw(fv)})
		}
		return value.NewObject(fields)
	default:
		// encoding/json with UseNumber() only ever produces the cases
		// above.
		panic(fmt.Sprintf("jsonfmt: unexpected decoded type %T", raw))
	}
}

// Serialize renders an fs.Node tree as JSON, honoring addNewlines the
// same way ingestion applied it: a trailing newline added by ingestion
// to a scalar file's bytes is stripped back off before being treated as
// the scalar's text, per spec.md §6 ("trailing newline stripped if
// add_newlines").
func Serialize(addNewlines bool) fs.Serialize {
	return func(n fs.Node) ([]byte, error) {
		var buf bytes.Buffer
		if err := writeNode(&buf, n, addNewlines); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func writeNode(buf *bytes.Buffer, n fs.Node, addNewlines bool) error {
	if n.Kind == fs.KindFile {
		return writeScalar(buf, n.Data, addNewlines)
	}

	if n.DirType == fs.DirList {
		names := make([]string, 0, len(n.Children))
		for name := range n.Children {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			a, errA := strconv.Atoi(names[i])
			b, errB := strconv.Atoi(names[j])
			if errA == nil && errB == nil {
				return a < b
			}
			return names[i] < names[j]
		})

		buf.WriteByte('[')
		for i, name := range names {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, n.Children[name], addNewlines); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeNode(buf, n.Children[name], addNewlines); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeScalar recovers the scalar value a File's bytes represent,
// attempting null, then bool, then number, falling back to string -
// spec.md §6's "JSON: attempt Null/Bool/Number; else String" rule.
func writeScalar(buf *bytes.Buffer, data []byte, addNewlines bool) error {
	text := string(data)
	if addNewlines {
		text = strings.TrimSuffix(text, "\n")
	}

	switch {
	case text == "":
		buf.WriteString("null")
		return nil
	case text == "null":
		buf.WriteString("null")
		return nil
	case text == "true" || text == "false":
		buf.WriteString(text)
		return nil
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		buf.WriteString(text)
		return nil
	}

	encoded, err := json.Marshal(text)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
