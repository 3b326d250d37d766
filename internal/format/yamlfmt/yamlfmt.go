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

// Package yamlfmt is the YAML format backend named in spec.md §1 as a
// parallel format to JSON but left unelaborated by the distillation.
// It follows the same add_newlines/padding scalar rules as jsonfmt,
// mapping YAML's native tagged scalars onto the same six-variant
// value.Value rather than introducing a new Value kind, per
// SPEC_FULL.md §6.
package yamlfmt

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
	"gopkg.in/yaml.v3"
)

// Parse reads a single YAML document from r into a value.Value.
func Parse(r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, fmt.Errorf("yamlfmt: read: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return value.Value{}, fmt.Errorf("yamlfmt: decode: %w", err)
	}
	if len(node.Content) == 0 {
		return value.NewNull(), nil
	}

	return fromNode(node.Content[0]), nil
}

func fromNode(n *yaml.Node) value.Value {
	switch n.Kind {
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		elems := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			elems[i] = fromNode(c)
		}
		return value.NewArray(elems)
	case yaml.MappingNode:
		fields := make([]value.Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			fields = append(fields, value.Field{Key: n.Content[i].Value, Value: fromNode(n.Content[i+1])})
		}
		return value.NewObject(fields)
	case yaml.AliasNode:
		return fromNode(n.Alias)
	default:
		return value.NewNull()
	}
}

func fromScalar(n *yaml.Node) value.Value {
	switch n.Tag {
	case "!!null":
		return value.NewNull()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return value.NewBool(b)
		}
		return value.NewString(n.Value)
	case "!!int", "!!float":
		return value.NewNumber(json.Number(n.Value))
	default:
		return value.NewString(n.Value)
	}
}

// Serialize renders an fs.Node tree as YAML, following the same
// scalar-recovery and newline-stripping rules as jsonfmt.Serialize.
func Serialize(addNewlines bool) fs.Serialize {
	return func(n fs.Node) ([]byte, error) {
		node, err := toYAMLNode(n, addNewlines)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func toYAMLNode(n fs.Node, addNewlines bool) (*yaml.Node, error) {
	if n.Kind == fs.KindFile {
		return scalarNode(n.Data, addNewlines), nil
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

		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, name := range names {
			child, err := toYAMLNode(n.Children[name], addNewlines)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	}

	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range names {
		child, err := toYAMLNode(n.Children[name], addNewlines)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, child)
	}
	return m, nil
}

func scalarNode(data []byte, addNewlines bool) *yaml.Node {
	text := string(data)
	if addNewlines {
		text = strings.TrimSuffix(text, "\n")
	}

	switch {
	case text == "" || text == "null" || text == "~":
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case text == "true" || text == "false":
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: text}
	}

	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: text}
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text}
}
