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

package main

import (
	"fmt"
	"io"

	"github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/internal/format/jsonfmt"
	"github.com/go-ffs/ffs/internal/format/yamlfmt"
	"github.com/go-ffs/ffs/value"
)

// parseFunc turns bytes into a value.Value; fs.Serialize turns a
// write-back tree into bytes. Selecting one of each by tag is the only
// thing that differs between the json and yaml mount modes.
type parseFunc func(io.Reader) (value.Value, error)

func parserFor(tag string) (parseFunc, error) {
	switch tag {
	case "json":
		return jsonfmt.Parse, nil
	case "yaml", "yml":
		return yamlfmt.Parse, nil
	default:
		return nil, fmt.Errorf("unknown input format %q", tag)
	}
}

func serializerFor(tag string, addNewlines bool) (fs.Serialize, error) {
	switch tag {
	case "json":
		return jsonfmt.Serialize(addNewlines), nil
	case "yaml", "yml":
		return yamlfmt.Serialize(addNewlines), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", tag)
	}
}
