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

package fs

import (
	"strconv"
	"strings"

	"github.com/jacobsa/syncutil"

	"github.com/go-ffs/ffs/config"
	"github.com/go-ffs/ffs/value"
)

// NewFromValue builds an FS by ingesting v, per spec.md §4.3's
// ingestion algorithm: v's AST node count is used to preallocate the
// table, then a depth-first worklist assigns inode numbers in
// discovery order.
//
// v must be an Array or Object; a scalar root cannot be ingested
// because there is nothing to mount as the root directory. This
// mirrors original_source/src/json.rs's fs(), which rejects a
// primitive root the same way.
func NewFromValue(cfg config.Config, v value.Value) (*FS, error) {
	if !v.IsArray() && !v.IsObject() {
		return nil, &PrimitiveRootError{Kind: v.Kind().String()}
	}

	n := v.Size()
	fs := &FS{
		config: cfg,
		// Index 0 is reserved and stays nil; indices 1..n hold the
		// ingested tree once the worklist below finishes.
		inodes: make([]*Inode, n+1),
	}

	type work struct {
		parent Ino
		ino    Ino
		v      value.Value
	}

	// The root is always at inode 1 and is its own parent.
	worklist := []work{{parent: RootIno, ino: RootIno, v: v}}
	next := Ino(2)

	for len(worklist) > 0 {
		w := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		switch w.v.Kind() {
		case value.Array:
			elems := w.v.Elements()
			entry := NewDirEntry(DirList)
			width := 1
			if cfg.PadElementNames {
				width = paddedWidth(len(elems))
			}
			for i, e := range elems {
				childIno := next
				next++
				name := padIndex(i, width)
				entry.Children[name] = Child{Kind: childKind(e), Ino: childIno}
				worklist = append(worklist, work{parent: w.ino, ino: childIno, v: e})
			}
			fs.inodes[w.ino] = &Inode{Parent: w.parent, Ino: w.ino, Entry: entry}

		case value.Object:
			entry := NewDirEntry(DirNamed)
			for _, f := range w.v.Fields() {
				name := uniqueName(entry.Children, cfg.NormalizeName(f.Key))
				childIno := next
				next++
				entry.Children[name] = Child{Kind: childKind(f.Value), Ino: childIno}
				worklist = append(worklist, work{parent: w.ino, ino: childIno, v: f.Value})
			}
			fs.inodes[w.ino] = &Inode{Parent: w.parent, Ino: w.ino, Entry: entry}

		default:
			fs.inodes[w.ino] = &Inode{Parent: w.parent, Ino: w.ino, Entry: NewFileEntry(renderScalar(w.v, cfg.AddNewlines))}
		}
	}

	fs.mu = syncutil.NewInvariantMutex(fs.checkInvariants)
	return fs, nil
}

func childKind(v value.Value) Kind {
	if v.IsArray() || v.IsObject() {
		return KindDir
	}
	return KindFile
}

// renderScalar implements spec.md §4.3's scalar rendering rule: Null
// becomes empty or "\n"; Bool becomes "true"/"false" plus newline;
// Number becomes its canonical text plus newline; String is left as-is
// if already newline-terminated, else has a newline appended. The
// newline is only ever added when add_newlines is set.
func renderScalar(v value.Value, addNewlines bool) []byte {
	nl := ""
	if addNewlines {
		nl = "\n"
	}

	switch v.Kind() {
	case value.Null:
		return []byte(nl)
	case value.Bool:
		if v.Bool() {
			return []byte("true" + nl)
		}
		return []byte("false" + nl)
	case value.Number:
		return []byte(v.Number().String() + nl)
	case value.String:
		s := v.Str()
		if addNewlines && !strings.HasSuffix(s, "\n") {
			s += nl
		}
		return []byte(s)
	default:
		return nil
	}
}

// uniqueName resolves a name collision in children by appending "_"
// until the name is unused, per spec.md §3 invariant 4.
func uniqueName(children map[string]Child, name string) string {
	for {
		if _, exists := children[name]; !exists {
			return name
		}
		name += "_"
	}
}

// paddedWidth computes the zero-pad width for a List directory of n
// elements, per spec.md §4.1's pad_element_names / §8 scenario 2
// ("for [] of length 100, width is 3"). The reference implementation
// computes ceil(log10(n)), which is sensitive to floating-point error
// at exact powers of ten (100f64.log10() can round to just over 2.0);
// the documented example treats that rounding as intended behavior, so
// this counts the decimal digits of n itself rather than n-1, which
// reproduces the documented width at both n=3 (width 1) and n=100
// (width 3) deterministically.
func paddedWidth(n int) int {
	if n <= 1 {
		return 1
	}
	digits := 0
	for x := n; x > 0; x /= 10 {
		digits++
	}
	return digits
}

func padIndex(i, width int) string {
	s := strconv.Itoa(i)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
