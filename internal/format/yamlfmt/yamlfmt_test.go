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

package yamlfmt_test

import (
	"strings"
	"testing"

	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"

	"github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/internal/format/yamlfmt"
	"github.com/go-ffs/ffs/value"
)

func TestYAMLFmt(t *testing.T) { RunTests(t) }

type YAMLFmtTest struct{}

func init() { RegisterTestSuite(&YAMLFmtTest{}) }

func (t *YAMLFmtTest) Parse_IntAndFloatBecomeNumbers() {
	v, err := yamlfmt.Parse(strings.NewReader("a: 1\nb: 1.5\n"))
	AssertEq(nil, err)
	AssertTrue(v.IsObject())
	for _, f := range v.Fields() {
		ExpectEq(value.Number, f.Value.Kind())
	}
}

func (t *YAMLFmtTest) Parse_NullTag() {
	v, err := yamlfmt.Parse(strings.NewReader("a: ~\n"))
	AssertEq(nil, err)
	AssertTrue(v.IsObject())
	ExpectEq("null", v.Fields()[0].Value.Kind().String())
}

func (t *YAMLFmtTest) Serialize_ScalarRecoversBool() {
	tree := fs.Node{Kind: fs.KindFile, Data: []byte("true")}
	out, err := yamlfmt.Serialize(false)(tree)
	AssertEq(nil, err)
	ExpectEq("true\n", string(out))
}

func (t *YAMLFmtTest) Serialize_MappingSortsKeysLexically() {
	tree := fs.Node{
		Kind:    fs.KindDir,
		DirType: fs.DirNamed,
		Children: map[string]fs.Node{
			"z": {Kind: fs.KindFile, Data: []byte("1")},
			"a": {Kind: fs.KindFile, Data: []byte("2")},
		},
	}
	out, err := yamlfmt.Serialize(false)(tree)
	AssertEq(nil, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	AssertEq(2, len(lines))
	ExpectTrue(strings.HasPrefix(lines[0], "a:"))
	ExpectTrue(strings.HasPrefix(lines[1], "z:"))
}

func (t *YAMLFmtTest) Serialize_StripsAddedNewlineBeforeRecovery() {
	tree := fs.Node{Kind: fs.KindFile, Data: []byte("42\n")}
	out, err := yamlfmt.Serialize(true)(tree)
	AssertEq(nil, err)
	ExpectEq("42\n", string(out))
}
