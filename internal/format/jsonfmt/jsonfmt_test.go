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

package jsonfmt_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"

	"github.com/go-ffs/ffs/config"
	"github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/internal/format/jsonfmt"
)

func TestJSONFmt(t *testing.T) { RunTests(t) }

type JSONFmtTest struct{}

func init() { RegisterTestSuite(&JSONFmtTest{}) }

func (t *JSONFmtTest) Parse_PreservesIntegerText() {
	v, err := jsonfmt.Parse(strings.NewReader(`{"n": 123456789012345678}`))
	AssertEq(nil, err)
	AssertTrue(v.IsObject())
	AssertEq(1, len(v.Fields()))
	ExpectEq("123456789012345678", v.Fields()[0].Value.Number().String())
}

func (t *JSONFmtTest) Parse_RejectsTrailingData() {
	_, err := jsonfmt.Parse(strings.NewReader(`{} {}`))
	ExpectNe(nil, err)
}

func (t *JSONFmtTest) Serialize_ObjectSortsKeysLexically() {
	tree := fs.Node{
		Kind:    fs.KindDir,
		DirType: fs.DirNamed,
		Children: map[string]fs.Node{
			"b": {Kind: fs.KindFile, Data: []byte("1")},
			"a": {Kind: fs.KindFile, Data: []byte("2")},
		},
	}
	out, err := jsonfmt.Serialize(false)(tree)
	AssertEq(nil, err)
	ExpectEq(`{"a":2,"b":1}`, string(out))
}

func (t *JSONFmtTest) Serialize_ListSortsNumerically() {
	tree := fs.Node{
		Kind:    fs.KindDir,
		DirType: fs.DirList,
		Children: map[string]fs.Node{
			"10": {Kind: fs.KindFile, Data: []byte("1")},
			"2":  {Kind: fs.KindFile, Data: []byte("0")},
		},
	}
	out, err := jsonfmt.Serialize(false)(tree)
	AssertEq(nil, err)
	ExpectEq(`[0,1]`, string(out))
}

func (t *JSONFmtTest) Serialize_StripsAddedNewlineBeforeRecovery() {
	tree := fs.Node{Kind: fs.KindFile, Data: []byte("true\n")}
	out, err := jsonfmt.Serialize(true)(tree)
	AssertEq(nil, err)
	ExpectEq("true", string(out))
}

func (t *JSONFmtTest) Serialize_RecoversStringWhenNotNullBoolOrNumber() {
	tree := fs.Node{Kind: fs.KindFile, Data: []byte("hello")}
	out, err := jsonfmt.Serialize(false)(tree)
	AssertEq(nil, err)
	ExpectEq(`"hello"`, string(out))
}

func (t *JSONFmtTest) RoundTrip_ObjectWithArray() {
	const input = `{"list":[1,2,3],"name":"x"}`
	v, err := jsonfmt.Parse(strings.NewReader(input))
	AssertEq(nil, err)
	ExpectTrue(v.IsObject())
	ExpectThat(len(v.Fields()), Equals(2))

	f, err := fs.NewFromValue(config.New(0, 0, time.Unix(0, 0)), v)
	AssertEq(nil, err)
	f.RLock()
	tree := f.Tree()
	f.RUnlock()

	out, err := jsonfmt.Serialize(false)(tree)
	AssertEq(nil, err)
	ExpectEq(input, string(out))
}
