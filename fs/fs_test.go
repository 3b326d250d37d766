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

package fs_test

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"

	"github.com/go-ffs/ffs/config"
	"github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/value"
)

func TestFS(t *testing.T) { RunTests(t) }

func num(n string) value.Value { return value.NewNumber(json.Number(n)) }

func testConfig() config.Config {
	return config.New(1000, 1000, time.Unix(0, 0))
}

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type FSTest struct{}

func init() { RegisterTestSuite(&FSTest{}) }

////////////////////////////////////////////////////////////////////////
// Test functions
////////////////////////////////////////////////////////////////////////

// Scenario 1: Object ingestion.
func (t *FSTest) ObjectIngestion() {
	cfg := testConfig()
	cfg.AddNewlines = true

	doc := value.NewObject([]value.Field{
		{Key: "a", Value: num("1")},
		{Key: "b", Value: value.NewString("hi")},
	})

	f, err := fs.NewFromValue(cfg, doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	root, err := f.Get(fs.RootIno)
	AssertEq(nil, err)
	ExpectTrue(root.Entry.IsDir())
	ExpectEq(fs.DirNamed, root.Entry.DirType)
	ExpectThat(childNames(root), ElementsAre("a", "b"))

	a, err := f.Get(root.Entry.Children["a"].Ino)
	AssertEq(nil, err)
	ExpectEq("1\n", string(a.Entry.Data))
	ExpectEq(root.Ino, a.Parent)

	b, err := f.Get(root.Entry.Children["b"].Ino)
	AssertEq(nil, err)
	ExpectEq("hi\n", string(b.Entry.Data))
}

// Scenario 2: Array ingestion with padding.
func (t *FSTest) ArrayIngestion_Padding() {
	cfg := testConfig()
	cfg.PadElementNames = true

	doc := value.NewArray([]value.Value{num("10"), num("20"), num("30")})
	f, err := fs.NewFromValue(cfg, doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	root, err := f.Get(fs.RootIno)
	AssertEq(nil, err)
	ExpectEq(fs.DirList, root.Entry.DirType)
	ExpectThat(childNames(root), ElementsAre("0", "1", "2"))
}

// Scenario 2 (continued): a 100-element array pads to width 3.
func (t *FSTest) ArrayIngestion_PaddingWidthAtHundred() {
	cfg := testConfig()
	cfg.PadElementNames = true

	elems := make([]value.Value, 100)
	for i := range elems {
		elems[i] = num("0")
	}
	doc := value.NewArray(elems)

	f, err := fs.NewFromValue(cfg, doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	root, err := f.Get(fs.RootIno)
	AssertEq(nil, err)
	if _, ok := root.Entry.Children["000"]; !ok {
		t.T.Fatalf("expected child named %q, got %v", "000", childNames(root))
	}
}

// Scenario 3: key collision.
func (t *FSTest) KeyCollision() {
	cfg := testConfig()
	cfg.NormalizeName = func(field string) string {
		out := make([]rune, 0, len(field))
		for _, r := range field {
			if r == ' ' {
				out = append(out, '_')
			} else {
				out = append(out, r)
			}
		}
		return string(out)
	}

	doc := value.NewObject([]value.Field{
		{Key: "a b", Value: num("1")},
		{Key: "a_b", Value: num("2")},
	})

	f, err := fs.NewFromValue(cfg, doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	root, err := f.Get(fs.RootIno)
	AssertEq(nil, err)
	ExpectThat(childNames(root), ElementsAre("a_b", "a_b_"))
}

// PrimitiveRoot: a scalar cannot be ingested.
func (t *FSTest) PrimitiveRoot() {
	_, err := fs.NewFromValue(testConfig(), num("1"))
	AssertNe(nil, err)
	_, ok := err.(*fs.PrimitiveRootError)
	ExpectTrue(ok)
}

// Attr.Ino always equals the inode's own number.
func (t *FSTest) Attr_InoMatches() {
	cfg := testConfig()
	doc := value.NewObject([]value.Field{{Key: "a", Value: num("1")}})
	f, err := fs.NewFromValue(cfg, doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	for ino := fs.Ino(1); int(ino) < f.Len(); ino++ {
		n, err := f.Get(ino)
		AssertEq(nil, err)
		ExpectEq(ino, f.Attr(n).Ino)
	}
}

// Root's parent is itself.
func (t *FSTest) Root_IsOwnParent() {
	doc := value.NewObject(nil)
	f, err := fs.NewFromValue(testConfig(), doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	root, err := f.Get(fs.RootIno)
	AssertEq(nil, err)
	ExpectEq(fs.RootIno, root.Parent)
}

// Directory nlink is 2 plus the number of subdirectory children.
func (t *FSTest) Attr_Nlink() {
	cfg := testConfig()
	doc := value.NewObject([]value.Field{
		{Key: "dir", Value: value.NewObject(nil)},
		{Key: "file", Value: num("1")},
	})
	f, err := fs.NewFromValue(cfg, doc)
	AssertEq(nil, err)

	f.RLock()
	defer f.RUnlock()

	root, err := f.Get(fs.RootIno)
	AssertEq(nil, err)
	ExpectEq(uint32(3), f.Attr(root).Nlink)

	file, err := f.Get(root.Entry.Children["file"].Ino)
	AssertEq(nil, err)
	ExpectEq(uint32(1), f.Attr(file).Nlink)
}

func childNames(n *fs.Inode) []string {
	names := make([]string, 0, len(n.Entry.Children))
	for name := range n.Entry.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
