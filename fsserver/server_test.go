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

package fsserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/jacobsa/ogletest"

	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"

	"github.com/go-ffs/ffs/config"
	gffs "github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/fsserver"
	"github.com/go-ffs/ffs/value"
)

func TestServer(t *testing.T) { RunTests(t) }

const ownerUid = uint32(1000)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(doc value.Value) (*fsserver.Server, *gffs.FS) {
	cfg := config.New(ownerUid, ownerUid, time.Unix(0, 0))
	store, err := gffs.NewFromValue(cfg, doc)
	if err != nil {
		panic(err)
	}
	var sink bytes.Buffer
	s := fsserver.New(store, &sink, func(gffs.Node) ([]byte, error) { return nil, nil }, discardLogger())
	return s, store
}

func ownerHeader(ino gffs.Ino) fuse.InHeader {
	var h fuse.InHeader
	h.NodeId = uint64(ino)
	h.Caller.Uid = ownerUid
	h.Caller.Gid = ownerUid
	return h
}

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type ServerTest struct{}

func init() { RegisterTestSuite(&ServerTest{}) }

////////////////////////////////////////////////////////////////////////
// Scenario 4: mkdir then rmdir.
////////////////////////////////////////////////////////////////////////

func (t *ServerTest) Mkdir_ThenLookup_ThenRmdir() {
	s, _ := newServer(value.NewObject(nil))

	var mkOut fuse.EntryOut
	mkIn := &fuse.MkdirIn{Mode: 0755}
	mkIn.InHeader = ownerHeader(gffs.RootIno)
	status := s.Mkdir(nil, mkIn, "sub", &mkOut)
	AssertEq(fuse.OK, status)

	var lookupOut fuse.EntryOut
	h := ownerHeader(gffs.RootIno)
	status = s.Lookup(nil, &h, "sub", &lookupOut)
	AssertEq(fuse.OK, status)
	ExpectEq(mkOut.NodeId, lookupOut.NodeId)

	rmHeader := ownerHeader(gffs.RootIno)
	status = s.Rmdir(nil, &rmHeader, "sub")
	AssertEq(fuse.OK, status)

	status = s.Lookup(nil, &h, "sub", &lookupOut)
	ExpectEq(fuse.ENOENT, status)
}

////////////////////////////////////////////////////////////////////////
// Scenario 5: rmdir on a non-empty directory fails.
////////////////////////////////////////////////////////////////////////

func (t *ServerTest) Rmdir_NonEmpty_Fails() {
	doc := value.NewObject([]value.Field{
		{Key: "sub", Value: value.NewObject([]value.Field{
			{Key: "child", Value: value.NewNumber(json.Number("1"))},
		})},
	})
	s, _ := newServer(doc)

	h := ownerHeader(gffs.RootIno)
	status := s.Rmdir(nil, &h, "sub")
	ExpectEq(fuse.Status(unix.ENOTEMPTY), status)
}

////////////////////////////////////////////////////////////////////////
// Scenario 6: rename across parents.
////////////////////////////////////////////////////////////////////////

func (t *ServerTest) Rename_AcrossParents() {
	doc := value.NewObject([]value.Field{
		{Key: "src", Value: value.NewObject([]value.Field{
			{Key: "f", Value: value.NewNumber(json.Number("1"))},
		})},
		{Key: "dst", Value: value.NewObject(nil)},
	})
	s, store := newServer(doc)

	store.RLock()
	root, err := store.Get(gffs.RootIno)
	AssertEq(nil, err)
	srcDirIno := root.Entry.Children["src"].Ino
	dstDirIno := root.Entry.Children["dst"].Ino
	store.RUnlock()

	renIn := &fuse.RenameIn{Newdir: uint64(dstDirIno)}
	renIn.InHeader = ownerHeader(srcDirIno)
	status := s.Rename(nil, renIn, "f", "moved")
	AssertEq(fuse.OK, status)

	var lookupOut fuse.EntryOut
	dstHeader := ownerHeader(dstDirIno)
	status = s.Lookup(nil, &dstHeader, "moved", &lookupOut)
	ExpectEq(fuse.OK, status)

	srcHeader := ownerHeader(srcDirIno)
	status = s.Lookup(nil, &srcHeader, "f", &lookupOut)
	ExpectEq(fuse.ENOENT, status)
}

////////////////////////////////////////////////////////////////////////
// Access and ownership.
////////////////////////////////////////////////////////////////////////

func (t *ServerTest) Mkdir_RejectsNonOwner() {
	s, _ := newServer(value.NewObject(nil))

	var out fuse.EntryOut
	in := &fuse.MkdirIn{Mode: 0755}
	in.NodeId = uint64(gffs.RootIno)
	in.Caller.Uid = ownerUid + 1

	status := s.Mkdir(nil, in, "sub", &out)
	ExpectEq(fuse.EACCES, status)
}

func (t *ServerTest) Access_OtherDeniedWhenModeExcludesOther() {
	cfg := config.New(ownerUid, ownerUid, time.Unix(0, 0))
	cfg.Dirmode = 0750
	store, err := gffs.NewFromValue(cfg, value.NewObject(nil))
	AssertEq(nil, err)

	var sink bytes.Buffer
	s := fsserver.New(store, &sink, func(gffs.Node) ([]byte, error) { return nil, nil }, discardLogger())

	in := &fuse.AccessIn{Mask: unix.X_OK}
	in.NodeId = uint64(gffs.RootIno)
	in.Caller.Uid = ownerUid + 1
	in.Caller.Gid = ownerUid + 1

	status := s.Access(nil, in)
	ExpectEq(fuse.EACCES, status)
}

func (t *ServerTest) Access_OwnerAllowed() {
	s, _ := newServer(value.NewObject(nil))

	in := &fuse.AccessIn{Mask: unix.X_OK}
	in.NodeId = uint64(gffs.RootIno)
	in.Caller.Uid = ownerUid

	status := s.Access(nil, in)
	ExpectEq(fuse.OK, status)
}

////////////////////////////////////////////////////////////////////////
// Write and read round trip.
////////////////////////////////////////////////////////////////////////

func (t *ServerTest) Write_ThenRead_RoundTrips() {
	doc := value.NewObject([]value.Field{
		{Key: "f", Value: value.NewNumber(json.Number("1"))},
	})
	s, store := newServer(doc)

	store.RLock()
	root, err := store.Get(gffs.RootIno)
	AssertEq(nil, err)
	fIno := root.Entry.Children["f"].Ino
	store.RUnlock()

	writeIn := &fuse.WriteIn{Offset: 0}
	writeIn.NodeId = uint64(fIno)
	writeIn.Caller.Uid = ownerUid
	n, status := s.Write(nil, writeIn, []byte("hello"))
	AssertEq(fuse.OK, status)
	ExpectEq(uint32(5), n)

	readIn := &fuse.ReadIn{Offset: 0, Size: 5}
	readIn.NodeId = uint64(fIno)
	buf := make([]byte, 5)
	result, status := s.Read(nil, readIn, buf)
	AssertEq(fuse.OK, status)
	data, status := result.Bytes(buf)
	AssertEq(fuse.OK, status)
	ExpectEq("hello", string(data))
}
