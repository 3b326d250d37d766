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

package fsserver

import (
	"github.com/go-ffs/ffs/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"
)

// toFuseAttr converts the transport-agnostic fs.Attr into the wire
// struct hanwen/go-fuse/v2 expects, adding the S_IFDIR/S_IFREG type bits
// that fs.Attr deliberately omits.
func toFuseAttr(a fs.Attr) fuse.Attr {
	mode := a.Mode
	if a.IsDir {
		mode |= unix.S_IFDIR
	} else {
		mode |= unix.S_IFREG
	}

	nsec := uint32(0)
	sec := uint64(a.Atime.Unix())
	mt := uint64(a.Mtime.Unix())
	ct := uint64(a.Ctime.Unix())

	return fuse.Attr{
		Ino:       uint64(a.Ino),
		Size:      a.Size,
		Blocks:    a.Blocks,
		Atime:     sec,
		Mtime:     mt,
		Ctime:     ct,
		Atimensec: nsec,
		Mtimensec: nsec,
		Ctimensec: nsec,
		Mode:      mode,
		Nlink:     a.Nlink,
		Owner:     fuse.Owner{Uid: a.Uid, Gid: a.Gid},
		Rdev:      a.Rdev,
		Blksize:   a.Blksize,
	}
}

func setEntryOut(out *fuse.EntryOut, a fs.Attr) {
	out.NodeId = uint64(a.Ino)
	out.Attr = toFuseAttr(a)
}

func setAttrOut(out *fuse.AttrOut, a fs.Attr) {
	out.Attr = toFuseAttr(a)
}
