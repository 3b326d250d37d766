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

import "time"

// Attr is the synthesized POSIX attribute record for one inode. It is
// transport-agnostic; fsserver converts it into whatever struct
// hanwen/go-fuse/v2 expects for a given reply.
type Attr struct {
	Ino    Ino
	Size   uint64
	Nlink  uint32
	Mode   uint32 // the bare permission bits; S_IFDIR/S_IFREG is added by the caller
	IsDir  bool
	Uid    uint32
	Gid    uint32
	Atime  time.Time
	Mtime  time.Time
	Ctime  time.Time
	Crtime time.Time

	Blksize uint32
	Blocks  uint64
	Rdev    uint32
	Flags   uint32
}

// Attr synthesizes the POSIX attributes for n according to spec.md
// §4.3: size is the byte length for files, the sum of child-name
// lengths for Named directories, and the child count for List
// directories; nlink is 1 for files and 2 plus the count of
// subdirectory children for directories; blksize is fixed at 1 so that
// blocks always equals size exactly.
func (fs *FS) Attr(n *Inode) Attr {
	cfg := fs.config
	a := Attr{
		Ino:     n.Ino,
		Uid:     cfg.Uid,
		Gid:     cfg.Gid,
		Atime:   cfg.Timestamp,
		Mtime:   cfg.Timestamp,
		Ctime:   cfg.Timestamp,
		Crtime:  cfg.Timestamp,
		Blksize: 1,
		Rdev:    0,
		Flags:   0,
	}

	switch n.Entry.Kind {
	case KindFile:
		a.IsDir = false
		a.Mode = cfg.Filemode
		a.Size = uint64(len(n.Entry.Data))
		a.Nlink = 1
	case KindDir:
		a.IsDir = true
		a.Mode = cfg.Dirmode
		a.Nlink = 2
		switch n.Entry.DirType {
		case DirList:
			a.Size = uint64(len(n.Entry.Children))
		default:
			size := 0
			for name := range n.Entry.Children {
				size += len(name)
			}
			a.Size = uint64(size)
		}
		for _, child := range n.Entry.Children {
			if child.Kind == KindDir {
				a.Nlink++
			}
		}
	}

	a.Blocks = a.Size
	return a
}
