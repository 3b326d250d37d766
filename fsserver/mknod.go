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

// createChild implements the shared body of mknod and mkdir: validate
// access and the parent, reject an existing name, allocate a fresh
// inode of the given kind, and link it in.
func (s *Server) createChild(header *fuse.InHeader, name string, kind fs.Kind, out *fuse.EntryOut) fuse.Status {
	if status := s.requireOwner(header); status != fuse.OK {
		return status
	}

	s.store.Lock()
	defer s.store.Unlock()

	parent, err := s.store.Get(fs.Ino(header.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	if !parent.Entry.IsDir() {
		return fuse.Status(unix.ENOTDIR)
	}
	if _, exists := parent.Entry.Children[name]; exists {
		return fuse.Status(unix.EEXIST)
	}

	var entry fs.Entry
	if kind == fs.KindDir {
		entry = fs.NewDirEntry(fs.DirNamed)
	} else {
		entry = fs.NewFileEntry(nil)
	}

	childIno := s.store.FreshInode(parent.Ino, entry)
	parent.Entry.Children[name] = fs.Child{Kind: kind, Ino: childIno}

	child, err := s.store.Get(childIno)
	if err != nil {
		return statusForGet(err)
	}
	setEntryOut(out, s.store.Attr(child))
	return fuse.OK
}

// Mknod implements spec.md §4.4.4: only regular-file and directory mode
// bits are accepted, everything else replies ENOSYS (forcing the
// kernel to fall back to whatever it does for device/FIFO nodes, which
// this filesystem has no representation for).
func (s *Server) Mknod(cancel <-chan struct{}, input *fuse.MknodIn, name string, out *fuse.EntryOut) fuse.Status {
	s.log.Debug("mknod", "parent", input.NodeId, "name", name, "mode", input.Mode)

	switch input.Mode & unix.S_IFMT {
	case unix.S_IFREG:
		return s.createChild(&input.InHeader, name, fs.KindFile, out)
	case unix.S_IFDIR:
		return s.createChild(&input.InHeader, name, fs.KindDir, out)
	default:
		return fuse.ENOSYS
	}
}

// Mkdir implements spec.md §4.4.4: behaves like Mknod(S_IFDIR); a mode
// other than 0755 is accepted but logged, never rejected.
func (s *Server) Mkdir(cancel <-chan struct{}, input *fuse.MkdirIn, name string, out *fuse.EntryOut) fuse.Status {
	s.log.Debug("mkdir", "parent", input.NodeId, "name", name, "mode", input.Mode)
	if input.Mode&0o777 != 0o755 {
		s.log.Warn("mkdir with non-standard mode", "parent", input.NodeId, "name", name, "mode", input.Mode)
	}
	return s.createChild(&input.InHeader, name, fs.KindDir, out)
}
