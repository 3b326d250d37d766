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

// Unlink implements spec.md §4.4.6: only a regular-file child may be
// unlinked; a directory or a missing entry both reply EPERM. The
// child's inode slot stays allocated but unreachable - see spec.md
// §9's tombstoning note.
func (s *Server) Unlink(cancel <-chan struct{}, header *fuse.InHeader, name string) fuse.Status {
	if status := s.requireOwner(header); status != fuse.OK {
		return status
	}

	s.store.Lock()
	defer s.store.Unlock()

	parent, err := s.store.Get(fs.Ino(header.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	child, ok := parent.Entry.Children[name]
	if !ok || child.Kind != fs.KindFile {
		return fuse.Status(unix.EPERM)
	}

	delete(parent.Entry.Children, name)
	return fuse.OK
}

// Rmdir implements spec.md §4.4.6: the child must exist, be a
// directory, and be empty.
func (s *Server) Rmdir(cancel <-chan struct{}, header *fuse.InHeader, name string) fuse.Status {
	if status := s.requireOwner(header); status != fuse.OK {
		return status
	}

	s.store.Lock()
	defer s.store.Unlock()

	parent, err := s.store.Get(fs.Ino(header.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	child, ok := parent.Entry.Children[name]
	if !ok {
		return fuse.ENOENT
	}
	if child.Kind != fs.KindDir {
		return fuse.Status(unix.ENOTDIR)
	}

	childNode, err := s.store.Get(child.Ino)
	if err != nil {
		return statusForGet(err)
	}
	if len(childNode.Entry.Children) != 0 {
		return fuse.Status(unix.ENOTEMPTY)
	}

	delete(parent.Entry.Children, name)
	return fuse.OK
}
