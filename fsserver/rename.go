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

// Rename implements spec.md §4.4.7's eight-step algorithm exactly;
// rename flags (RENAME_EXCHANGE, RENAME_NOREPLACE) are read but
// ignored, per spec.md §9's open question on that point.
func (s *Server) Rename(cancel <-chan struct{}, input *fuse.RenameIn, oldName string, newName string) fuse.Status {
	if status := s.requireOwner(&input.InHeader); status != fuse.OK {
		return status
	}
	if oldName == "." || oldName == ".." || newName == "." || newName == ".." {
		return fuse.Status(unix.EINVAL)
	}

	s.store.Lock()
	defer s.store.Unlock()

	parent, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	src, ok := parent.Entry.Children[oldName]
	if !ok {
		return fuse.ENOENT
	}

	newParent, err := s.store.Get(fs.Ino(input.Newdir))
	if err != nil {
		return statusForGet(err)
	}

	if existing, exists := newParent.Entry.Children[newName]; exists {
		if existing.Kind != src.Kind {
			return fuse.Status(unix.ENOTDIR)
		}
		if existing.Kind == fs.KindDir {
			existingNode, err := s.store.Get(existing.Ino)
			if err != nil {
				return statusForGet(err)
			}
			if len(existingNode.Entry.Children) != 0 {
				return fuse.Status(unix.ENOTEMPTY)
			}
		}
	}

	delete(parent.Entry.Children, oldName)
	newParent.Entry.Children[newName] = src

	movedNode, err := s.store.Get(src.Ino)
	if err != nil {
		return statusForGet(err)
	}
	movedNode.Parent = newParent.Ino

	return fuse.OK
}
