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
	"sort"
	"strconv"

	"github.com/go-ffs/ffs/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"
)

type dirEntry struct {
	name string
	kind fs.Kind
	ino  fs.Ino
}

// sortedChildNames implements SPEC_FULL.md §3's added dirent ordering
// stability rule: List directories in numeric order by index, Named
// directories lexically, since Go's map iteration is randomized and
// offset-based paging needs a stable order within a handle's lifetime.
func sortedChildNames(entry fs.Entry) []string {
	names := make([]string, 0, len(entry.Children))
	for name := range entry.Children {
		names = append(names, name)
	}
	if entry.DirType == fs.DirList {
		sort.Slice(names, func(i, j int) bool {
			a, errA := strconv.Atoi(names[i])
			b, errB := strconv.Atoi(names[j])
			if errA == nil && errB == nil {
				return a < b
			}
			return names[i] < names[j]
		})
	} else {
		sort.Strings(names)
	}
	return names
}

// readdir implements spec.md §4.4.3's readdir algorithm: emit ".", then
// "..", then each child in stable order, skipping the first
// input.Offset entries and stopping once the reply buffer is full.
func (s *Server) readdir(input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	s.store.RLock()
	defer s.store.RUnlock()

	node, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	if !node.Entry.IsDir() {
		return fuse.Status(unix.ENOTDIR)
	}

	entries := make([]dirEntry, 0, len(node.Entry.Children)+2)
	entries = append(entries, dirEntry{name: ".", kind: fs.KindDir, ino: node.Ino})
	entries = append(entries, dirEntry{name: "..", kind: fs.KindDir, ino: node.Parent})
	for _, name := range sortedChildNames(node.Entry) {
		c := node.Entry.Children[name]
		entries = append(entries, dirEntry{name: name, kind: c.Kind, ino: c.Ino})
	}

	offset := int(input.Offset)
	for i := offset; i < len(entries); i++ {
		e := entries[i]
		mode := uint32(unix.S_IFREG)
		if e.kind == fs.KindDir {
			mode = unix.S_IFDIR
		}
		if !out.AddDirEntry(fuse.DirEntry{Mode: mode, Name: e.name, Ino: uint64(e.ino)}) {
			break
		}
	}
	return fuse.OK
}
