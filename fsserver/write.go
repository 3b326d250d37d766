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

// growTo zero-pads data so it is at least n bytes long.
func growTo(data []byte, n int) []byte {
	if len(data) >= n {
		return data
	}
	grown := make([]byte, n)
	copy(grown, data)
	return grown
}

// Write implements spec.md §4.4.5: writing past the current length
// zero-pads the buffer before copying in, and a directory target
// replies EISDIR rather than attempting to write.
func (s *Server) Write(cancel <-chan struct{}, input *fuse.WriteIn, data []byte) (uint32, fuse.Status) {
	if status := s.requireOwner(&input.InHeader); status != fuse.OK {
		return 0, status
	}

	s.store.Lock()
	defer s.store.Unlock()

	node, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return 0, statusForGet(err)
	}
	if node.Entry.IsDir() {
		return 0, fuse.Status(unix.EISDIR)
	}

	offset := int(input.Offset)
	end := offset + len(data)
	node.Entry.Data = growTo(node.Entry.Data, end)
	copy(node.Entry.Data[offset:end], data)

	return uint32(len(data)), fuse.OK
}

// Fallocate implements spec.md §4.4.5: only mode 0 is supported, a
// zero-length request is rejected, directories reply EBADF, and a
// missing inode replies ENODEV (not ENOENT - this is the one place
// spec.md departs from the usual table-level mapping).
func (s *Server) Fallocate(cancel <-chan struct{}, input *fuse.FallocateIn) fuse.Status {
	if input.Mode != 0 {
		return fuse.Status(unix.EOPNOTSUPP)
	}
	if input.Length == 0 {
		return fuse.Status(unix.EINVAL)
	}

	s.store.Lock()
	defer s.store.Unlock()

	node, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return fuse.Status(unix.ENODEV)
	}
	if node.Entry.IsDir() {
		return fuse.Status(unix.EBADF)
	}

	end := int(input.Offset + input.Length)
	node.Entry.Data = growTo(node.Entry.Data, end)
	return fuse.OK
}
