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

// requireOwner enforces spec.md §4.4's "mutating operations require
// req.uid() == config.uid" rule.
func (s *Server) requireOwner(header *fuse.InHeader) fuse.Status {
	if header.Caller.Uid != s.store.Config().Uid {
		return fuse.EACCES
	}
	return fuse.OK
}

func (s *Server) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	s.log.Debug("lookup", "parent", header.NodeId, "name", name)

	s.store.RLock()
	defer s.store.RUnlock()

	parent, err := s.store.Get(fs.Ino(header.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	if !parent.Entry.IsDir() {
		return fuse.Status(unix.ENOTDIR)
	}

	child, ok := parent.Entry.Children[name]
	if !ok {
		return fuse.ENOENT
	}

	node, err := s.store.Get(child.Ino)
	if err != nil {
		return statusForGet(err)
	}
	setEntryOut(out, s.store.Attr(node))
	return fuse.OK
}

func (s *Server) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	s.store.RLock()
	defer s.store.RUnlock()

	node, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return statusForGet(err)
	}
	setAttrOut(out, s.store.Attr(node))
	return fuse.OK
}

func (s *Server) Access(cancel <-chan struct{}, input *fuse.AccessIn) fuse.Status {
	mask := int32(input.Mask)
	if mask == unix.F_OK {
		return fuse.OK
	}

	s.store.RLock()
	defer s.store.RUnlock()

	node, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return fuse.ENOENT
	}

	cfg := s.store.Config()
	mode := int32(s.store.Attr(node).Mode)

	switch {
	case input.Caller.Uid == 0:
		mask &= unix.X_OK
		mask -= mask & (mode >> 6)
		mask -= mask & (mode >> 3)
		mask -= mask & mode
	case input.Caller.Uid == cfg.Uid:
		mask -= mask & (mode >> 6)
	case input.Caller.Gid == cfg.Gid:
		mask -= mask & (mode >> 3)
	default:
		mask -= mask & mode
	}

	if mask == 0 {
		return fuse.OK
	}
	return fuse.EACCES
}

func (s *Server) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	s.store.RLock()
	defer s.store.RUnlock()

	node, err := s.store.Get(fs.Ino(input.NodeId))
	if err != nil {
		return nil, fuse.ENOENT
	}
	if node.Entry.Kind != fs.KindFile {
		return nil, fuse.ENOENT
	}

	data := node.Entry.Data
	off := int(input.Offset)
	if off > len(data) {
		off = len(data)
	}
	n := copy(buf, data[off:])
	return fuse.ReadResultData(buf[:n]), fuse.OK
}

func (s *Server) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	return s.readdir(input, out)
}

func (s *Server) ReadDirPlus(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	return s.readdir(input, out)
}
