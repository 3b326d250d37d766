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

// Package fs is the inode store: a flat, index-addressed table of
// inodes, the ingestion routine that builds one from a parsed document,
// attribute synthesis, and write-back. It knows nothing about FUSE; the
// operation surface (lookup, read, readdir, mknod, ...) lives in
// package fsserver and is built entirely out of the primitives exported
// here.
package fs

import (
	"github.com/jacobsa/syncutil"

	"github.com/go-ffs/ffs/config"
)

// FS is the live inode table plus the configuration that governs
// attribute synthesis and naming policy. The zero FS is not usable;
// construct one with NewFromValue.
//
// Multiple goroutines may call the exported locking methods
// concurrently; Get and FreshInode themselves take no lock and assume
// the caller already holds one via RLock/Lock, mirroring the
// single-dispatch-thread model of spec.md §5 while still allowing a
// multithreaded transport to serialize around the table (see
// fsserver.Server).
type FS struct {
	// mu guards the whole inode table; its invariant checker is
	// fs.checkInvariants, in the style of
	// jacobsa-fuse/samples/memfs/fs.go's fs.mu.
	mu     syncutil.InvariantMutex
	inodes []*Inode
	config config.Config
}

// Config returns the FS's read-only configuration.
func (fs *FS) Config() config.Config { return fs.config }

// Lock and Unlock serialize mutating operations against the whole
// table. Unlock must be called exactly once for every Lock.
func (fs *FS) Lock()   { fs.mu.Lock() }
func (fs *FS) Unlock() { fs.mu.Unlock() }

// RLock and RUnlock serialize read-only operations against concurrent
// mutation. RUnlock must be called exactly once for every RLock.
func (fs *FS) RLock()   { fs.mu.RLock() }
func (fs *FS) RUnlock() { fs.mu.RUnlock() }

// Len returns the current table length (one past the highest inode
// number ever allocated). Caller must hold at least RLock.
func (fs *FS) Len() int { return len(fs.inodes) }

// Get resolves ino against the table. It returns *NoSuchInodeError when
// ino is out of range and *InvalidInodeError when the slot has been
// tombstoned. Caller must hold at least RLock.
func (fs *FS) Get(ino Ino) (*Inode, error) {
	if ino == 0 || int(ino) >= len(fs.inodes) {
		return nil, &NoSuchInodeError{Ino: ino}
	}
	n := fs.inodes[ino]
	if n == nil {
		return nil, &InvalidInodeError{Ino: ino}
	}
	return n, nil
}

// FreshInode appends a new inode at the next free index and returns its
// number. The caller is responsible for linking it into a parent's
// child map. Caller must hold Lock.
func (fs *FS) FreshInode(parent Ino, entry Entry) Ino {
	ino := Ino(len(fs.inodes))
	fs.inodes = append(fs.inodes, &Inode{Parent: parent, Ino: ino, Entry: entry})
	return ino
}

// Tombstone clears the slot at ino so later lookups report
// InvalidInode. The caller has already removed every directory entry
// referencing it. Caller must hold Lock.
//
// Per spec.md §3's lifecycle note and §9's tombstoning-vs-compaction
// discussion, neither unlink nor rmdir call this today (they leave the
// slot allocated but unreachable, matching the reference behavior); it
// is exported for an implementation that later adds a free list.
func (fs *FS) Tombstone(ino Ino) {
	if ino != 0 && int(ino) < len(fs.inodes) {
		fs.inodes[ino] = nil
	}
}

// checkInvariants panics if any of spec.md §3's table invariants are
// violated. It is registered as the check function of fs.mu, so it runs
// on lock transitions only when syncutil's invariant checking is
// enabled, in the style of jacobsa-fuse/samples/memfs's checkInvariants.
func (fs *FS) checkInvariants() {
	if len(fs.inodes) == 0 || fs.inodes[0] != nil {
		panic("inode 0 must be unallocated")
	}
	if int(RootIno) >= len(fs.inodes) || fs.inodes[RootIno] == nil {
		panic("root inode must exist")
	}
	if !fs.inodes[RootIno].Entry.IsDir() {
		panic("root inode must be a directory")
	}
	for i, n := range fs.inodes {
		if n == nil {
			continue
		}
		if int(n.Ino) != i {
			panic("inode stored at wrong table index")
		}
		if !n.Entry.IsDir() {
			continue
		}
		seen := make(map[string]bool, len(n.Entry.Children))
		for name, child := range n.Entry.Children {
			if name == "." || name == ".." {
				panic("directory must not contain . or .. as an explicit entry")
			}
			if seen[name] {
				panic("duplicate child name")
			}
			seen[name] = true
			c, err := fs.Get(child.Ino)
			if err != nil {
				panic("dangling child inode reference")
			}
			if c.Parent != n.Ino {
				panic("child's parent pointer does not match holder")
			}
			if c.Entry.Kind != child.Kind {
				panic("child's entry kind does not match directory entry kind")
			}
		}
	}
}
