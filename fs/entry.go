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

import "fmt"

// Ino is an inode number: a dense, 1-based index into an FS's inode
// table. Zero is reserved and never refers to a live inode.
type Ino uint64

// RootIno is the inode number of the filesystem root. It always exists
// for the lifetime of an FS and is its own parent.
const RootIno Ino = 1

// Kind distinguishes a regular file from a directory, independent of
// the directory's List/Named flavor.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// DirType records whether a directory originated from a document Array
// (List: children named by index, zero-padded when PadElementNames is
// set) or an Object (Named:
// children named by normalized field name).
type DirType uint8

const (
	DirNamed DirType = iota
	DirList
)

func (d DirType) String() string {
	if d == DirList {
		return "list"
	}
	return "named"
}

// Child is one entry of a directory's child map: the kind and inode
// number of the named child.
type Child struct {
	Kind Kind
	Ino  Ino
}

// Entry is the payload of an Inode: either a byte buffer (a regular
// file) or a set of named children (a directory). Exactly one of the
// two payload fields is meaningful, selected by Kind.
type Entry struct {
	Kind Kind

	// Data holds a File entry's contents. nil for directories.
	Data []byte

	// DirType and Children are meaningful only when Kind == KindDir.
	DirType  DirType
	Children map[string]Child
}

// NewFileEntry builds a File entry with the given contents.
func NewFileEntry(data []byte) Entry {
	return Entry{Kind: KindFile, Data: data}
}

// NewDirEntry builds an empty Directory entry of the given flavor.
func NewDirEntry(dt DirType) Entry {
	return Entry{Kind: KindDir, DirType: dt, Children: make(map[string]Child)}
}

// IsDir reports whether e is a directory.
func (e Entry) IsDir() bool { return e.Kind == KindDir }

// Inode is one record of the inode table: its own number, its parent's
// number (equal to its own for the root), and its payload.
type Inode struct {
	Parent Ino
	Ino    Ino
	Entry  Entry
}

func (n *Inode) String() string {
	return fmt.Sprintf("inode{ino=%d parent=%d kind=%s}", n.Ino, n.Parent, n.Entry.Kind)
}
