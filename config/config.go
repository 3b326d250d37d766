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

// Package config carries the read-only mount identity and naming policy
// consumed by the inode store and dispatcher. It has no dependencies of
// its own; cmd/ffs/internal/cliconfig is what assembles a Config from
// flags, environment variables, and an optional file.
package config

import "time"

// NormalizeFunc maps a raw Object field name to a filesystem-legal name.
// It must be deterministic: the same input always produces the same
// output within a single process.
type NormalizeFunc func(field string) string

// Identity is the default NormalizeFunc: it leaves names unchanged.
func Identity(field string) string { return field }

// Config is the read-only record that determines inode ownership,
// timestamps, permission bits, and the naming policy applied during
// ingestion. It is constructed once and never mutated.
type Config struct {
	// Uid and Gid are the owner of every synthesized attribute, and the
	// only principal permitted to perform mutating operations.
	Uid uint32
	Gid uint32

	// Timestamp is returned for atime/mtime/ctime/crtime of every inode.
	Timestamp time.Time

	// Filemode and Dirmode are the permission bits reported for regular
	// files and directories, respectively.
	Filemode uint32
	Dirmode  uint32

	// AddNewlines, if true, causes scalar file contents produced during
	// ingestion to end in a newline (Strings that already end in "\n"
	// are left alone).
	AddNewlines bool

	// PadElementNames, if true, causes List-directory child names to be
	// zero-padded to the number of decimal digits in the element count
	// (a 100-element list uses width 3).
	PadElementNames bool

	// NormalizeName is applied to every Object field name during
	// ingestion, before collision resolution.
	NormalizeName NormalizeFunc
}

// New builds a Config with Identity normalization and the given identity
// fields; callers mutate the permission/newline fields directly since
// Config carries no invariants beyond NormalizeName being non-nil.
func New(uid, gid uint32, timestamp time.Time) Config {
	return Config{
		Uid:       uid,
		Gid:       gid,
		Timestamp: timestamp,
		Filemode:  0644,
		Dirmode:   0755,
		NormalizeName: Identity,
	}
}
