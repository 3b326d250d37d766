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

// NoSuchInodeError is returned by Get when ino is out of range of the
// inode table entirely.
type NoSuchInodeError struct{ Ino Ino }

func (e *NoSuchInodeError) Error() string {
	return fmt.Sprintf("fs: no such inode %d", e.Ino)
}

// InvalidInodeError is returned by Get when ino is in range but its slot
// has been cleared by Tombstone.
type InvalidInodeError struct{ Ino Ino }

func (e *InvalidInodeError) Error() string {
	return fmt.Sprintf("fs: invalid (tombstoned) inode %d", e.Ino)
}

// PrimitiveRootError is returned by NewFromValue when asked to build a
// filesystem out of a scalar. A filesystem needs at least one directory
// at its root.
type PrimitiveRootError struct{ Kind string }

func (e *PrimitiveRootError) Error() string {
	return fmt.Sprintf("fs: cannot build a filesystem out of the primitive value of kind %q", e.Kind)
}
