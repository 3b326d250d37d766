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
)

// statusForGet maps fs.Get's table-level errors onto the POSIX errno
// the dispatcher must reply with, per spec.md §7's rule that table-level
// errors are "never surfaced verbatim - always mapped... typically
// ENOENT".
func statusForGet(err error) fuse.Status {
	switch err.(type) {
	case *fs.NoSuchInodeError, *fs.InvalidInodeError:
		return fuse.ENOENT
	default:
		return fuse.EIO
	}
}
