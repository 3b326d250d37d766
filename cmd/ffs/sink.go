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

package main

import (
	"io"
	"os"
)

// openInput opens the mount's input document, per spec.md §6's mount
// configuration ("Input source: file path or stdin").
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// openOutput opens the mount's write-back sink, per spec.md §6 ("output
// sink: file path, stdout, or discard"). A plain *os.File is returned
// for a real path so fs.Sync can preallocate it.
func openOutput(path string) (io.WriteCloser, error) {
	switch path {
	case "", "-":
		return nopWriteCloser{os.Stdout}, nil
	case "discard":
		return nopWriteCloser{io.Discard}, nil
	default:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
