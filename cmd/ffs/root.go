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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/jacobsa/timeutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-ffs/ffs/cmd/ffs/internal/cliconfig"
	gffs "github.com/go-ffs/ffs/fs"
	"github.com/go-ffs/ffs/fsserver"
)

// exitError carries the process exit code a failure should produce,
// letting main's RunE return ordinary errors while still distinguishing
// spec.md §6's four failure classes.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ffs MOUNTPOINT",
		Short: "mount a JSON or YAML document as a browsable, mutable filesystem",
		Args:  cobra.ExactArgs(1),
	}
	v := cliconfig.BindFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runMount(cmd, v, args[0])
	}

	return cmd
}

func runMount(cmd *cobra.Command, v *viper.Viper, mountpoint string) error {
	log := slog.Default()

	flags, err := cliconfig.Load(cmd, v)
	if err != nil {
		return &exitError{code: exitCannotMount, err: err}
	}

	clock := timeutil.RealClock()
	cfg, err := cliconfig.ToConfig(flags, clock.Now())
	if err != nil {
		return &exitError{code: exitCannotMount, err: err}
	}

	parse, err := parserFor(flags.InputFormat)
	if err != nil {
		return &exitError{code: exitCannotMount, err: err}
	}
	serialize, err := serializerFor(flags.OutputFormat, cfg.AddNewlines)
	if err != nil {
		return &exitError{code: exitCannotMount, err: err}
	}

	in, err := openInput(flags.Input)
	if err != nil {
		return &exitError{code: exitCannotMount, err: err}
	}
	defer in.Close()

	doc, err := parse(in)
	if err != nil {
		log.Error("parse failed", "error", err)
		return &exitError{code: exitParseFailure, err: err}
	}

	store, err := gffs.NewFromValue(cfg, doc)
	if err != nil {
		log.Error("ingestion rejected primitive root", "error", err)
		return &exitError{code: exitPrimitiveRoot, err: err}
	}

	out, err := openOutput(flags.Output)
	if err != nil {
		return &exitError{code: exitCannotMount, err: err}
	}
	defer out.Close()

	dispatcher := fsserver.New(store, out, serialize, log)

	opts := &fuse.MountOptions{
		FsName: "ffs",
		Name:   "ffs",
	}
	if flags.ReadOnly {
		opts.Options = append(opts.Options, "ro")
	}
	server, err := fuse.NewServer(dispatcher, mountpoint, opts)
	if err != nil {
		return &exitError{code: exitCannotMount, err: fmt.Errorf("mount: %w", err)}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		_ = server.Unmount()
	}()

	server.Serve()

	if err := dispatcher.Shutdown(); err != nil {
		return &exitError{code: exitWriteBackFailure, err: err}
	}

	return nil
}
