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

// Package cliconfig is the ambient configuration-loading layer: it
// binds Cobra flags, FFS_*-prefixed environment variables, and an
// optional YAML file through Viper, decodes the merged result into a
// Flags struct with mapstructure, and translates that into a
// config.Config for the core to consume. None of this has any bearing
// on core semantics; it exists so the mount command in cmd/ffs stays
// thin.
package cliconfig

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-ffs/ffs/config"
)

// Flags is the flat, mapstructure-decodable view of every mount option
// named in spec.md §6: input source, output sink, format tags, mutation
// policy, ownership, permission bits, naming policy, padding, and
// newline-appending.
type Flags struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`

	InputFormat  string `mapstructure:"input_format"`
	OutputFormat string `mapstructure:"output_format"`

	ReadOnly bool `mapstructure:"read_only"`

	Uid uint32 `mapstructure:"uid"`
	Gid uint32 `mapstructure:"gid"`

	Filemode uint32 `mapstructure:"filemode"`
	Dirmode  uint32 `mapstructure:"dirmode"`

	AddNewlines     bool `mapstructure:"add_newlines"`
	PadElementNames bool `mapstructure:"pad_element_names"`

	Normalize string `mapstructure:"normalize"`
}

// BindFlags registers every Flags field as a flag on cmd and
// returns the Viper instance they are bound through. Environment
// variables are read with an FFS_ prefix (e.g. FFS_ADD_NEWLINES) and an
// optional --config file, matching gcsfuse's Cobra/Viper layering.
func BindFlags(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FFS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	flags.String("input", "-", "input document path, or - for stdin")
	flags.String("output", "-", "output sink path, - for stdout, or 'discard'")
	flags.String("input-format", "json", "input format: json or yaml")
	flags.String("output-format", "json", "output format: json or yaml")
	flags.Bool("read-only", false, "reject all mutating operations")
	flags.Uint32("uid", 0, "owner uid of every synthesized attribute")
	flags.Uint32("gid", 0, "owner gid of every synthesized attribute")
	flags.Uint32("filemode", 0644, "permission bits reported for regular files")
	flags.Uint32("dirmode", 0755, "permission bits reported for directories")
	flags.Bool("add-newlines", true, "append a trailing newline to ingested scalar file contents")
	flags.Bool("pad-element-names", false, "zero-pad List directory child names to a common width")
	flags.String("normalize", "identity", "Object field name normalization policy: identity or slug")
	cmd.PersistentFlags().String("config", "", "optional YAML config file")

	_ = v.BindPFlag("input", flags.Lookup("input"))
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindPFlag("input_format", flags.Lookup("input-format"))
	_ = v.BindPFlag("output_format", flags.Lookup("output-format"))
	_ = v.BindPFlag("read_only", flags.Lookup("read-only"))
	_ = v.BindPFlag("uid", flags.Lookup("uid"))
	_ = v.BindPFlag("gid", flags.Lookup("gid"))
	_ = v.BindPFlag("filemode", flags.Lookup("filemode"))
	_ = v.BindPFlag("dirmode", flags.Lookup("dirmode"))
	_ = v.BindPFlag("add_newlines", flags.Lookup("add-newlines"))
	_ = v.BindPFlag("pad_element_names", flags.Lookup("pad-element-names"))
	_ = v.BindPFlag("normalize", flags.Lookup("normalize"))

	return v
}

// Load merges the config file named by --config (if any) into v, then
// decodes the result into a Flags value via mapstructure.
func Load(cmd *cobra.Command, v *viper.Viper) (Flags, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Flags{}, fmt.Errorf("cliconfig: reading %s: %w", path, err)
		}
	}

	var flags Flags
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &flags,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Flags{}, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return Flags{}, fmt.Errorf("cliconfig: decoding settings: %w", err)
	}

	return flags, nil
}

var slugDisallowed = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// slug lowercases a field name and replaces runs of characters outside
// [A-Za-z0-9_.-] with "_", per SPEC_FULL.md §4.1's built-in normalize
// policy.
func slug(field string) string {
	return slugDisallowed.ReplaceAllString(strings.ToLower(field), "_")
}

// normalizeFunc resolves a Flags.Normalize policy name to a
// config.NormalizeFunc.
func normalizeFunc(name string) (config.NormalizeFunc, error) {
	switch name {
	case "", "identity":
		return config.Identity, nil
	case "slug":
		return slug, nil
	default:
		return nil, fmt.Errorf("cliconfig: unknown normalize policy %q", name)
	}
}

// ToConfig translates Flags plus a fixed timestamp into the core's
// read-only config.Config.
func ToConfig(f Flags, timestamp time.Time) (config.Config, error) {
	normalize, err := normalizeFunc(f.Normalize)
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.New(f.Uid, f.Gid, timestamp)
	cfg.Filemode = f.Filemode
	cfg.Dirmode = f.Dirmode
	cfg.AddNewlines = f.AddNewlines
	cfg.PadElementNames = f.PadElementNames
	cfg.NormalizeName = normalize
	return cfg, nil
}
