// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/directkit/dirzod/cmd/dirzod/internal"
)

type cmdSchema struct {
	Path string `arg:"" type:"path" default:"dirzod.schema.json"`
}

// Run writes the embedded config schema, the same document the config
// loader validates against. It is regenerated with go:generate, not
// reflected at runtime, so the two can never drift.
func (c *cmdSchema) Run() error {
	var f *os.File
	var err error
	if c.Path != "-" {
		if err = os.MkdirAll(filepath.Dir(c.Path), 0750); err != nil {
			return err
		}
		f, err = os.Create(c.Path)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
	} else {
		f = os.Stdout
	}

	_, err = io.WriteString(f, internal.Schema())
	return err
}
