// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/directkit/dirzod/cmd/dirzod/internal"
)

type cmdInit struct {
	Path       string `arg:"" type:"path" default:"dirzod.jsonc"`
	SchemaPath string `arg:"" type:"path" default:"dirzod.schema.json"`
	NoSchema   bool   `short:"S"`
}

func (c *cmdInit) Run() error {
	var f *os.File
	var err error
	if c.Path != "-" {
		dir := filepath.Dir(c.Path)
		if err = os.MkdirAll(dir, 0750); err != nil {
			return err
		}
		f, err = os.Create(c.Path)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck

		if !c.NoSchema {
			relpath, err := filepath.Rel(dir, c.SchemaPath)
			if err == nil {
				c.SchemaPath = relpath
			}
		}
	} else {
		f = os.Stdout
	}

	var cfg internal.Config
	if !c.NoSchema {
		cfg.Schema = c.SchemaPath
	}
	cfg.URL = "https://directus.example.com"
	cfg.OutputPath = "./src/schemas"

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(&cfg)
}
