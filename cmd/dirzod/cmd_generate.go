// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	jsonc "github.com/DisposaBoy/JsonConfigReader"
	"github.com/charmbracelet/log"

	"github.com/directkit/dirzod/cmd/dirzod/internal"
	"github.com/directkit/dirzod/directus"
	"github.com/directkit/dirzod/dirzod"
)

type cmdGenerate struct {
	Path  string `arg:"" type:"path" default:"dirzod.jsonc"`
	Token string `env:"DIRECTUS_TOKEN" help:"Access token, overrides the config file."`
}

func (c *cmdGenerate) Run() error {
	var f *os.File
	var err error
	if c.Path != "-" {
		f, err = os.Open(c.Path)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
	} else {
		f = os.Stdin
	}

	data, err := io.ReadAll(jsonc.New(f))
	if err != nil {
		return err
	}

	// Unmarshalling validates against the embedded JSON Schema.
	var cfg internal.Config
	if err = json.Unmarshal(data, &cfg); err != nil {
		return err
	}

	token := cfg.Token
	if c.Token != "" {
		token = c.Token
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	client := directus.NewClient(cfg.URL, directus.WithToken(token))
	log.Info("fetching metadata", "url", cfg.URL)
	snap, err := client.Snapshot(ctx)
	if err != nil {
		return err
	}
	log.Debug("snapshot fetched",
		"collections", len(snap.Collections),
		"fields", len(snap.Fields),
		"relations", len(snap.Relations),
	)

	pkg, err := dirzod.Generate(dirzod.BuildModel(snap), dirzod.Options{
		IncludeSystem: cfg.IncludeSystem,
		SkipHidden:    cfg.SkipHidden,
		Collections:   cfg.Collections,
		TypeMappings:  cfg.TypeMappings,
		Banner:        cfg.Banner,
	})
	if err != nil {
		return err
	}

	if err = os.MkdirAll(cfg.OutputPath, 0750); err != nil {
		return err
	}
	err = pkg.Render(dirzod.RenderOptions{
		Write: func(moduleName string, data []byte) error {
			return os.WriteFile(
				filepath.Join(cfg.OutputPath, moduleName+".ts"), data, 0600,
			)
		},
	})
	if err != nil {
		return err
	}
	log.Info("generated", "modules", len(pkg), "dir", cfg.OutputPath)
	return nil
}
