// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"runtime/debug"
	"strings"

	"github.com/alecthomas/kong"
)

type cmdVersion struct{}

func (cmdVersion) Run(ctx *kong.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("build info not found")
	}

	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}

	var revision, modified, buildTime string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			buildTime = s.Value
		}
	}

	var b strings.Builder
	b.WriteString(version)
	if len(revision) >= 12 {
		b.WriteString(" (")
		b.WriteString(revision[:12])
		if modified == "true" {
			b.WriteString("-dirty")
		}
		b.WriteByte(')')
	}
	if buildTime != "" {
		b.WriteString(" built ")
		b.WriteString(buildTime)
	}
	b.WriteByte(' ')
	b.WriteString(info.GoVersion)

	ctx.Printf("%s", b.String())
	return nil
}
