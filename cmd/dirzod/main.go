// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var cli struct {
	LogLevel string `enum:"debug,info,warn,error" default:"info" help:"Minimum log level."`

	Init     cmdInit     `cmd:"" help:"Write a starter config file."`
	Schema   cmdSchema   `cmd:"" help:"Write the config file's JSON Schema."`
	Generate cmdGenerate `cmd:"" help:"Generate Zod schemas and types from a Directus instance."`
	Version  cmdVersion  `cmd:"" help:"Print version information."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("dirzod"),
		kong.Description("Generate Zod schemas and TypeScript types from Directus collection metadata"),
		kong.UsageOnError(),
	)
	if lvl, err := log.ParseLevel(cli.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	ctx.FatalIfErrorf(ctx.Run())
}
