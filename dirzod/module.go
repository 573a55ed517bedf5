// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"github.com/elliotchance/orderedmap/v3"
	"golang.org/x/sync/errgroup"
)

// Package is the set of output modules, keyed by module name. Module names
// double as file stems and namespace-import identifiers.
type Package map[string]*Module

func (p Package) Index() *Module {
	return p["index"]
}

// Module is one emitted TypeScript file. Imports and Defs keep insertion
// order so regeneration is byte-for-byte stable.
type Module struct {
	// Source names where the definitions came from (a collection name,
	// or "directus" for the built-in file object module).
	Source string
	// Banner lines are emitted as line comments above everything else.
	Banner []string
	// Zod controls the `import { z } from "zod";` line; the index module
	// only re-exports and does not need it.
	Zod     bool
	Imports *orderedmap.OrderedMap[string, *Module]
	Defs    *orderedmap.OrderedMap[string, string]
}

func newModule(source string) *Module {
	return &Module{
		Source:  source,
		Zod:     true,
		Imports: orderedmap.NewOrderedMap[string, *Module](),
		Defs:    orderedmap.NewOrderedMap[string, string](),
	}
}

func (m *Module) Render() []byte {
	var b []byte
	for _, line := range m.Banner {
		b = append(b, "// "...)
		b = append(b, line...)
		b = append(b, '\n')
	}
	b = append(b, "/* "...)
	b = append(b, m.Source...)
	b = append(b, " */"...)
	if m.Zod {
		b = append(b, "\nimport { z } from \"zod\";"...)
	}
	for moduleName := range m.Imports.Keys() {
		b = append(b, '\n')
		b = append(b, "import * as "...)
		b = append(b, moduleName...)
		b = append(b, ` from "./`...)
		b = append(b, moduleName...)
		b = append(b, `";`...)
	}
	for def := range m.Defs.Values() {
		b = append(b, "\n\n"...)
		b = append(b, def...)
	}
	b = append(b, '\n')
	return b
}

// Formatter post-processes a rendered module, e.g. through prettier.
type Formatter func([]byte) ([]byte, error)

type RenderOptions struct {
	// Limit caps concurrent renders; zero means no limit.
	Limit     int
	Formatter Formatter
	Write     func(moduleName string, data []byte) error
}

// Render renders every module and hands the bytes to opts.Write as
// "<moduleName>.ts" content. Modules render concurrently under an errgroup.
func (p Package) Render(opts RenderOptions) error {
	var g errgroup.Group
	if opts.Limit != 0 {
		g.SetLimit(opts.Limit)
	}
	for moduleName, mod := range p {
		g.Go(func() error {
			data := mod.Render()
			if opts.Formatter != nil {
				var err error
				data, err = opts.Formatter(data)
				if err != nil {
					return err
				}
			}
			return opts.Write(moduleName, data)
		})
	}
	return g.Wait()
}

// fileModule is the built-in file object module, used whenever the real
// directus_files collection is not part of the run. The shapes follow the
// columns Directus creates for its files table.
func fileModule() *Module {
	m := newModule("directus")
	m.Defs.Set("imageMetadataSchema", `export const imageMetadataSchema = z.record(z.string(), z.unknown());`)
	m.Defs.Set("directusFileSchema", `export const directusFileSchema = z.object({
	"id": z.string().uuid(),
	"storage": z.string(),
	"filename_disk": z.string().nullable(),
	"filename_download": z.string(),
	"title": z.string().nullable(),
	"type": z.string().nullable(),
	"folder": z.string().uuid().nullable(),
	"uploaded_by": z.string().uuid().nullable(),
	"uploaded_on": z.string(),
	"modified_by": z.string().uuid().nullable(),
	"modified_on": z.string(),
	"charset": z.string().nullable(),
	"filesize": z.number().int().nullable(),
	"width": z.number().int().nullable(),
	"height": z.number().int().nullable(),
	"duration": z.number().int().nullable(),
	"embed": z.string().nullable(),
	"description": z.string().nullable(),
	"location": z.string().nullable(),
	"tags": z.array(z.string()).nullable(),
	"metadata": imageMetadataSchema.nullable(),
});`)
	m.Defs.Set("DirectusFile", `export type DirectusFile = z.infer<typeof directusFileSchema>;`)
	m.Defs.Set("ImageMetadata", `export type ImageMetadata = z.infer<typeof imageMetadataSchema>;`)
	return m
}
