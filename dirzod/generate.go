// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

// Package dirzod turns Directus collection metadata into Zod validation
// schemas and TypeScript type declarations, one module per collection.
package dirzod

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-set/v3"
)

type Options struct {
	// IncludeSystem also generates the directus_* collections. When off,
	// file fields still resolve against a built-in file object module.
	IncludeSystem bool
	// SkipHidden drops hidden collections. Junction collections are
	// hidden by default in Directus, so this degrades m2m fields to
	// key-only schemas.
	SkipHidden bool
	// Collections restricts generation to an allow-list when non-empty.
	Collections []string
	// TypeMappings overrides the Zod expression for single fields,
	// keyed "collection.field". The declaration side falls back to
	// unknown for overridden fields on lazy collections.
	TypeMappings map[string]string
	// Banner lines are prepended to every generated file.
	Banner []string
	Logger *log.Logger
}

type generator struct {
	opts     Options
	log      *log.Logger
	byName   map[string]*CollectionModel
	include  *set.Set[string]
	order    []string
	modNames map[string]string
	pkg      Package
}

// Generate runs the two-pass generation: every included collection first
// gets eager definitions, then the reference graph is built and every
// collection on a cycle has its definitions regenerated behind z.lazy.
func Generate(model []CollectionModel, opts Options) (Package, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g := &generator{
		opts:   opts,
		log:    logger,
		byName: make(map[string]*CollectionModel, len(model)),
		pkg:    make(Package),
	}
	for i := range model {
		g.byName[model[i].Name] = &model[i]
	}

	g.selectCollections(model)
	if len(g.order) == 0 {
		return nil, errors.New("no collections to generate")
	}
	g.assignModuleNames()

	// Pass 1: eager definitions. A collection that cannot be generated
	// is logged and dropped; if anything was dropped the pass reruns so
	// references to dropped collections degrade cleanly.
	for g.buildAll() {
	}
	if len(g.order) == 0 {
		return nil, errors.New("all collections failed to generate")
	}

	// Pass 2: cycle detection and lazy regeneration.
	rg := g.buildGraph()
	cyclic := rg.cyclic()
	for _, name := range g.order {
		if !cyclic.Contains(name) {
			continue
		}
		g.log.Debug("regenerating lazily", "collection", name)
		if err := g.buildCollection(g.byName[name], true); err != nil {
			// Lazy regeneration repeats work that already succeeded.
			return nil, fmt.Errorf("regenerate %s: %w", name, err)
		}
	}

	g.buildIndex(rg)
	for _, mod := range g.pkg {
		mod.Banner = opts.Banner
	}
	return g.pkg, nil
}

func (g *generator) selectCollections(model []CollectionModel) {
	var allow *set.Set[string]
	if len(g.opts.Collections) > 0 {
		allow = set.From(g.opts.Collections)
	}
	g.include = set.New[string](len(model))
	for i := range model {
		c := &model[i]
		switch {
		case allow != nil && !allow.Contains(c.Name):
			continue
		case c.System && !g.opts.IncludeSystem:
			continue
		case c.Hidden && g.opts.SkipHidden:
			continue
		}
		g.include.Insert(c.Name)
		g.order = append(g.order, c.Name)
	}
}

// assignModuleNames maps collections to module names, deduplicating with a
// numeric suffix. "index" is reserved, and so is "directus_files" for the
// built-in file object module.
func (g *generator) assignModuleNames() {
	used := set.New[string](len(g.order) + 2)
	used.Insert("index")
	if !g.include.Contains(FilesCollection) {
		used.Insert("directus_files")
	}
	g.modNames = make(map[string]string, len(g.order))
	for _, coll := range g.order {
		name := moduleName(coll)
		for i := uint64(1); used.Contains(name); i++ {
			name = moduleName(coll) + "_" + strconv.FormatUint(i, 10)
		}
		used.Insert(name)
		g.modNames[coll] = name
	}
}

// buildAll generates eager definitions for every included collection and
// reports whether any collection was dropped, which invalidates modules
// already built against it.
func (g *generator) buildAll() (dirty bool) {
	g.pkg = make(Package)
	kept := g.order[:0]
	for _, name := range g.order {
		if err := g.buildCollection(g.byName[name], false); err != nil {
			g.log.Error("skipping collection", "collection", name, "err", err)
			g.include.Remove(name)
			continue
		}
		kept = append(kept, name)
	}
	dirty = len(kept) != len(g.order)
	g.order = kept
	return dirty
}

func (g *generator) module(collection string) *Module {
	name := g.modNames[collection]
	if mod, ok := g.pkg[name]; ok {
		return mod
	}
	mod := newModule(collection)
	g.pkg[name] = mod
	return mod
}

// filesModule returns the shared file object module, creating the built-in
// one on first use when directus_files itself is not generated.
func (g *generator) filesModule() *Module {
	if g.include.Contains(FilesCollection) {
		return g.module(FilesCollection)
	}
	if mod, ok := g.pkg["directus_files"]; ok {
		return mod
	}
	mod := fileModule()
	g.pkg["directus_files"] = mod
	return mod
}

func (g *generator) buildCollection(c *CollectionModel, lazy bool) error {
	if len(c.Fields) == 0 {
		return errors.New("collection has no fields")
	}
	mod := g.module(c.Name)

	var zodLines, tsLines []string
	for i := range c.Fields {
		f := &c.Fields[i]
		zodExpr, tsType := g.fieldExpr(c, f, mod)

		comment := ""
		if f.Note != "" {
			comment = " // " + strings.ReplaceAll(f.Note, "\n", " ")
		}
		zodLines = append(zodLines, fmt.Sprintf("\t%q: %s,%s", f.Name, zodExpr, comment))

		key := strconv.Quote(f.Name)
		if g.optional(f) {
			key += "?"
		}
		tsLines = append(tsLines, fmt.Sprintf("\t%s: %s;%s", key, tsType, comment))
	}

	object := "z.object({\n" + strings.Join(zodLines, "\n") + "\n})"
	schemaName, typeName := SchemaName(c.Name), TypeName(c.Name)
	mod.Defs.Delete(typeName)
	mod.Defs.Delete(schemaName)
	if lazy {
		mod.Defs.Set(typeName, fmt.Sprintf(
			"export interface %s {\n%s\n}",
			typeName, strings.Join(tsLines, "\n"),
		))
		mod.Defs.Set(schemaName, fmt.Sprintf(
			"export const %s: z.ZodType<%s> = z.lazy(() => %s);",
			schemaName, typeName, object,
		))
	} else {
		mod.Defs.Set(schemaName, fmt.Sprintf(
			"export const %s = %s;", schemaName, object,
		))
		mod.Defs.Set(typeName, fmt.Sprintf(
			"export type %s = z.infer<typeof %s>;", typeName, schemaName,
		))
	}
	return nil
}

// optional reports whether a field may be absent from payloads: anything
// the server fills in on its own (defaults, auto-increment) that is not
// required and not the primary key.
func (g *generator) optional(f *FieldModel) bool {
	return f.HasDefault && !f.Required && !f.PrimaryKey
}

// fieldExpr builds the Zod expression and TS type for one field, recording
// any cross-module imports on mod.
func (g *generator) fieldExpr(c *CollectionModel, f *FieldModel, mod *Module) (string, string) {
	zodExpr, tsType := g.baseExpr(c, f, mod)
	if override, ok := g.opts.TypeMappings[c.Name+"."+f.Name]; ok {
		zodExpr, tsType = override, "unknown"
	}
	if f.Nullable {
		zodExpr += ".nullable()"
		tsType += " | null"
	}
	if g.optional(f) {
		zodExpr += ".optional()"
	}
	return zodExpr, tsType
}

func (g *generator) baseExpr(c *CollectionModel, f *FieldModel, mod *Module) (string, string) {
	switch f.Kind {
	case RelationNone:
		m, known := mappingFor(f.Type)
		if !known {
			g.log.Warn("unknown field type",
				"collection", c.Name, "field", f.Name, "type", f.Type)
		}
		return m.Zod, m.TS
	case RelationAnyItem:
		return g.anyItemExpr(c, f, mod)
	default:
		zodExpr, tsType := g.relationExpr(c, f.Related, mod)
		if f.Kind.ToMany() {
			return "z.array(" + zodExpr + ")", "(" + tsType + ")[]"
		}
		return zodExpr, tsType
	}
}

// relationExpr is the union of the related collection's primary key schema
// and its row schema, since the API returns either depending on the query.
func (g *generator) relationExpr(c *CollectionModel, related string, mod *Module) (string, string) {
	keyZod, keyTS := g.keyExpr(related)
	refZod, refTS := g.schemaRef(c, related, mod)
	if refZod == "" {
		return keyZod, keyTS
	}
	return fmt.Sprintf("z.union([%s, %s])", keyZod, refZod),
		keyTS + " | " + refTS
}

// anyItemExpr types the item field of an m2a junction: the value may be a
// key into, or a row of, any collection on the allow-list.
func (g *generator) anyItemExpr(c *CollectionModel, f *FieldModel, mod *Module) (string, string) {
	// An empty allow-list gives the value no shape at all.
	if len(f.Allowed) == 0 {
		return "z.unknown()", "unknown"
	}
	zodParts := []string{"z.string()", "z.number()"}
	tsParts := []string{"string", "number"}
	for _, allowed := range f.Allowed {
		refZod, refTS := g.schemaRef(c, allowed, mod)
		if refZod == "" {
			continue
		}
		zodParts = append(zodParts, refZod)
		tsParts = append(tsParts, refTS)
	}
	return "z.union([" + strings.Join(zodParts, ", ") + "])",
		strings.Join(tsParts, " | ")
}

// schemaRef resolves a reference to another collection's schema, importing
// its module when needed. Empty results mean the target is not generated
// and the reference degrades to the key schema.
func (g *generator) schemaRef(c *CollectionModel, target string, mod *Module) (string, string) {
	if target == c.Name {
		return SchemaName(target), TypeName(target)
	}
	if target == FilesCollection && !g.include.Contains(FilesCollection) {
		files := g.filesModule()
		mod.Imports.Set("directus_files", files)
		return "directus_files.directusFileSchema", "directus_files.DirectusFile"
	}
	if !g.include.Contains(target) {
		g.log.Warn("referenced collection not generated, falling back to keys",
			"collection", c.Name, "target", target)
		return "", ""
	}
	name := g.modNames[target]
	mod.Imports.Set(name, g.module(target))
	return name + "." + SchemaName(target), name + "." + TypeName(target)
}

// keyExpr is the schema of a collection's primary key, used as the scalar
// half of relation unions. Unknown targets accept both key shapes.
func (g *generator) keyExpr(target string) (string, string) {
	if target == FilesCollection && !g.include.Contains(FilesCollection) {
		return "z.string().uuid()", "string"
	}
	if c, ok := g.byName[target]; ok {
		if pk := c.PrimaryKeyField(); pk != nil {
			m, _ := mappingFor(pk.Type)
			return m.Zod, m.TS
		}
	}
	return "z.union([z.string(), z.number()])", "string | number"
}

// buildGraph records one edge per schema reference between generated
// collections. Only these edges can make an output file cyclic.
func (g *generator) buildGraph() *graph {
	rg := newGraph()
	for _, name := range g.order {
		rg.addNode(name)
	}
	for _, name := range g.order {
		c := g.byName[name]
		for i := range c.Fields {
			f := &c.Fields[i]
			if f.Related != "" {
				rg.addEdge(name, f.Related)
			}
			if f.Kind == RelationAnyItem {
				for _, allowed := range f.Allowed {
					rg.addEdge(name, allowed)
				}
			}
		}
	}
	return rg
}

// buildIndex emits the index module: wildcard re-exports in dependency
// order, the file object module first when present.
func (g *generator) buildIndex(rg *graph) {
	index := newModule("index")
	index.Zod = false
	if _, ok := g.pkg["directus_files"]; ok && !g.include.Contains(FilesCollection) {
		index.Defs.Set("directus_files", `export * from "./directus_files";`)
	}
	for _, name := range rg.sorted() {
		modName := g.modNames[name]
		index.Defs.Set(modName, fmt.Sprintf("export * from %q;", "./"+modName))
	}
	g.pkg["index"] = index
}
