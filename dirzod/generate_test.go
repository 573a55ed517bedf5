// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/directkit/dirzod/directus"
)

func generateTest(t *testing.T, opts Options) Package {
	t.Helper()
	opts.Logger = log.New(io.Discard)
	pkg, err := Generate(BuildModel(testSnapshot()), opts)
	require.NoError(t, err)
	return pkg
}

func TestGenerateEagerCollection(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{})
	users := pkg["users"]
	require.NotNil(t, users)

	expected := `/* users */
import { z } from "zod";

export const userSchema = z.object({
	"id": z.string().uuid(),
	"name": z.string(),
});

export type User = z.infer<typeof userSchema>;
`
	require.Equal(t, expected, string(users.Render()))
}

func TestGenerateLazyCycle(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{})

	// articles <-> comments is a cycle, so both sides regenerate behind
	// z.lazy with an explicit interface.
	articles := string(pkg["articles"].Render())
	require.Contains(t, articles, "export interface Article {")
	require.Contains(t, articles,
		"export const articleSchema: z.ZodType<Article> = z.lazy(() => z.object({")
	require.Contains(t, articles,
		`"author": z.union([z.string().uuid(), users.userSchema]).nullable(),`)
	require.Contains(t, articles,
		`"comments": z.array(z.union([z.number().int(), comments.commentSchema])),`)
	require.Contains(t, articles,
		`"author": string | users.User | null;`)
	require.Contains(t, articles, `import * as users from "./users";`)

	// users is referenced by the cycle but not on it: it stays eager.
	require.Contains(t, string(pkg["users"].Render()),
		"export type User = z.infer<typeof userSchema>;")
}

func TestGenerateSelfReference(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{})
	pages := string(pkg["pages"].Render())
	require.Contains(t, pages,
		"export const pageSchema: z.ZodType<Page> = z.lazy(() => z.object({")
	// Self references use the local names, no import.
	require.Contains(t, pages,
		`"parent": z.union([z.number().int(), pageSchema]).nullable(),`)
	require.NotContains(t, pages, `import * as pages`)
}

func TestGenerateFileField(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{})

	articles := string(pkg["articles"].Render())
	require.Contains(t, articles, `import * as directus_files from "./directus_files";`)
	require.Contains(t, articles,
		`"cover": z.union([z.string().uuid(), directus_files.directusFileSchema]).nullable(),`)

	files := pkg["directus_files"]
	require.NotNil(t, files)
	rendered := string(files.Render())
	require.Contains(t, rendered, "export const directusFileSchema = z.object({")
	require.Contains(t, rendered, "export const imageMetadataSchema")
	require.Contains(t, rendered, "export type DirectusFile = z.infer<typeof directusFileSchema>;")
}

func TestGenerateManyToAny(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{})

	pages := string(pkg["pages"].Render())
	require.Contains(t, pages,
		`"blocks": z.array(z.union([z.number().int(), pages_blocks.pagesBlockSchema])),`)

	junction := string(pkg["pages_blocks"].Render())
	require.Contains(t, junction,
		`"item": z.union([z.string(), z.number(), headings.headingSchema]),`)
}

func TestGenerateManyToAnyEmptyAllowList(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	for i := range snap.Relations {
		rel := &snap.Relations[i]
		if rel.Collection == "pages_blocks" && rel.Field == "item" {
			rel.Meta.OneAllowedCollections = nil
		}
	}

	pkg, err := Generate(BuildModel(snap), Options{Logger: log.New(io.Discard)})
	require.NoError(t, err)

	// With nothing allow-listed the item value has no shape.
	junction := string(pkg["pages_blocks"].Render())
	require.Contains(t, junction, `"item": z.unknown(),`)
	require.NotContains(t, junction, "headings.")
}

func TestGenerateSkipsEmptyCollections(t *testing.T) {
	t.Parallel()

	// article_layout has no fields; it is logged and dropped while the
	// rest of the run goes through.
	pkg := generateTest(t, Options{})
	require.NotContains(t, pkg, "article_layout")
	require.Contains(t, pkg, "articles")
}

func TestGenerateDegradesReferencesToDroppedCollections(t *testing.T) {
	t.Parallel()

	// users has no fields, so it is dropped; the rerun rebuilds articles
	// against the shrunken set, leaving the author field on its key
	// schema with no dangling import.
	snap := &directus.Snapshot{
		Collections: []directus.Collection{
			{Collection: "articles", Meta: &directus.CollectionMeta{}},
			{Collection: "users", Meta: &directus.CollectionMeta{}},
		},
		Fields: []directus.Field{
			field("articles", "id", "integer", pkSchema()),
			field("articles", "author", "uuid", &directus.FieldSchema{IsNullable: true}),
		},
		Relations: []directus.Relation{
			{
				Collection: "articles", Field: "author", RelatedCollection: "users",
				Meta: &directus.RelationMeta{ManyCollection: "articles", ManyField: "author"},
			},
		},
	}

	pkg, err := Generate(BuildModel(snap), Options{Logger: log.New(io.Discard)})
	require.NoError(t, err)
	require.NotContains(t, pkg, "users")

	articles := string(pkg["articles"].Render())
	require.Contains(t, articles,
		`"author": z.union([z.string(), z.number()]).nullable(),`)
	require.NotContains(t, articles, "users.")
	require.NotContains(t, articles, `import * as users`)
	require.NotContains(t, string(pkg.Index().Render()), "./users")
}

func TestGenerateSkipHiddenDegradesJunctions(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{SkipHidden: true})
	require.NotContains(t, pkg, "articles_tags")

	// With the junction gone the m2m field degrades to its key schema.
	articles := string(pkg["articles"].Render())
	require.Contains(t, articles, `"tags": z.array(z.number().int()),`)
	require.NotContains(t, articles, "articles_tags.")
}

func TestGenerateAllowList(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{Collections: []string{"users"}})
	require.Len(t, pkg, 2)
	require.Contains(t, pkg, "users")
	require.Contains(t, pkg, "index")
}

func TestGenerateTypeMappingOverride(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{
		TypeMappings: map[string]string{"users.name": "z.string().max(120)"},
	})
	require.Contains(t, string(pkg["users"].Render()),
		`"name": z.string().max(120),`)
}

func TestGenerateIndexOrder(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{})
	index := string(pkg.Index().Render())
	require.NotContains(t, index, `import { z } from "zod";`)

	// Dependencies come before dependents, the shared file module first.
	var lines []string
	for _, line := range strings.Split(index, "\n") {
		if strings.HasPrefix(line, "export * from") {
			lines = append(lines, line)
		}
	}
	require.Equal(t, []string{
		`export * from "./directus_files";`,
		`export * from "./users";`,
		`export * from "./comments";`,
		`export * from "./tags";`,
		`export * from "./articles_tags";`,
		`export * from "./articles";`,
		`export * from "./headings";`,
		`export * from "./pages_blocks";`,
		`export * from "./pages";`,
	}, lines)
}

func TestGenerateBanner(t *testing.T) {
	t.Parallel()

	pkg := generateTest(t, Options{Banner: []string{"AUTO-GENERATED", "Do not edit."}})
	for _, mod := range pkg {
		rendered := string(mod.Render())
		require.True(t, strings.HasPrefix(rendered, "// AUTO-GENERATED\n// Do not edit.\n"))
	}
}

func TestGenerateEmptyModel(t *testing.T) {
	t.Parallel()

	_, err := Generate(nil, Options{Logger: log.New(io.Discard)})
	require.Error(t, err)
}
