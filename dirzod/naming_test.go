// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeName(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		collection string
		expected   string
	}{
		"Plural":        {collection: "articles", expected: "Article"},
		"SnakeCase":     {collection: "blog_posts", expected: "BlogPost"},
		"Irregular":     {collection: "people", expected: "Person"},
		"IesPlural":     {collection: "categories", expected: "Category"},
		"AlreadySingle": {collection: "status", expected: "Status"},
		"Junction":      {collection: "articles_tags", expected: "ArticlesTag"},
		"SystemFiles":   {collection: "directus_files", expected: "DirectusFile"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, TypeName(tc.collection))
		})
	}
}

func TestSchemaName(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		collection string
		expected   string
	}{
		"Plural":      {collection: "articles", expected: "articleSchema"},
		"SnakeCase":   {collection: "blog_posts", expected: "blogPostSchema"},
		"SystemFiles": {collection: "directus_files", expected: "directusFileSchema"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, SchemaName(tc.collection))
		})
	}
}

func TestModuleName(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		collection string
		expected   string
	}{
		"Plain":        {collection: "articles", expected: "articles"},
		"Underscore":   {collection: "blog_posts", expected: "blog_posts"},
		"Hyphen":       {collection: "blog-posts", expected: "blog_posts"},
		"LeadingDigit": {collection: "2024_events", expected: "_2024_events"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, moduleName(tc.collection))
		})
	}
}
