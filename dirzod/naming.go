// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

var pluralizer = pluralize.NewClient()

// TypeName derives the TypeScript type name for a collection:
// singular PascalCase, e.g. "blog_posts" -> "BlogPost".
func TypeName(collection string) string {
	return strcase.ToCamel(singularize(collection))
}

// SchemaName derives the exported schema constant for a collection:
// singular lowerCamel plus "Schema", e.g. "blog_posts" -> "blogPostSchema".
func SchemaName(collection string) string {
	return strcase.ToLowerCamel(singularize(collection)) + "Schema"
}

// singularize applies the pluralize client to the last word only, so
// "article_tags" becomes "article_tag" rather than losing its prefix.
func singularize(collection string) string {
	i := strings.LastIndexByte(collection, '_')
	if i < 0 {
		return pluralizer.Singular(collection)
	}
	return collection[:i+1] + pluralizer.Singular(collection[i+1:])
}

// moduleName sanitizes a collection name into something that is both a
// file stem and a valid TypeScript namespace-import identifier.
func moduleName(collection string) string {
	var sb strings.Builder
	for i, r := range collection {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
