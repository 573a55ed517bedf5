// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package directus

import "strings"

// Collection is one entry of the /collections payload.
type Collection struct {
	Collection string          `json:"collection"`
	Meta       *CollectionMeta `json:"meta"`
}

type CollectionMeta struct {
	Hidden    bool   `json:"hidden"`
	Singleton bool   `json:"singleton"`
	Note      string `json:"note"`
}

// IsSystem reports whether the collection is one of the built-in
// directus_* collections.
func (c Collection) IsSystem() bool {
	return strings.HasPrefix(c.Collection, "directus_")
}

func (c Collection) Hidden() bool {
	return c.Meta != nil && c.Meta.Hidden
}

func (c Collection) Singleton() bool {
	return c.Meta != nil && c.Meta.Singleton
}

// Field is one entry of the /fields payload.
type Field struct {
	Collection string       `json:"collection"`
	Field      string       `json:"field"`
	Type       string       `json:"type"`
	Meta       *FieldMeta   `json:"meta"`
	Schema     *FieldSchema `json:"schema"`
}

type FieldMeta struct {
	Hidden   bool     `json:"hidden"`
	Required bool     `json:"required"`
	Special  []string `json:"special"`
	Note     string   `json:"note"`
}

// HasSpecial reports whether meta.special contains the given flag.
func (f Field) HasSpecial(name string) bool {
	if f.Meta == nil {
		return false
	}
	for _, s := range f.Meta.Special {
		if s == name {
			return true
		}
	}
	return false
}

type FieldSchema struct {
	IsNullable       bool   `json:"is_nullable"`
	IsPrimaryKey     bool   `json:"is_primary_key"`
	HasAutoIncrement bool   `json:"has_auto_increment"`
	MaxLength        *int   `json:"max_length"`
	DefaultValue     any    `json:"default_value"`
	ForeignKeyTable  string `json:"foreign_key_table"`
	ForeignKeyColumn string `json:"foreign_key_column"`
}

// Relation is one entry of the /relations payload. RelatedCollection is
// empty for many-to-any relations; the allow-list lives in Meta.
type Relation struct {
	Collection        string        `json:"collection"`
	Field             string        `json:"field"`
	RelatedCollection string        `json:"related_collection"`
	Meta              *RelationMeta `json:"meta"`
}

type RelationMeta struct {
	ManyCollection        string   `json:"many_collection"`
	ManyField             string   `json:"many_field"`
	OneCollection         *string  `json:"one_collection"`
	OneField              *string  `json:"one_field"`
	OneCollectionField    *string  `json:"one_collection_field"`
	OneAllowedCollections []string `json:"one_allowed_collections"`
	JunctionField         *string  `json:"junction_field"`
	SortField             *string  `json:"sort_field"`
}

// Snapshot bundles the three metadata payloads a generation run needs.
type Snapshot struct {
	Collections []Collection
	Fields      []Field
	Relations   []Relation
}
