// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"github.com/directkit/dirzod/directus"
)

// FilesCollection is the system collection backing file and image fields.
const FilesCollection = "directus_files"

type RelationKind int

const (
	RelationNone RelationKind = iota
	// RelationManyToOne is a foreign key to a single related row.
	RelationManyToOne
	// RelationOneToMany is the reverse side: an array of child rows.
	RelationOneToMany
	// RelationManyToMany is an o2m into a junction collection whose
	// junction field points at a single far collection.
	RelationManyToMany
	// RelationManyToAny is an o2m into a junction whose item field may
	// point at any collection from an allow-list.
	RelationManyToAny
	// RelationAnyItem is the item field of an m2a junction itself: a
	// single value typed by the allow-list.
	RelationAnyItem
	// RelationFile is an m2o into directus_files.
	RelationFile
	// RelationFiles is an o2m into a junction onto directus_files.
	RelationFiles
	// RelationTranslations is an o2m into a translations collection.
	RelationTranslations
)

func (k RelationKind) String() string {
	switch k {
	case RelationManyToOne:
		return "m2o"
	case RelationOneToMany:
		return "o2m"
	case RelationManyToMany:
		return "m2m"
	case RelationManyToAny:
		return "m2a"
	case RelationAnyItem:
		return "m2a-item"
	case RelationFile:
		return "file"
	case RelationFiles:
		return "files"
	case RelationTranslations:
		return "translations"
	default:
		return "none"
	}
}

// ToMany reports whether the field holds an array of related rows.
func (k RelationKind) ToMany() bool {
	switch k {
	case RelationOneToMany, RelationManyToMany, RelationManyToAny,
		RelationFiles, RelationTranslations:
		return true
	default:
		return false
	}
}

type FieldModel struct {
	Name       string
	Type       string
	Nullable   bool
	Required   bool
	PrimaryKey bool
	HasDefault bool
	Note       string

	Kind RelationKind
	// Related is the collection the field's value points at. For the
	// to-many kinds this is the child (or junction) collection, since
	// that is what the API returns as array elements; Far carries the
	// collection on the other side of a junction.
	Related string
	Far     string
	// Allowed is the m2a collection allow-list.
	Allowed []string
}

type CollectionModel struct {
	Name      string
	Hidden    bool
	Singleton bool
	System    bool
	Note      string
	Fields    []FieldModel
	// PrimaryKey indexes into Fields, -1 when the collection has none
	// (folder/group pseudo-collections).
	PrimaryKey int
}

// PrimaryKeyField returns the primary key field, or nil.
func (c *CollectionModel) PrimaryKeyField() *FieldModel {
	if c.PrimaryKey < 0 || c.PrimaryKey >= len(c.Fields) {
		return nil
	}
	return &c.Fields[c.PrimaryKey]
}

type relKey struct {
	collection string
	field      string
}

// BuildModel collapses a metadata snapshot into per-collection models with
// every field's relation kind resolved. Field order follows the /fields
// payload; collection order follows /collections. Alias fields that do not
// resolve to a relation (presentation and group fields) are dropped.
func BuildModel(snap *directus.Snapshot) []CollectionModel {
	fieldsByCollection := make(map[string][]directus.Field)
	for _, f := range snap.Fields {
		fieldsByCollection[f.Collection] = append(fieldsByCollection[f.Collection], f)
	}

	manySide := make(map[relKey]*directus.Relation)
	oneSide := make(map[relKey]*directus.Relation)
	for i := range snap.Relations {
		rel := &snap.Relations[i]
		manySide[relKey{rel.Collection, rel.Field}] = rel
		if rel.Meta != nil && rel.Meta.OneCollection != nil && rel.Meta.OneField != nil {
			oneSide[relKey{*rel.Meta.OneCollection, *rel.Meta.OneField}] = rel
		}
	}

	models := make([]CollectionModel, 0, len(snap.Collections))
	for _, coll := range snap.Collections {
		cm := CollectionModel{
			Name:       coll.Collection,
			Hidden:     coll.Hidden(),
			Singleton:  coll.Singleton(),
			System:     coll.IsSystem(),
			PrimaryKey: -1,
		}
		if coll.Meta != nil {
			cm.Note = coll.Meta.Note
		}

		for _, f := range fieldsByCollection[coll.Collection] {
			fm := FieldModel{
				Name: f.Field,
				Type: f.Type,
			}
			if f.Meta != nil {
				fm.Required = f.Meta.Required
				fm.Note = f.Meta.Note
			}
			if f.Schema != nil {
				fm.Nullable = f.Schema.IsNullable
				fm.PrimaryKey = f.Schema.IsPrimaryKey
				fm.HasDefault = f.Schema.DefaultValue != nil || f.Schema.HasAutoIncrement
			}

			switch {
			case resolveMany(&fm, manySide[relKey{coll.Collection, f.Field}]):
			case resolveOne(&fm, f, oneSide[relKey{coll.Collection, f.Field}], manySide):
			case f.Type == "alias":
				// Presentation or group field, nothing to generate.
				continue
			}

			if fm.PrimaryKey && cm.PrimaryKey < 0 {
				cm.PrimaryKey = len(cm.Fields)
			}
			cm.Fields = append(cm.Fields, fm)
		}
		models = append(models, cm)
	}
	return models
}

// resolveMany classifies a field that is the many side of a relation:
// m2o, file, or the item field of an m2a junction.
func resolveMany(fm *FieldModel, rel *directus.Relation) bool {
	if rel == nil {
		return false
	}
	// The collection-discriminator field marks an m2a item relation even
	// when the allow-list is empty.
	if rel.Meta != nil && (rel.Meta.OneCollectionField != nil || len(rel.Meta.OneAllowedCollections) > 0) {
		fm.Kind = RelationAnyItem
		fm.Allowed = rel.Meta.OneAllowedCollections
		return true
	}
	if rel.RelatedCollection == FilesCollection {
		fm.Kind = RelationFile
		fm.Related = FilesCollection
		return true
	}
	fm.Kind = RelationManyToOne
	fm.Related = rel.RelatedCollection
	return true
}

// resolveOne classifies a field that is the one side of a relation: o2m,
// or one of the junction-backed kinds (m2m, m2a, files, translations) when
// the child collection's junction field points onward.
func resolveOne(fm *FieldModel, f directus.Field, rel *directus.Relation, manySide map[relKey]*directus.Relation) bool {
	if rel == nil {
		return false
	}
	child := rel.Collection
	fm.Related = child

	// Translations relations also carry a junction field (the language
	// side), so the special flag wins over junction resolution.
	if f.HasSpecial("translations") {
		fm.Kind = RelationTranslations
		return true
	}

	if rel.Meta != nil && rel.Meta.JunctionField != nil {
		if far := manySide[relKey{child, *rel.Meta.JunctionField}]; far != nil {
			switch {
			case far.Meta != nil && (far.Meta.OneCollectionField != nil || len(far.Meta.OneAllowedCollections) > 0):
				fm.Kind = RelationManyToAny
				fm.Allowed = far.Meta.OneAllowedCollections
			case far.RelatedCollection == FilesCollection:
				fm.Kind = RelationFiles
				fm.Far = FilesCollection
			default:
				fm.Kind = RelationManyToMany
				fm.Far = far.RelatedCollection
			}
			return true
		}
	}

	fm.Kind = RelationOneToMany
	return true
}
