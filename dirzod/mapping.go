// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import "strings"

// TypeMapping is one row of the field-type table: the Zod expression and
// the TypeScript type a Directus field type maps onto.
type TypeMapping struct {
	Zod string
	TS  string
}

var fieldTypes = map[string]TypeMapping{
	"string":     {Zod: "z.string()", TS: "string"},
	"text":       {Zod: "z.string()", TS: "string"},
	"hash":       {Zod: "z.string()", TS: "string"},
	"uuid":       {Zod: "z.string().uuid()", TS: "string"},
	"integer":    {Zod: "z.number().int()", TS: "number"},
	"bigInteger": {Zod: "z.number().int()", TS: "number"},
	"float":      {Zod: "z.number()", TS: "number"},
	"decimal":    {Zod: "z.number()", TS: "number"},
	"boolean":    {Zod: "z.boolean()", TS: "boolean"},
	// Temporal types arrive as ISO strings.
	"date":      {Zod: "z.string()", TS: "string"},
	"dateTime":  {Zod: "z.string()", TS: "string"},
	"time":      {Zod: "z.string()", TS: "string"},
	"timestamp": {Zod: "z.string()", TS: "string"},
	"json":      {Zod: "z.unknown()", TS: "unknown"},
	"csv":       {Zod: "z.array(z.string())", TS: "string[]"},
	"binary":    {Zod: "z.string()", TS: "string"},
}

var geometryType = TypeMapping{
	Zod: "z.record(z.string(), z.unknown())",
	TS:  "Record<string, unknown>",
}

// unknownType is the fallback for field types the table does not know.
var unknownType = TypeMapping{Zod: "z.unknown()", TS: "unknown"}

// mappingFor resolves a Directus field type. The second result is false
// when the fallback was used, so callers can log the miss.
func mappingFor(fieldType string) (TypeMapping, bool) {
	if m, ok := fieldTypes[fieldType]; ok {
		return m, true
	}
	if fieldType == "geometry" || strings.HasPrefix(fieldType, "geometry.") {
		return geometryType, true
	}
	return unknownType, false
}
