// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package internal

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

type Config struct {
	Schema string `json:"$schema,omitzero"`
	// URL is the base URL of the Directus instance.
	URL string `json:"url" jsonschema:"required,minLength=1"`
	// Token is a static access token; the DIRECTUS_TOKEN environment
	// variable takes precedence.
	Token string `json:"token"`
	// OutputPath is the directory the .ts modules are written into.
	OutputPath string `json:"output_path" jsonschema:"required,minLength=1"`
	// IncludeSystem also generates the directus_* collections.
	IncludeSystem bool `json:"include_system"`
	// SkipHidden drops hidden collections (junction tables included).
	SkipHidden bool `json:"skip_hidden"`
	// Collections restricts generation to the listed collections.
	Collections Array[string] `json:"collections"`
	// TypeMappings overrides the Zod expression for single fields,
	// keyed "collection.field".
	TypeMappings Object[string, string] `json:"type_mappings"`
	// Banner lines are prepended to every generated file.
	Banner Array[string] `json:"banner"`
}

func (c *Config) UnmarshalJSON(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if err = sch.Validate(inst); err != nil {
		return err
	}
	type RawConfig Config
	return json.Unmarshal(data, (*RawConfig)(c))
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource("memory:", doc); err != nil {
		return nil, err
	}
	return compiler.Compile("memory:")
})

func Schema() string {
	return schema
}

//go:generate go run ./schemagen

//go:embed schema.json
var schema string
