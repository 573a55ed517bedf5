// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleRender(t *testing.T) {
	t.Parallel()

	users := newModule("users")
	users.Defs.Set("userSchema", "export const userSchema = z.object({});")

	m := newModule("articles")
	m.Imports.Set("users", users)
	m.Defs.Set("articleSchema", "export const articleSchema = z.object({});")
	m.Defs.Set("Article", "export type Article = z.infer<typeof articleSchema>;")

	expected := `/* articles */
import { z } from "zod";
import * as users from "./users";

export const articleSchema = z.object({});

export type Article = z.infer<typeof articleSchema>;
`
	require.Equal(t, expected, string(m.Render()))
}

func TestModuleRenderNoZod(t *testing.T) {
	t.Parallel()

	m := newModule("index")
	m.Zod = false
	m.Defs.Set("users", `export * from "./users";`)

	expected := `/* index */

export * from "./users";
`
	require.Equal(t, expected, string(m.Render()))
}

func TestModuleRenderBanner(t *testing.T) {
	t.Parallel()

	m := newModule("users")
	m.Banner = []string{"AUTO-GENERATED"}
	require.True(t, bytes.HasPrefix(m.Render(), []byte("// AUTO-GENERATED\n/* users */")))
}

func TestPackageRender(t *testing.T) {
	t.Parallel()

	pkg := Package{
		"users":    newModule("users"),
		"articles": newModule("articles"),
	}

	var mu sync.Mutex
	written := make(map[string][]byte)
	err := pkg.Render(RenderOptions{
		Write: func(moduleName string, data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			written[moduleName] = data
			return nil
		},
	})
	require.NoError(t, err)
	require.Len(t, written, 2)
	require.Contains(t, written, "users")
	require.Contains(t, written, "articles")
}

func TestPackageRenderFormatter(t *testing.T) {
	t.Parallel()

	pkg := Package{"users": newModule("users")}

	var mu sync.Mutex
	var got []byte
	err := pkg.Render(RenderOptions{
		Formatter: func(b []byte) ([]byte, error) {
			return append(b, "// formatted\n"...), nil
		},
		Write: func(_ string, data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			got = data
			return nil
		},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasSuffix(got, []byte("// formatted\n")))
}

func TestPackageRenderWriteError(t *testing.T) {
	t.Parallel()

	pkg := Package{"users": newModule("users")}
	wantErr := errors.New("disk full")
	err := pkg.Render(RenderOptions{
		Write: func(string, []byte) error { return wantErr },
	})
	require.ErrorIs(t, err, wantErr)
}
