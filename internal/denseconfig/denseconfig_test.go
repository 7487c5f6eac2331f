// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package denseconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	got := Default()
	if got.ColumnBudget <= 0 {
		t.Errorf("Default().ColumnBudget = %d; want positive", got.ColumnBudget)
	}
	if got.CacheDB == "" {
		t.Errorf("Default().CacheDB is empty")
	}
}

func TestMergeFile(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Config
	}{
		{
			name: "Scalars",
			data: `{
				// trailing comma and comments are fine, it's HuJSON
				"columnBudget": 120,
				"outputDir": "/tmp/out",
				"cacheDB": "/tmp/cache.db",
			}`,
			want: Config{
				ColumnBudget: 120,
				OutputDir:    "/tmp/out",
				CacheDB:      "/tmp/cache.db",
			},
		},
		{
			name: "PartialOverridesDefault",
			data: `{"columnBudget": 40}`,
			want: Config{
				ColumnBudget: 40,
				CacheDB:      "keep",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, FileName)
			if err := os.WriteFile(path, []byte(test.data), 0o666); err != nil {
				t.Fatal(err)
			}

			cfg := &Config{CacheDB: "keep"}
			if err := cfg.mergeFile(path); err != nil {
				t.Fatal("mergeFile:", err)
			}
			if diff := cmp.Diff(&test.want, cfg); diff != "" {
				t.Errorf("-want +got:\n%s", diff)
			}
		})
	}
}

func TestMergeFileMissing(t *testing.T) {
	cfg := Default()
	want := *cfg
	if err := cfg.mergeFile(filepath.Join(t.TempDir(), "does-not-exist.jsonc")); err != nil {
		t.Fatal("mergeFile:", err)
	}
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("-want +got:\n%s", diff)
	}
}
