// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package densecli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luadense/luadense/internal/denseconfig"
)

func TestFormatOne(t *testing.T) {
	var buf strings.Builder
	err := formatOne(t.Context(), strings.NewReader(`{"statements":[],"last":null}`), &buf, 80)
	if err != nil {
		t.Fatal("formatOne:", err)
	}
	if got := buf.String(); got != "" {
		t.Errorf("formatOne(empty block) = %q; want empty string", got)
	}
}

func TestFormatOneRejectsMalformedAST(t *testing.T) {
	var buf strings.Builder
	if err := formatOne(t.Context(), strings.NewReader("not json"), &buf, 80); err == nil {
		t.Error("formatOne(malformed ast) succeeded; want error")
	}
}

func TestRunFormatSingleFileToFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "chunk.json")
	if err := os.WriteFile(inPath, []byte(`{"statements":[],"last":null}`), 0o666); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "chunk.lua")

	g := &globalOptions{config: denseconfig.Default()}
	opts := &formatOptions{output: outPath, concurrency: 1}
	if err := runFormat(t.Context(), new(strings.Builder), g, opts, []string{inPath}); err != nil {
		t.Fatal("runFormat:", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}

func TestRunFormatBatch(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 3; i++ {
		p := filepath.Join(dir, strings.Repeat("x", i+1)+".json")
		if err := os.WriteFile(p, []byte(`{"statements":[],"last":null}`), 0o666); err != nil {
			t.Fatal(err)
		}
		files = append(files, p)
	}

	g := &globalOptions{config: denseconfig.Default()}
	opts := &formatOptions{concurrency: 2}
	var out strings.Builder
	if err := runFormat(t.Context(), &out, g, opts, files); err != nil {
		t.Fatal("runFormat:", err)
	}
}

func TestRunFormatRejectsOutputWithMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")
	for _, p := range []string{p1, p2} {
		if err := os.WriteFile(p, []byte(`{"statements":[],"last":null}`), 0o666); err != nil {
			t.Fatal(err)
		}
	}

	g := &globalOptions{config: denseconfig.Default()}
	opts := &formatOptions{output: filepath.Join(dir, "out.lua"), concurrency: 1}
	if err := runFormat(t.Context(), new(strings.Builder), g, opts, []string{p1, p2}); err == nil {
		t.Error("runFormat with --output and two files succeeded; want error")
	}
}
