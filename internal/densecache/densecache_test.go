// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package densecache

import (
	"context"
	"path/filepath"
	"testing"
)

func TestKeyDistinguishesColumnBudget(t *testing.T) {
	ast := []byte(`{"kind":"block","statements":[]}`)
	k1 := Key(ast, 80)
	k2 := Key(ast, 120)
	if k1 == k2 {
		t.Errorf("Key(ast, 80) == Key(ast, 120); want distinct keys")
	}
	if Key(ast, 80) != k1 {
		t.Errorf("Key is not deterministic")
	}
}

func TestGetPut(t *testing.T) {
	ctx := context.Background()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal("Open:", err)
	}
	defer c.Close()

	key := Key([]byte(`{"kind":"block","statements":[]}`), 80)
	if _, ok, err := c.Get(ctx, key); err != nil {
		t.Fatal("Get (miss):", err)
	} else if ok {
		t.Error("Get reported a hit before any Put")
	}

	const text = "local x=1"
	if err := c.Put(ctx, key, text); err != nil {
		t.Fatal("Put:", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatal("Get (hit):", err)
	}
	if !ok {
		t.Fatal("Get reported a miss after Put")
	}
	if got != text {
		t.Errorf("Get = %q; want %q", got, text)
	}

	const replacement = "local x=2"
	if err := c.Put(ctx, key, replacement); err != nil {
		t.Fatal("Put (overwrite):", err)
	}
	got, _, err = c.Get(ctx, key)
	if err != nil {
		t.Fatal("Get (after overwrite):", err)
	}
	if got != replacement {
		t.Errorf("Get after overwrite = %q; want %q", got, replacement)
	}
}
