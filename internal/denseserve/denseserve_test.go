// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package denseserve

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luadense/luadense/internal/densecache"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cache, err := densecache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal("densecache.Open:", err)
	}
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Error(err)
		}
	})
	srv := &Server{Cache: cache}
	ts := httptest.NewServer(srv.NewHandler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleDiscovery(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d; want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/hal+json" {
		t.Errorf("Content-Type = %q; want application/hal+json", got)
	}

	var doc struct {
		Links map[string]struct {
			HRef      string `json:"href"`
			Templated bool   `json:"templated"`
		} `json:"_links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal("decode discovery document:", err)
	}
	format, ok := doc.Links["format"]
	if !ok {
		t.Fatal("discovery document has no \"format\" link")
	}
	if !format.Templated {
		t.Error("\"format\" link is not marked templated")
	}
}

func TestHandleFormat(t *testing.T) {
	ts := newTestServer(t)

	const astJSON = `{"statements":[],"last":null}`
	post := func() *http.Response {
		resp, err := ts.Client().Post(ts.URL+"/format?width=80", "application/json", strings.NewReader(astJSON))
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	resp := post()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /format status = %d; want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(body); got != "" {
		t.Errorf("POST /format (empty block) = %q; want empty string", got)
	}

	// A second identical request also succeeds. The first request's cache
	// write runs in the background, so this may or may not be a cache hit.
	resp2 := post()
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("POST /format (cached) status = %d; want 200", resp2.StatusCode)
	}
}

func TestHandleFormatRejectsBadWidth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/format?width=-1", "application/json", strings.NewReader(`{"statements":[],"last":null}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("POST /format?width=-1 status = %d; want 400", resp.StatusCode)
	}
}
