// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

// Package denseserve is the HTTP formatting service: POST /format runs a
// JSON-encoded Lua AST through the generator and returns the dense text,
// optionally brotli-compressed; GET / returns a HAL discovery document
// pointing at it. The handler chain, logging, and compression follow the
// same shape the teacher repository uses for its binary-cache HTTP
// surface (internal/remotestore's brotli decoding, cmd/zb/serve_ui.go's
// gorilla/handlers wrapping).
package denseserve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dsnet/compress/brotli"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"zombiezen.com/go/log"

	"github.com/luadense/luadense/generator"
	"github.com/luadense/luadense/internal/densecache"
	"github.com/luadense/luadense/internal/hal"
	"github.com/luadense/luadense/luaast"
)

// DefaultColumnBudget is used when a /format request does not specify a
// "width" query parameter.
const DefaultColumnBudget = generator.DefaultColumnBudget

// Server formats incoming Lua ASTs and optionally caches the results.
type Server struct {
	// Cache is consulted before formatting and written to afterward. Nil
	// disables caching.
	Cache *densecache.Cache
}

// NewHandler returns the denseserve HTTP handler, wrapped in combined
// access logging and panic recovery the way cmd/zb/serve_ui.go wraps its
// web server with gorilla/handlers.
func (srv *Server) NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", srv.handleDiscovery)
	mux.HandleFunc("POST /format", srv.handleFormat)

	var h http.Handler = mux
	h = handlers.CombinedLoggingHandler(logWriter{}, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return h
}

// handleDiscovery serves the HAL discovery document advertising the
// "format" link relation as a URI template, the same Link.Expand pairing
// internal/remotestore's HTTPStore client consumes.
func (srv *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	doc := &hal.Resource{
		Links: map[string]hal.ArrayOrObject[*hal.Link]{
			hal.SelfRelationType: hal.Object(&hal.Link{HRef: "/"}),
			"format": hal.Object(&hal.Link{
				HRef:      "/format{?width}",
				Templated: true,
			}),
		},
		Properties: map[string]json.RawMessage{
			"defaultColumnBudget": json.RawMessage(strconv.Itoa(DefaultColumnBudget)),
		},
	}
	w.Header().Set("Content-Type", hal.MediaType)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Errorf(r.Context(), "encode discovery document: %v", err)
	}
}

// handleFormat decodes a JSON-encoded luaast.Block request body, runs it
// through the generator at the requested column budget, and writes the
// dense text back, brotli-compressed when the client advertises support.
func (srv *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := uuid.NewString()

	columnBudget := DefaultColumnBudget
	if raw := r.URL.Query().Get("width"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid width", http.StatusBadRequest)
			return
		}
		columnBudget = n
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		http.Error(w, fmt.Sprintf("read body: %v", err), http.StatusBadRequest)
		return
	}

	cacheKey := densecache.Key(body, columnBudget)
	if srv.Cache != nil {
		if text, ok, err := srv.Cache.Get(ctx, cacheKey); err == nil && ok {
			log.Debugf(ctx, "[%s] cache hit for %s", requestID, cacheKey)
			writeFormatted(w, r, text)
			return
		} else if err != nil {
			log.Warnf(ctx, "[%s] cache lookup %s: %v", requestID, cacheKey, err)
		}
	}

	block := new(luaast.Block)
	if err := block.UnmarshalJSON(body); err != nil {
		http.Error(w, fmt.Sprintf("decode ast: %v", err), http.StatusBadRequest)
		return
	}

	text, err := format(block, columnBudget)
	if err != nil {
		log.Errorf(ctx, "[%s] format: %v", requestID, err)
		http.Error(w, "format failed", http.StatusInternalServerError)
		return
	}

	if srv.Cache != nil {
		// Detach the cache write from the request context: a client
		// disconnecting after the response is sent shouldn't cancel a
		// half-finished write and leave a corrupt cache row.
		detached := context.WithoutCancel(ctx)
		go func() {
			if err := srv.Cache.Put(detached, cacheKey, text); err != nil {
				log.Warnf(detached, "cache put %s: %v", cacheKey, err)
			}
		}()
	}

	writeFormatted(w, r, text)
}

// format runs block through a fresh generator, recovering the one
// programming-error panic the core documents (spec.md §7) into an error
// so the HTTP layer can return a 500 instead of crashing the process.
func format(block *luaast.Block, columnBudget int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("generator panic: %v", p)
		}
	}()
	g := generator.New(columnBudget)
	g.WriteBlock(block)
	return g.IntoText(), nil
}

func writeFormatted(w http.ResponseWriter, r *http.Request, text string) {
	w.Header().Set("Content-Type", "text/x-lua; charset=utf-8")
	if acceptsBrotli(r) {
		w.Header().Set("Content-Encoding", "br")
		bw, err := brotli.NewWriter(w, nil)
		if err != nil {
			log.Errorf(r.Context(), "brotli writer: %v", err)
			http.Error(w, "compression failed", http.StatusInternalServerError)
			return
		}
		defer bw.Close()
		if _, err := bw.Write([]byte(text)); err != nil {
			log.Errorf(r.Context(), "brotli write: %v", err)
		}
		return
	}
	if _, err := w.Write([]byte(text)); err != nil {
		log.Errorf(r.Context(), "write response: %v", err)
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range r.Header.Values("Accept-Encoding") {
		if strings.Contains(enc, "br") {
			return true
		}
	}
	return false
}

// logWriter adapts zombiezen.com/go/log to the io.Writer
// handlers.CombinedLoggingHandler expects for its access log.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Infof(context.Background(), "%s", bytes.TrimSuffix(p, []byte("\n")))
	return len(p), nil
}
