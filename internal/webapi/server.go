// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

// Package webapi exposes the set-algebra engine as a JSON HTTP API for
// the browser front end. The engine stays a pure function, this layer
// only adds transport, CORS and optional memoization.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/netzlab/ipdiff"
	"github.com/netzlab/ipdiff/internal/cfg"
	"github.com/netzlab/ipdiff/internal/memo"
)

// Server serves the calculator API.
type Server struct {
	cfg   cfg.Config
	cache *memo.Cache
}

// New returns a server for the given configuration.
func New(c cfg.Config) *Server {
	return &Server{
		cfg:   c,
		cache: memo.New(c.MemoSize),
	}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/diff", s.handleDiff)
	mux.HandleFunc("POST /api/v1/free", s.handleFree)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return s.cors(mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// cors applies the configured allow-origin header and answers
// preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// diffRequest is the body of POST /api/v1/diff. A nil Align selects
// minimal aggregation, otherwise blocks of exactly that prefix length.
type diffRequest struct {
	SetA  string `json:"setA"`
	SetB  string `json:"setB"`
	Align *int   `json:"align"`
}

// freeRequest is the body of POST /api/v1/free. A nil TargetPrefix
// disables the size filter.
type freeRequest struct {
	Pools        string `json:"pools"`
	Allocations  string `json:"allocations"`
	TargetPrefix *int   `json:"targetPrefix"`
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if !s.decode(w, r, &req) {
		return
	}

	mode := ipdiff.Minimal
	if req.Align != nil {
		mode = ipdiff.Constrained(*req.Align)
	}

	start := time.Now()
	res := s.cache.ComputeDifference(req.SetA, req.SetB, mode)
	log.Debug("diff",
		"mode", mode,
		"blocks", res.Stats.Output.Count,
		"errors", len(res.Errors),
		"took", time.Since(start),
	)

	// the full result, not the export format: the front end needs
	// viz geometry and the per-line errors as data
	s.respond(w, struct {
		IPv4   []string     `json:"ipv4"`
		IPv6   []string     `json:"ipv6"`
		Stats  ipdiff.Stats `json:"stats"`
		Viz    ipdiff.Viz   `json:"viz"`
		Errors []string     `json:"errors"`
	}{res.IPv4, res.IPv6, res.Stats, res.Viz, nonNil(res.Errors)})
}

func (s *Server) handleFree(w http.ResponseWriter, r *http.Request) {
	var req freeRequest
	if !s.decode(w, r, &req) {
		return
	}

	target := -1
	if req.TargetPrefix != nil {
		target = *req.TargetPrefix
	}

	res := ipdiff.FindFreeSpace(req.Pools, req.Allocations, target)
	log.Debug("free", "target", target, "blocks", res.TotalBlocks)

	res.Errors = nonNil(res.Errors)
	s.respond(w, res)
}

// decode reads one bounded JSON body; malformed JSON is an HTTP error,
// unlike malformed input lines, which are data.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		log.Debug("bad request", "err", err)
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response", "err", err)
	}
}

// nonNil keeps empty JSON arrays as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
