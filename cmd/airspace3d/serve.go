// cmd/airspace3d/serve.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mmp/airspace3d/log"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/browser"
)

var contentTypes = map[string]string{
	"czml": "application/json",
	"kml":  "application/vnd.google-earth.kml+xml",
}

// newRouter returns the handler that serves the compiled documents at
// /documents/{name}, a listing of them at /documents, and a /health
// probe.
func newRouter(docs []*Document, lg *log.Logger) http.Handler {
	byName := make(map[string]*Document)
	var names []string
	for _, doc := range docs {
		if _, ok := byName[doc.Name]; ok {
			lg.Warnf("%s: duplicate document name; only the first is served", doc.Name)
			continue
		}
		byName[doc.Name] = doc
		names = append(names, doc.Name)
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/documents", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(names)
	})
	r.Get("/documents/{name}", func(w http.ResponseWriter, r *http.Request) {
		doc, ok := byName[chi.URLParam(r, "name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentTypes[doc.Format])
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Write(doc.Data)
	})
	return r
}

// serve serves the documents until ctx is canceled.
func serve(ctx context.Context, cfg *Config, docs []*Document, lg *log.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Serve,
		Handler:           newRouter(docs, lg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	lg.Infof("serving %d documents at http://%s/documents", len(docs), cfg.Serve)

	if cfg.Open && len(docs) > 0 {
		url := "http://" + cfg.Serve + "/documents/" + docs[0].Name
		if err := browser.OpenURL(url); err != nil {
			lg.Warnf("%s: %v", url, err)
		}
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
