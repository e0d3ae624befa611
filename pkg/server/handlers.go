package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/frosting/pkg/buildinfo"
	"github.com/matzehuels/frosting/pkg/core/render"
	"github.com/matzehuels/frosting/pkg/presets"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	all, err := presets.All(r.Context(), s.store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := presets.Get(r.Context(), s.store, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := parseSceneQuery(r.Context(), r.URL.Query(), s.base, s.store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("req", middleware.GetReqID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", render.ContentType(format))
	h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("frosting-%d.%s", result.Seed, render.Extension(format))))
	h.Set("X-Scene-ID", result.ID.String())
	h.Set("X-Seed", strconv.FormatUint(result.Seed, 10))
	h.Set("X-Sprinkles", strconv.Itoa(result.Stats.Sprinkles))
	if result.SprinkleSeed != nil {
		h.Set("X-Sprinkle-Seed", strconv.FormatUint(*result.SprinkleSeed, 10))
	}
	if opts.Seeded() {
		h.Set("Cache-Control", "public, max-age=86400, immutable")
	} else {
		h.Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
