package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/leapstack-labs/oxoff/pkg/source"
)

// maxBodyBytes caps the size of a posted oxlint config.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Rules   int    `json:"rules"`
}

type rulesResponse struct {
	Version string         `json:"version"`
	Count   int            `json:"count"`
	Rules   []catalog.Rule `json:"rules"`
}

type ruleResponse struct {
	Written string `json:"written"`
	catalog.Rule
	Alias string `json:"alias,omitempty"`
}

type presetsResponse struct {
	Presets []string `json:"presets"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// queryBool reads a boolean query parameter, returning def when it is absent.
func queryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be a boolean", key, raw)
	}
	return v, nil
}

func (s *Server) requestOptions(r *http.Request) (catalog.Options, error) {
	opts := s.opts
	var err error
	if opts.WithNursery, err = queryBool(r, "with_nursery", opts.WithNursery); err != nil {
		return opts, err
	}
	if opts.TypeAware, err = queryBool(r, "type_aware", opts.TypeAware); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cat := s.resolver.Catalog()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: cat.Version(),
		Rules:   cat.Len(),
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	category := r.URL.Query().Get("category")
	scope := r.URL.Query().Get("scope")

	cat := s.resolver.Catalog()
	rules := cat.Filter(func(rule catalog.Rule) bool {
		if category != "" && rule.Category != category {
			return false
		}
		if scope != "" && rule.Scope != scope {
			return false
		}
		return opts.Allows(rule)
	})

	writeJSON(w, http.StatusOK, rulesResponse{
		Version: cat.Version(),
		Count:   len(rules),
		Rules:   rules,
	})
}

func (s *Server) handleRule(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	written := chi.URLParam(r, "*")

	cat := s.resolver.Catalog()
	name, ok := cat.Lookup(written, opts)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("rule %q is not implemented by oxlint", written))
		return
	}
	rule, _ := cat.Rule(name)

	resp := ruleResponse{Written: written, Rule: rule}
	if alias, ok := catalog.AliasOf(name); ok && cat.Has(alias) {
		resp.Alias = alias
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	legacy, err := queryBool(r, "legacy", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg, err := source.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if legacy {
		writeJSON(w, http.StatusOK, s.resolver.BuildLegacy(cfg, opts))
		return
	}
	writeJSON(w, http.StatusOK, s.resolver.Build(cfg, opts))
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{Presets: s.resolver.PresetNames()})
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	fragment, ok := s.resolver.Preset(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown preset %q", name))
		return
	}
	writeJSON(w, http.StatusOK, s.resolver.SplitIncompatible(fragment))
}
