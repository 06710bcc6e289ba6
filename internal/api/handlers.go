package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/generator"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/source"
)

// Handler serves the script endpoints. Configuration and the generator are
// passed in explicitly; handlers hold no mutable state of their own, so the
// server is safe for concurrent requests.
type Handler struct {
	cfg *config.Config
	gen *generator.Generator
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.Config, gen *generator.Generator) *Handler {
	return &Handler{cfg: cfg, gen: gen}
}

// ScriptsResponse lists the configured script names.
type ScriptsResponse struct {
	Scripts []string `json:"scripts"`
}

// GetScripts returns the names of all configured scripts.
func (h *Handler) GetScripts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ScriptsResponse{Scripts: h.cfg.ScriptNames()})
}

// GetScriptContent generates the named script and returns it as a
// downloadable .rsc file.
func (h *Handler) GetScriptContent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "script_name")

	script, err := h.cfg.ScriptByName(name)
	if err != nil {
		WriteNotFound(w, err.Error())
		return
	}

	src, err := source.FromScript(script)
	if err != nil {
		WriteInternalError(w, err.Error())
		return
	}

	sourcePath, err := source.Resolve(src, name, h.cfg.GetAbsDownloadDir())
	if err != nil {
		log.Errorf("Failed to resolve source for script \"%s\": %v", name, err)
		WriteInternalError(w, err.Error())
		return
	}

	output, err := h.gen.Generate(generator.Request{
		SourcePath:    sourcePath,
		SourceDisplay: src.String(),
		ListName:      script.ListName,
		Header:        script.Header,
		Comment:       script.Comment,
		Timeout:       script.Timeout,
		LogLevel:      script.LogLevel,
		NoCatchErrors: script.NoCatchErrors,
		NoIPv4:        script.NoIPv4,
		NoIPv6:        script.NoIPv6,
		Dynamic:       script.Dynamic,
		Disabled:      script.Disabled,
	})
	if err != nil {
		log.Errorf("Failed to generate script \"%s\": %v", name, err)
		WriteInternalError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.rsc\"", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(output))
}

// GetScriptSettings returns the named script's configuration as JSON.
func (h *Handler) GetScriptSettings(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "script_name")

	script, err := h.cfg.ScriptByName(name)
	if err != nil {
		WriteNotFound(w, err.Error())
		return
	}

	writeJSON(w, script)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode JSON response: %v", err)
	}
}
