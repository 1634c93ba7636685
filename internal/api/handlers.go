package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/structviz/structviz/pkg/analysis"
	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/layout"
	"github.com/structviz/structviz/pkg/model"
	"github.com/structviz/structviz/pkg/pipeline"
	"github.com/structviz/structviz/pkg/templates"
)

// maxBodySize caps request bodies; workspaces are text and never get close.
const maxBodySize = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Templates
// =============================================================================

type templateInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	all := templates.List()
	out := make([]templateInfo, len(all))
	for i, t := range all {
		out[i] = templateInfo{ID: t.ID, Title: t.Title, Description: t.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleInstantiateTemplate builds a fresh workspace from a builtin template.
// The workspace is returned, not stored; clients save it explicitly.
func (s *Server) handleInstantiateTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := templates.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl.Instantiate())
}

// =============================================================================
// Workspace CRUD
// =============================================================================

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, s, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleSaveWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, ok := decodeWorkspace(w, r, s)
	if !ok {
		return
	}
	if err := s.store.Save(r.Context(), ws); err != nil {
		writeError(w, s, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": ws.Name})
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, s, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, s, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Pipeline Endpoints
// =============================================================================

type analyzeResponse struct {
	SCCs      []analysis.Group          `json:"sccs"`
	BackEdges []model.PointerConnection `json:"back_edges"`
	HasCycles bool                      `json:"has_cycles"`
	Dangling  []string                  `json:"dangling_connections,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ws, ok := decodeWorkspace(w, r, s)
	if !ok {
		return
	}

	metrics := s.runner.Analyze(ws)
	writeJSON(w, http.StatusOK, analyzeResponse{
		SCCs:      metrics.SCCs,
		BackEdges: metrics.BackEdges,
		HasCycles: metrics.HasCycles,
		Dangling:  ws.Validate(),
	})
}

type layoutResponse struct {
	Positions map[string]model.Position `json:"positions"`
	Edges     []layout.EdgeHint         `json:"edges,omitempty"`
	Bounds    layout.Bounds             `json:"bounds"`
	CacheHit  bool                      `json:"cache_hit"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ws, ok := decodeWorkspace(w, r, s)
	if !ok {
		return
	}

	lay, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), ws, "", pipeline.Options{})
	if err != nil {
		writeError(w, s, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Positions: lay.Positions,
		Edges:     lay.Edges,
		Bounds:    lay.Bounds,
		CacheHit:  hit,
	})
}

// handleExport runs the full pipeline and streams one rendered artifact.
// The format comes from the "format" query parameter, defaulting to DOT.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ws, ok := decodeWorkspace(w, r, s)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}

	result, err := s.runner.Execute(r.Context(), ws, pipeline.Options{
		Formats:  []string{format},
		Detailed: r.URL.Query().Get("detailed") == "true",
		Logger:   s.logger,
	})
	if err != nil {
		writeError(w, s, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// =============================================================================
// Helpers
// =============================================================================

func decodeWorkspace(w http.ResponseWriter, r *http.Request, s *Server) (model.Workspace, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	ws, err := model.ReadWorkspace(r.Body)
	if err != nil {
		writeError(w, s, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "decode workspace"))
		return model.Workspace{}, false
	}
	return ws, true
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, s *Server, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case code == errors.ErrCodeInvalidWorkspace,
		code == errors.ErrCodeInvalidInput,
		code == errors.ErrCodeInvalidFormat,
		code == errors.ErrCodeInvalidTuning,
		code == errors.ErrCodeInvalidTemplate:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
