package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Om-2611/tasks-generator/planner"
	"github.com/Om-2611/tasks-generator/store"
)

type generateReq struct {
	Title       string `json:"title"`
	Goal        string `json:"goal"`
	Users       string `json:"users"`
	Constraints string `json:"constraints"`
	Type        string `json:"type"`
}

type generateResp struct {
	Success bool                 `json:"success"`
	SpecID  string               `json:"specId"`
	Data    planner.PlanDocument `json:"data"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Goal) == "" {
		writeError(w, http.StatusBadRequest, "Title and Goal are required.")
		return
	}

	prompt := planner.BuildPrompt(planner.PromptInput{
		Title:       req.Title,
		Goal:        req.Goal,
		Users:       req.Users,
		Constraints: req.Constraints,
		Type:        req.Type,
	})

	raw, err := s.llm.Complete(r.Context(), prompt)
	if err != nil {
		s.logger.Error("completion failed", zap.String("title", req.Title), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate tasks from LLM")
		return
	}

	doc, err := planner.ParsePlan(raw)
	if err != nil {
		s.logger.Error("plan parse failed", zap.String("raw", raw), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "LLM returned invalid JSON")
		return
	}

	// Persist the re-serialized plan, not the raw completion, so freshly
	// created rows always hold canonical JSON.
	serialized, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error("plan serialize failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	id, err := s.specs.Insert(r.Context(), store.InsertFields{
		Title:          req.Title,
		Goal:           req.Goal,
		Users:          req.Users,
		Constraints:    req.Constraints,
		OutputMarkdown: string(serialized),
	})
	if err != nil {
		s.logger.Error("spec insert failed", zap.String("title", req.Title), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save spec")
		return
	}

	writeJSON(w, http.StatusOK, generateResp{Success: true, SpecID: id, Data: doc})
}

type specsResp struct {
	Success bool         `json:"success"`
	Specs   []store.Spec `json:"specs"`
}

func (s *Server) handleSpecs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	specs, err := s.specs.ListRecent(r.Context(), historyLimit)
	if err != nil {
		s.logger.Error("spec list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch specs")
		return
	}
	if specs == nil {
		specs = []store.Spec{}
	}
	writeJSON(w, http.StatusOK, specsResp{Success: true, Specs: specs})
}

// handlePreview renders one stored plan as HTML. Records edited into free text
// are rendered verbatim as markdown; a parse failure there is a valid state,
// not an error.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Spec ID is required")
		return
	}
	spec, err := s.specs.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Spec not found")
		return
	}
	if err != nil {
		s.logger.Error("spec fetch failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch spec")
		return
	}

	md := spec.OutputMarkdown
	if doc, err := planner.ParsePlan(spec.OutputMarkdown); err == nil {
		md = planner.FormatMarkdown(doc)
	}
	html, err := planner.MarkdownToHTML(md)
	if err != nil {
		s.logger.Error("markdown render failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to render spec")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

type updateSpecReq struct {
	ID             string `json:"id"`
	UpdatedContent string `json:"updatedContent"`
}

type updateSpecResp struct {
	Success bool `json:"success"`
}

func (s *Server) handleUpdateSpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req updateSpecReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Spec ID is required")
		return
	}
	// The content is stored verbatim, no JSON validation: this is the path by
	// which a record legitimately becomes free text.
	if err := s.specs.UpdateOutput(r.Context(), req.ID, req.UpdatedContent); err != nil {
		s.logger.Error("spec update failed", zap.String("id", req.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update spec")
		return
	}
	writeJSON(w, http.StatusOK, updateSpecResp{Success: true})
}

type statusResp struct {
	Backend  bool `json:"backend"`
	Database bool `json:"database"`
	LLM      bool `json:"llm"`
}

// handleStatus reports three independent health flags. Each probe swallows
// its own failure into false; the endpoint itself always answers 200.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := statusResp{Backend: true}
	resp.Database = s.specs.Probe(r.Context())

	if reply, err := s.llm.Complete(r.Context(), probePrompt); err == nil {
		resp.LLM = strings.Contains(strings.ToLower(reply), "ok")
	} else {
		s.logger.Warn("llm probe failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, resp)
}

type testDBResp struct {
	Success bool         `json:"success"`
	Data    []store.Spec `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// handleTestDB is a diagnostic endpoint outside the primary flow.
func (s *Server) handleTestDB(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	specs, err := s.specs.ListRecent(r.Context(), 1)
	if err != nil {
		writeJSON(w, http.StatusOK, testDBResp{Success: false, Error: err.Error()})
		return
	}
	if specs == nil {
		specs = []store.Spec{}
	}
	writeJSON(w, http.StatusOK, testDBResp{Success: true, Data: specs})
}
