package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type rememberRequest struct {
	Content  string         `json:"content"`
	Type     string         `json:"type,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type updateRequest struct {
	Content string `json:"content"`
	Confirm bool   `json:"confirm"`
}

type memoryResponse struct {
	ID           string         `json:"id"`
	Content      string         `json:"content"`
	Type         string         `json:"type"`
	CreatedAt    string         `json:"created_at"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	HasEmbedding bool           `json:"has_embedding"`
	Score        *float64       `json:"score,omitempty"`
}

func toMemoryResponse(m *model.Memory) memoryResponse {
	return memoryResponse{
		ID:           string(m.ID),
		Content:      m.Content,
		Type:         string(m.Type),
		CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Metadata:     m.Metadata,
		HasEmbedding: m.HasEmbedding(),
	}
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		_ = errutil.Handle(ctx, err, "failed to encode response")
	}
}

func (s *Server) handleRemember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rememberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Remember(ctx, req.Content, types.MemoryType(req.Type), req.Metadata)
	if err != nil {
		if errors.Is(err, types.ErrEmptyContent) {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toMemoryResponse(created))
}

func (s *Server) handleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			errutil.HandleHTTP(ctx, w, goerr.New("invalid limit", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	memories, err := s.uc.ListRecent(ctx, limit)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(ctx, w, http.StatusOK, renderMemories(memories))
}

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memories, err := s.uc.ListAll(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(ctx, w, http.StatusOK, renderMemories(memories))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	if query == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("query parameter 'q' is required"), http.StatusBadRequest)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			errutil.HandleHTTP(ctx, w, goerr.New("invalid limit", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	hits, err := s.uc.Search(ctx, query, limit)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	results := make([]memoryResponse, len(hits))
	for i, h := range hits {
		results[i] = toMemoryResponse(h.Memory)
		score := h.Score
		results[i].Score = &score
	}

	respondJSON(ctx, w, http.StatusOK, results)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MemoryID(chi.URLParam(r, "id"))

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if !req.Confirm {
		errutil.HandleHTTP(ctx, w, goerr.New("update requires explicit confirmation"), http.StatusBadRequest)
		return
	}

	ok, err := s.uc.Update(ctx, id, req.Content)
	if err != nil {
		if errors.Is(err, types.ErrEmptyContent) {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		errutil.HandleHTTP(ctx, w, goerr.New("memory not found", goerr.V("id", id)), http.StatusNotFound)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{"updated": true})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MemoryID(chi.URLParam(r, "id"))

	if r.URL.Query().Get("confirm") != "true" {
		errutil.HandleHTTP(ctx, w, goerr.New("delete requires confirm=true"), http.StatusBadRequest)
		return
	}

	ok, err := s.uc.Delete(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		errutil.HandleHTTP(ctx, w, goerr.New("memory not found", goerr.V("id", id)), http.StatusNotFound)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report := s.uc.RunMaintenance(ctx)
	respondJSON(ctx, w, http.StatusOK, report)
}

func (s *Server) handleGlobalSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := s.uc.GlobalSummary(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	if summary == nil {
		errutil.HandleHTTP(ctx, w, goerr.New("no global summary available yet"), http.StatusNotFound)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"content":    summary.Content,
		"updated_at": summary.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func renderMemories(memories []*model.Memory) []memoryResponse {
	results := make([]memoryResponse, len(memories))
	for i, m := range memories {
		results[i] = toMemoryResponse(m)
	}
	return results
}
