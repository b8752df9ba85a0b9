package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// confirmKeyword must be supplied verbatim by the caller before a destructive
// operation reaches the store
const confirmKeyword = "YES"

// Server exposes the memory store as an MCP server over stdio
type Server struct {
	uc  *usecase.UseCases
	srv *mcp.Server
}

func New(uc *usecase.UseCases, version string) *Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "memory-node",
		Version: version,
	}, nil)

	s := &Server{uc: uc, srv: srv}
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects. Logs go to stderr; stdout belongs to the protocol stream.
func (s *Server) Run(ctx context.Context) error {
	if err := s.srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "MCP server terminated")
	}
	return nil
}

type rememberParams struct {
	Content  string         `json:"content" jsonschema:"The content of the memory to store"`
	Type     string         `json:"type,omitempty" jsonschema:"Type of memory (e.g. conversation, fact, preference). Default: conversation"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"Optional key-value metadata"`
}

type searchParams struct {
	Query string `json:"query" jsonschema:"Query to search for in memories"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type deleteParams struct {
	ID      string `json:"id" jsonschema:"ID of the memory to delete"`
	Confirm string `json:"confirm" jsonschema:"Must be 'YES' to proceed"`
}

type updateParams struct {
	ID      string `json:"id" jsonschema:"ID of the memory to update"`
	Content string `json:"content" jsonschema:"New content for the memory"`
	Confirm string `json:"confirm" jsonschema:"Must be 'YES' to proceed"`
}

type emptyParams struct{}

func (s *Server) registerTools() {
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "remember",
		Description: "Store a new memory. Use this to save important information, user preferences, or conversation context.",
	}, s.remember)

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "search_memories",
		Description: "Search stored memories. Uses semantic similarity when available and falls back to text search.",
	}, s.searchMemories)

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "delete_memory",
		Description: "Permanently delete a memory. REQUIRES explicit confirmation.",
	}, s.deleteMemory)

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "update_memory",
		Description: "Update an existing memory's content. REQUIRES explicit confirmation.",
	}, s.updateMemory)

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "force_maintenance",
		Description: "Run the maintenance pipeline now: backfill missing embeddings and summarize recent conversations.",
	}, s.forceMaintenance)

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "get_global_summary",
		Description: "Get the rolling summary of the store's overall topical content.",
	}, s.getGlobalSummary)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (s *Server) remember(ctx context.Context, req *mcp.CallToolRequest, params *rememberParams) (*mcp.CallToolResult, any, error) {
	if params.Content == "" {
		return nil, nil, goerr.Wrap(types.ErrEmptyContent, "content is required")
	}

	memType := types.MemoryType(params.Type)
	created, err := s.uc.Remember(ctx, params.Content, memType, params.Metadata)
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Memory stored with ID: %s", created.ID)), nil, nil
}

func (s *Server) searchMemories(ctx context.Context, req *mcp.CallToolRequest, params *searchParams) (*mcp.CallToolResult, any, error) {
	if params.Query == "" {
		return nil, nil, goerr.New("query is required")
	}

	hits, err := s.uc.Search(ctx, params.Query, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	body, err := json.MarshalIndent(renderHits(hits), "", "  ")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to render search results")
	}

	return textResult(string(body)), nil, nil
}

func (s *Server) deleteMemory(ctx context.Context, req *mcp.CallToolRequest, params *deleteParams) (*mcp.CallToolResult, any, error) {
	if params.Confirm != confirmKeyword {
		return nil, nil, goerr.New("confirmation must be explicitly 'YES' to delete a memory")
	}

	ok, err := s.uc.Delete(ctx, types.MemoryID(params.ID))
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return errorResult(fmt.Sprintf("Memory with ID %s not found.", params.ID)), nil, nil
	}

	return textResult(fmt.Sprintf("Memory %s deleted successfully.", params.ID)), nil, nil
}

func (s *Server) updateMemory(ctx context.Context, req *mcp.CallToolRequest, params *updateParams) (*mcp.CallToolResult, any, error) {
	if params.Confirm != confirmKeyword {
		return nil, nil, goerr.New("confirmation must be explicitly 'YES' to update a memory")
	}

	ok, err := s.uc.Update(ctx, types.MemoryID(params.ID), params.Content)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return errorResult(fmt.Sprintf("Memory with ID %s not found.", params.ID)), nil, nil
	}

	return textResult(fmt.Sprintf("Memory %s updated successfully.", params.ID)), nil, nil
}

func (s *Server) forceMaintenance(ctx context.Context, req *mcp.CallToolRequest, params *emptyParams) (*mcp.CallToolResult, any, error) {
	report := s.uc.RunMaintenance(ctx)

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to render maintenance report")
	}

	return textResult(string(body)), nil, nil
}

func (s *Server) getGlobalSummary(ctx context.Context, req *mcp.CallToolRequest, params *emptyParams) (*mcp.CallToolResult, any, error) {
	summary, err := s.uc.GlobalSummary(ctx)
	if err != nil {
		return nil, nil, err
	}
	if summary == nil {
		return textResult("No global summary has been generated yet."), nil, nil
	}

	return textResult(summary.Content), nil, nil
}

// memoryView is the wire representation of a memory in tool and resource
// output
type memoryView struct {
	ID           string         `json:"id"`
	Content      string         `json:"content"`
	Type         string         `json:"type"`
	CreatedAt    string         `json:"created_at"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	HasEmbedding bool           `json:"has_embedding"`
	Score        *float64       `json:"score,omitempty"`
}

func renderMemory(m *model.Memory) memoryView {
	return memoryView{
		ID:           string(m.ID),
		Content:      m.Content,
		Type:         string(m.Type),
		CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Metadata:     m.Metadata,
		HasEmbedding: m.HasEmbedding(),
	}
}

func renderHits(hits []model.SearchHit) []memoryView {
	views := make([]memoryView, len(hits))
	for i, h := range hits {
		views[i] = renderMemory(h.Memory)
		score := h.Score
		views[i].Score = &score
	}
	return views
}
