package mcp

import (
	"context"
	"encoding/json"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	resourceAllURI    = "memory://all"
	resourceRecentURI = "memory://recent"
	recentResourceCap = 100
)

func (s *Server) registerResources() {
	s.srv.AddResource(&mcp.Resource{
		URI:         resourceAllURI,
		Name:        "All Memories",
		MIMEType:    "application/json",
		Description: "A comprehensive list of all stored memories.",
	}, s.readAll)

	s.srv.AddResource(&mcp.Resource{
		URI:         resourceRecentURI,
		Name:        "Recent Memories",
		MIMEType:    "application/json",
		Description: "The most recent 100 memories.",
	}, s.readRecent)
}

func (s *Server) readAll(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	memories, err := s.uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return resourceResult(resourceAllURI, memories)
}

func (s *Server) readRecent(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	memories, err := s.uc.ListRecent(ctx, recentResourceCap)
	if err != nil {
		return nil, err
	}
	return resourceResult(resourceRecentURI, memories)
}

func resourceResult(uri string, memories []*model.Memory) (*mcp.ReadResourceResult, error) {
	views := make([]memoryView, len(memories))
	for i, m := range memories {
		views[i] = renderMemory(m)
	}

	body, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render memories", goerr.V("uri", uri))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(body),
			},
		},
	}, nil
}
