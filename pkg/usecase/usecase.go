package usecase

import (
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/maintenance"
)

const (
	// DefaultRecentLimit caps list-recent results when the caller passes no limit
	DefaultRecentLimit = 100

	// DefaultSearchLimit caps vector search results
	DefaultSearchLimit = 10
)

// UseCases exposes the caller-facing operations consumed by the MCP and HTTP
// front ends and the CLI.
type UseCases struct {
	repo  interfaces.Repository
	ai    interfaces.GenAI
	maint *maintenance.Service
}

type Option func(*UseCases)

// WithMaintenance overrides the maintenance service, mainly for tests tuning
// the policy
func WithMaintenance(svc *maintenance.Service) Option {
	return func(uc *UseCases) {
		uc.maint = svc
	}
}

func New(repo interfaces.Repository, ai interfaces.GenAI, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		ai:   ai,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.maint == nil {
		uc.maint = maintenance.New(repo, ai, maintenance.DefaultPolicy())
	}

	return uc
}

// NewWithPolicy builds use cases with a tuned maintenance policy
func NewWithPolicy(repo interfaces.Repository, ai interfaces.GenAI, policy maintenance.Policy) *UseCases {
	return New(repo, ai, WithMaintenance(maintenance.New(repo, ai, policy)))
}

// Maintenance returns the maintenance service for scheduler wiring
func (uc *UseCases) Maintenance() *maintenance.Service {
	return uc.maint
}
