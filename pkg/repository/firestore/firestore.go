package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore is a Firestore-backed repository. Firestore is schemaless, so the
// "add the embedding column idempotently" migration concern of older SQL-based
// deployments reduces to treating a missing Embedding field as "no embedding".
type Firestore struct {
	client        *firestore.Client
	memories      *memoryRepository
	globalSummary *globalSummaryRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests sharing a
// database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.memories.collectionPrefix = prefix
		f.globalSummary.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:        client,
		memories:      newMemoryRepository(client),
		globalSummary: newGlobalSummaryRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Memory() interfaces.MemoryRepository {
	return f.memories
}

func (f *Firestore) GlobalSummary() interfaces.GlobalSummaryRepository {
	return f.globalSummary
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
