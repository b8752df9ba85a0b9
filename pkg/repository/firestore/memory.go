package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	memoriesCollection = "memories"
	searchResultLimit  = 20
)

// memoryDoc is the Firestore document representation of model.Memory.
// Embedding is stored as firestore.Vector32; a missing field means the memory
// has no embedding.
type memoryDoc struct {
	ID        types.MemoryID     `firestore:"ID"`
	Content   string             `firestore:"Content"`
	Type      string             `firestore:"Type"`
	CreatedAt time.Time          `firestore:"CreatedAt"`
	Metadata  map[string]any     `firestore:"Metadata,omitempty"`
	Embedding firestore.Vector32 `firestore:"Embedding,omitempty"`
}

func toMemoryDoc(m *model.Memory) *memoryDoc {
	doc := &memoryDoc{
		ID:        m.ID,
		Content:   m.Content,
		Type:      string(m.Type),
		CreatedAt: m.CreatedAt,
		Metadata:  m.Metadata,
	}
	if len(m.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(m.Embedding)
	}
	return doc
}

func fromMemoryDoc(d *memoryDoc) *model.Memory {
	m := &model.Memory{
		ID:        d.ID,
		Content:   d.Content,
		Type:      types.MemoryType(d.Type),
		CreatedAt: d.CreatedAt,
		Metadata:  d.Metadata,
	}
	if len(d.Embedding) > 0 {
		m.Embedding = []float32(d.Embedding)
	}
	return m
}

type memoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMemoryRepository(client *firestore.Client) *memoryRepository {
	return &memoryRepository{client: client}
}

func (r *memoryRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + memoriesCollection)
}

func (r *memoryRepository) Create(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	if mem.Content == "" {
		return nil, goerr.Wrap(types.ErrEmptyContent, "failed to create memory")
	}

	created := mem.Clone()
	if created.ID == "" {
		created.ID = types.NewMemoryID()
	}
	if created.Type == "" {
		created.Type = types.TypeConversation
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	created.Embedding = nil

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toMemoryDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create memory", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *memoryRepository) Get(ctx context.Context, id types.MemoryID) (*model.Memory, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrMemoryNotFound, "memory not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
	}

	var d memoryDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal memory", goerr.V("id", id))
	}

	return fromMemoryDoc(&d), nil
}

func (r *memoryRepository) list(ctx context.Context, q firestore.Query, keep func(*model.Memory) bool, limit int) ([]*model.Memory, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.Memory, 0)
	for {
		if limit > 0 && len(result) >= limit {
			break
		}

		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate memories")
		}

		var d memoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal memory")
		}

		m := fromMemoryDoc(&d)
		if keep != nil && !keep(m) {
			continue
		}
		result = append(result, m)
	}

	return result, nil
}

func (r *memoryRepository) List(ctx context.Context, limit int) ([]*model.Memory, error) {
	q := r.collection().OrderBy("CreatedAt", firestore.Desc).Limit(limit)
	return r.list(ctx, q, nil, limit)
}

func (r *memoryRepository) ListAll(ctx context.Context) ([]*model.Memory, error) {
	q := r.collection().OrderBy("CreatedAt", firestore.Asc)
	return r.list(ctx, q, nil, 0)
}

// ListMissingEmbedding filters client-side: Firestore cannot query for a
// missing field, and the target data volume makes a scan acceptable.
func (r *memoryRepository) ListMissingEmbedding(ctx context.Context, limit int) ([]*model.Memory, error) {
	q := r.collection().OrderBy("CreatedAt", firestore.Desc)
	return r.list(ctx, q, func(m *model.Memory) bool {
		return !m.HasEmbedding() && m.Type != types.TypeSummary
	}, limit)
}

func (r *memoryRepository) ListEmbedded(ctx context.Context) ([]*model.Memory, error) {
	q := r.collection().OrderBy("CreatedAt", firestore.Desc)
	return r.list(ctx, q, func(m *model.Memory) bool {
		return m.HasEmbedding()
	}, 0)
}

func (r *memoryRepository) SetEmbedding(ctx context.Context, id types.MemoryID, embedding []float32) error {
	docRef := r.collection().Doc(string(id))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "Embedding", Value: firestore.Vector32(embedding)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Deleted while the embedding request was in flight; expected
			return nil
		}
		return goerr.Wrap(err, "failed to set embedding", goerr.V("id", id))
	}

	return nil
}

func (r *memoryRepository) UpdateContent(ctx context.Context, id types.MemoryID, content string) (bool, error) {
	if content == "" {
		return false, goerr.Wrap(types.ErrEmptyContent, "failed to update memory", goerr.V("id", id))
	}

	docRef := r.collection().Doc(string(id))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "Content", Value: content},
		{Path: "Embedding", Value: firestore.Delete},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to update memory", goerr.V("id", id))
	}

	return true, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id types.MemoryID) (bool, error) {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return false, goerr.Wrap(err, "failed to delete memory", goerr.V("id", id))
	}

	return true, nil
}

// Search scans newest-first and matches client-side: Firestore has no
// substring queries and the data volume is small.
func (r *memoryRepository) Search(ctx context.Context, query string) ([]*model.Memory, error) {
	needle := strings.ToLower(query)
	q := r.collection().OrderBy("CreatedAt", firestore.Desc)
	return r.list(ctx, q, func(m *model.Memory) bool {
		return strings.Contains(strings.ToLower(m.Content), needle)
	}, searchResultLimit)
}
