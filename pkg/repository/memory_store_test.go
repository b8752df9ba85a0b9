package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/repository/firestore"
	"github.com/j4ckxyz/memory-node-mcp/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func mustCreate(t *testing.T, repo interfaces.Repository, content string, memType types.MemoryType) *model.Memory {
	t.Helper()
	created, err := repo.Memory().Create(context.Background(), &model.Memory{
		Content: content,
		Type:    memType,
	})
	gt.NoError(t, err).Required()
	return created
}

func runMemoryRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamp and no embedding", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Memory().Create(ctx, &model.Memory{
			Content: "User prefers dark roast coffee",
		})
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Value(t, created.Type).Equal(types.TypeConversation)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.HasEmbedding()).False()

		got, err := repo.Memory().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Content).Equal("User prefers dark roast coffee")
		gt.Bool(t, got.HasEmbedding()).False()
	})

	t.Run("Create rejects empty content", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Memory().Create(ctx, &model.Memory{Content: ""})
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrEmptyContent)).True()
	})

	t.Run("Create preserves metadata verbatim", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Memory().Create(ctx, &model.Memory{
			Content: "Deployment window is Friday night",
			Metadata: map[string]any{
				"source":   "standup",
				"priority": int64(3),
			},
		})
		gt.NoError(t, err).Required()

		got, err := repo.Memory().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Metadata["source"]).Equal("standup")
	})

	t.Run("Get returns ErrMemoryNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Memory().Get(ctx, types.NewMemoryID())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrMemoryNotFound)).True()
	})

	t.Run("List returns newest first with limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			mustCreate(t, repo, fmt.Sprintf("memory %d", i), types.TypeConversation)
			time.Sleep(5 * time.Millisecond)
		}

		listed, err := repo.Memory().List(ctx, 3)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(3)
		gt.Value(t, listed[0].Content).Equal("memory 4")
		gt.Value(t, listed[1].Content).Equal("memory 3")
		gt.Value(t, listed[2].Content).Equal("memory 2")
	})

	t.Run("ListAll returns oldest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		mustCreate(t, repo, "first", types.TypeConversation)
		time.Sleep(5 * time.Millisecond)
		mustCreate(t, repo, "second", types.TypeConversation)

		all, err := repo.Memory().ListAll(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)
		gt.Value(t, all[0].Content).Equal("first")
		gt.Value(t, all[1].Content).Equal("second")
	})

	t.Run("ListMissingEmbedding excludes embedded and summary types", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		plain := mustCreate(t, repo, "needs embedding", types.TypeConversation)
		embedded := mustCreate(t, repo, "already embedded", types.TypeConversation)
		mustCreate(t, repo, "legacy summary artifact", types.TypeSummary)

		gt.NoError(t, repo.Memory().SetEmbedding(ctx, embedded.ID, []float32{0.1, 0.2})).Required()

		missing, err := repo.Memory().ListMissingEmbedding(ctx, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, missing).Length(1)
		gt.Value(t, missing[0].ID).Equal(plain.ID)
	})

	t.Run("SetEmbedding persists vector and is a no-op for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreate(t, repo, "embed me", types.TypeConversation)

		gt.NoError(t, repo.Memory().SetEmbedding(ctx, created.ID, []float32{0.5, 0.5})).Required()

		got, err := repo.Memory().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, got.Embedding).Length(2)

		// A delete racing an in-flight embedding request must not error
		gt.NoError(t, repo.Memory().SetEmbedding(ctx, types.NewMemoryID(), []float32{1})).Required()
	})

	t.Run("ListEmbedded returns only memories with embeddings", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		mustCreate(t, repo, "no vector", types.TypeConversation)
		withVec := mustCreate(t, repo, "with vector", types.TypeConversation)
		gt.NoError(t, repo.Memory().SetEmbedding(ctx, withVec.ID, []float32{1, 0})).Required()

		embedded, err := repo.Memory().ListEmbedded(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, embedded).Length(1)
		gt.Value(t, embedded[0].ID).Equal(withVec.ID)
	})

	t.Run("UpdateContent replaces content and clears embedding", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreate(t, repo, "old content", types.TypeConversation)
		gt.NoError(t, repo.Memory().SetEmbedding(ctx, created.ID, []float32{0.9, 0.1})).Required()

		ok, err := repo.Memory().UpdateContent(ctx, created.ID, "new content")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()

		got, err := repo.Memory().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Content).Equal("new content")
		gt.Bool(t, got.HasEmbedding()).False()
	})

	t.Run("UpdateContent returns false for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ok, err := repo.Memory().UpdateContent(ctx, types.NewMemoryID(), "anything")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})

	t.Run("UpdateContent rejects empty content", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreate(t, repo, "keep me", types.TypeConversation)
		_, err := repo.Memory().UpdateContent(ctx, created.ID, "")
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrEmptyContent)).True()
	})

	t.Run("Delete removes memory and reports false for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreate(t, repo, "delete me", types.TypeConversation)

		ok, err := repo.Memory().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()

		_, err = repo.Memory().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, types.ErrMemoryNotFound)).True()

		ok, err = repo.Memory().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})

	t.Run("Search matches substrings case-insensitively newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		mustCreate(t, repo, "Met with Alice about the Q3 roadmap", types.TypeConversation)
		time.Sleep(5 * time.Millisecond)
		mustCreate(t, repo, "alice prefers async updates", types.TypeConversation)
		mustCreate(t, repo, "unrelated note", types.TypeConversation)

		found, err := repo.Memory().Search(ctx, "ALICE")
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(2)
		gt.Value(t, found[0].Content).Equal("alice prefers async updates")
	})

	t.Run("GlobalSummary is a singleton overwritten on save", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		got, err := repo.GlobalSummary().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Nil()

		gt.NoError(t, repo.GlobalSummary().Save(ctx, "first summary")).Required()
		gt.NoError(t, repo.GlobalSummary().Save(ctx, "second summary")).Required()

		got, err = repo.GlobalSummary().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil()
		gt.Value(t, got.Content).Equal("second summary")
	})

	t.Run("Listings never include the global summary", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		mustCreate(t, repo, "an ordinary memory", types.TypeConversation)
		gt.NoError(t, repo.GlobalSummary().Save(ctx, "the global summary text")).Required()

		listed, err := repo.Memory().List(ctx, 100)
		gt.NoError(t, err).Required()
		for _, m := range listed {
			gt.Value(t, m.Type).NotEqual(types.TypeGlobalSummary)
			gt.Value(t, m.Content).NotEqual("the global summary text")
		}

		all, err := repo.Memory().ListAll(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)
	})
}

func TestMemoryRepository(t *testing.T) {
	runMemoryRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT is not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	runMemoryRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, databaseID,
			firestore.WithCollectionPrefix(fmt.Sprintf("test-%d-", time.Now().UnixNano())))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			_ = repo.Close()
		})
		return repo
	})
}
