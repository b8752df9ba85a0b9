package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	summariesCollection = "summaries"
	globalSummaryDocID  = "global"
)

// globalSummaryDoc is the singleton document for the rolling topic summary.
// Using a fixed document ID makes Save an overwrite by construction.
type globalSummaryDoc struct {
	Content   string    `firestore:"Content"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

type globalSummaryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGlobalSummaryRepository(client *firestore.Client) *globalSummaryRepository {
	return &globalSummaryRepository{client: client}
}

func (r *globalSummaryRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(r.collectionPrefix + summariesCollection).Doc(globalSummaryDocID)
}

func (r *globalSummaryRepository) Get(ctx context.Context) (*model.GlobalSummary, error) {
	doc, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get global summary")
	}

	var d globalSummaryDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal global summary")
	}

	return &model.GlobalSummary{
		Content:   d.Content,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (r *globalSummaryRepository) Save(ctx context.Context, content string) error {
	doc := &globalSummaryDoc{
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.doc().Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save global summary")
	}

	return nil
}
