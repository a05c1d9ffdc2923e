package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
	"github.com/horo-ai/horo/pkg/logger"
)

const milvusVarCharMaxLength = "512"

// MilvusStore is a VectorStore backed by a Milvus collection. Tenant isolation
// is enforced through a tenant_id scalar field and a filter expression on
// every search.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client
	collection string
	dim        int
}

// NewMilvusStore connects to Milvus and ensures the chunk collection exists.
// dim is the embedding dimension used when the collection has to be created.
func NewMilvusStore(ctx context.Context, address, collection string, dim int, log *logger.Logger) (*MilvusStore, error) {
	c, err := client.NewClient(ctx, client.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to milvus at %s: %w", address, err)
	}

	s := &MilvusStore{
		log:        log,
		client:     c,
		collection: collection,
		dim:        dim,
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureCollection creates the chunk collection and its index when missing.
func (s *MilvusStore) ensureCollection(ctx context.Context) error {
	has, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check milvus collection %s: %w", s.collection, err)
	}
	if has {
		return nil
	}

	s.log.Info(fmt.Sprintf("Creating Milvus collection: %s", s.collection))
	collSchema := &entity.Schema{
		CollectionName: s.collection,
		Description:    "Indexed document chunks, one tenant per tenant_id value",
		Fields: []*entity.Field{
			{
				Name:       FieldID,
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				TypeParams: map[string]string{entity.TypeParamMaxLength: milvusVarCharMaxLength},
			},
			{
				Name:       FieldTenantID,
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{entity.TypeParamMaxLength: milvusVarCharMaxLength},
			},
			{
				Name:       FieldDocID,
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{entity.TypeParamMaxLength: milvusVarCharMaxLength},
			},
			{
				Name:       FieldEmbedding,
				DataType:   entity.FieldTypeFloatVector,
				TypeParams: map[string]string{entity.TypeParamDim: fmt.Sprintf("%d", s.dim)},
			},
		},
	}
	if err := s.client.CreateCollection(ctx, collSchema, 1); err != nil {
		return fmt.Errorf("failed to create milvus collection %s: %w", s.collection, err)
	}

	idx, err := entity.NewIndexIvfFlat(entity.COSINE, 128)
	if err != nil {
		return fmt.Errorf("failed to build milvus index definition: %w", err)
	}
	if err := s.client.CreateIndex(ctx, s.collection, FieldEmbedding, idx, false); err != nil {
		return fmt.Errorf("failed to create milvus index: %w", err)
	}
	return nil
}

// Add inserts a list of documents into the Milvus collection.
func (s *MilvusStore) Add(ctx context.Context, docs []*schema.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))
	tenantIDs := make([]string, len(docs))
	docIDs := make([]string, len(docs))

	dim := 0
	for i, doc := range docs {
		ids[i] = doc.ID
		embeddings[i] = doc.Embedding
		if len(doc.Embedding) > dim {
			dim = len(doc.Embedding)
		}
		if tid, ok := doc.Metadata[FieldTenantID].(string); ok {
			tenantIDs[i] = tid
		}
		if did, ok := doc.Metadata[FieldDocID].(string); ok {
			docIDs[i] = did
		}
	}

	idCol := entity.NewColumnVarChar(FieldID, ids)
	tenantCol := entity.NewColumnVarChar(FieldTenantID, tenantIDs)
	docIDCol := entity.NewColumnVarChar(FieldDocID, docIDs)
	embeddingCol := entity.NewColumnFloatVector(FieldEmbedding, dim, embeddings)

	s.log.Info(fmt.Sprintf("Inserting %d chunks into Milvus collection: %s", len(docs), s.collection))
	if _, err := s.client.Insert(ctx, s.collection, "" /* default partition */, idCol, tenantCol, docIDCol, embeddingCol); err != nil {
		s.log.Error(fmt.Sprintf("Failed to insert data into Milvus: %v", err))
		return fmt.Errorf("failed to insert data into Milvus: %w", err)
	}
	return nil
}

// Query performs a vector search in the Milvus collection with metadata
// filtering. Milvus reports a COSINE score for every hit, so results are
// always scored.
func (s *MilvusStore) Query(ctx context.Context, embedding []float32, topK int, filters map[string]interface{}) ([]*schema.Result, error) {
	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return nil, fmt.Errorf("failed to load milvus collection %s: %w", s.collection, err)
	}

	filterExpr := s.buildFilterExpression(filters)
	searchParams, _ := entity.NewIndexIvfFlatSearchParam(10)
	outputFields := []string{FieldID, FieldTenantID, FieldDocID}

	s.log.Info(fmt.Sprintf("Querying Milvus collection '%s' with filter: '%s'", s.collection, filterExpr))
	searchResults, err := s.client.Search(
		ctx, s.collection, []string{}, filterExpr, outputFields,
		[]entity.Vector{entity.FloatVector(embedding)},
		FieldEmbedding, entity.COSINE, topK, searchParams,
	)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to search in Milvus: %v", err))
		return nil, fmt.Errorf("failed to search in Milvus: %w", err)
	}

	var results []*schema.Result
	for _, res := range searchResults {
		findColumn := func(name string) entity.Column {
			for _, field := range res.Fields {
				if field.Name() == name {
					return field
				}
			}
			return nil
		}

		idCol, _ := findColumn(FieldID).(*entity.ColumnVarChar)
		tenantCol, _ := findColumn(FieldTenantID).(*entity.ColumnVarChar)
		docIDCol, _ := findColumn(FieldDocID).(*entity.ColumnVarChar)
		if idCol == nil {
			continue
		}

		for i := 0; i < res.ResultCount; i++ {
			id, err := idCol.ValueByIdx(i)
			if err != nil {
				continue
			}
			doc := &schema.Document{
				ID:       id,
				Metadata: make(map[string]interface{}),
			}
			if tenantCol != nil {
				if tid, err := tenantCol.ValueByIdx(i); err == nil {
					doc.Metadata[FieldTenantID] = tid
				}
			}
			if docIDCol != nil {
				if did, err := docIDCol.ValueByIdx(i); err == nil {
					doc.Metadata[FieldDocID] = did
				}
			}
			results = append(results, &schema.Result{
				Document: doc,
				Score:    float64(res.Scores[i]),
				Scored:   true,
			})
		}
	}
	return results, nil
}

// buildFilterExpression converts a filter map into a Milvus boolean expression.
// String values are quoted with backslashes and quotes escaped, so a filter
// value can never alter the shape of the expression.
func (s *MilvusStore) buildFilterExpression(filters map[string]interface{}) string {
	var exprs []string
	for k, v := range filters {
		switch val := v.(type) {
		case string:
			exprs = append(exprs, fmt.Sprintf(`%s == "%s"`, k, escapeFilterValue(val)))
		default:
			exprs = append(exprs, fmt.Sprintf(`%s == %v`, k, val))
		}
	}
	return strings.Join(exprs, " and ")
}

func escapeFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// Close releases the underlying Milvus connection.
func (s *MilvusStore) Close() error {
	return s.client.Close()
}

var _ interfaces.VectorStore = (*MilvusStore)(nil)
