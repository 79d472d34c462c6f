package milvus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/voyagekit/cruisedesk/components/vectordb"
)

type Engine struct {
	db milvusClient.Client
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db milvusClient.Client, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Milvus)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) CreateCollection(ctx context.Context, name string, dim int64) error {
	idField := entity.NewField().WithName("id").WithDataType(entity.FieldTypeVarChar).WithMaxLength(64).WithIsPrimaryKey(true).WithIsAutoID(false)
	vectorField := entity.NewField().WithName("embedding").WithDataType(entity.FieldTypeFloatVector).WithDim(dim)
	contentField := entity.NewField().WithName("content").WithDataType(entity.FieldTypeVarChar).WithMaxLength(4096)
	metaField := entity.NewField().WithName("meta").WithDataType(entity.FieldTypeJSON)
	schema := entity.NewSchema().WithName(name).WithAutoID(false).WithField(idField).WithField(vectorField).WithField(contentField).WithField(metaField)
	if err := e.db.CreateCollection(ctx, schema, 0); err != nil {
		return err
	}
	idxHnsw, err := entity.NewIndexHNSW(entity.COSINE, 8, 200)
	if err != nil {
		return err
	}
	return e.db.CreateIndex(ctx, name, "embedding", idxHnsw, true, milvusClient.WithIndexName("embedding_idx"))
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	if len(records) == 0 {
		return nil
	}
	dim := int64(len(records[0].Embedding.Embedding))
	if exists, err := e.db.HasCollection(ctx, collectionName); err != nil {
		return err
	} else if !exists {
		if err := e.CreateCollection(ctx, collectionName, dim); err != nil {
			return err
		}
	}
	count := len(records)
	ids := make([]string, 0, count)
	vectors := make([][]float32, 0, count)
	contents := make([]string, 0, count)
	metas := make([][]byte, 0, count)
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		ids = append(ids, record.ID)
		vectors = append(vectors, vectordb.Float32s(record.Embedding.Embedding))
		contents = append(contents, record.Embedding.Object)
		bs, err := json.Marshal(record.Embedding.Meta)
		if err != nil {
			return err
		}
		metas = append(metas, bs)
	}
	columns := []entity.Column{
		entity.NewColumnVarChar("id", ids),
		entity.NewColumnFloatVector("embedding", int(dim), vectors),
		entity.NewColumnVarChar("content", contents),
		entity.NewColumnJSONBytes("meta", metas),
	}
	_, err := e.db.Upsert(ctx, collectionName, "", columns...)
	return err
}

// Search performs vector similarity search on a collection.
func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	if err := e.db.LoadCollection(ctx, option.Collection, false); err != nil {
		return nil, err
	}
	query := entity.FloatVector(vectordb.Float32s(vectors))
	topK := option.TopK
	if topK <= 0 {
		topK = e.TopK
	}
	searchParams, err := entity.NewIndexHNSWSearchParam(200)
	if err != nil {
		return nil, err
	}
	expr := buildExpr(&option)
	results, err := e.db.Search(ctx, option.Collection, nil, expr, []string{"id", "content", "meta"}, []entity.Vector{query}, "embedding", entity.COSINE, topK, searchParams)
	if err != nil {
		return nil, err
	}
	searchResults := make([]vectordb.Record, 0, topK)
	for _, result := range results {
		for row := 0; row < result.ResultCount; row++ {
			var record vectordb.Record
			if err := searchResultToRecord(&result, row, &record); err != nil {
				return nil, err
			}
			searchResults = append(searchResults, record)
		}
	}
	return vectordb.ApplyMinScore(searchResults, e.MinScore), nil
}

func (e *Engine) Count(ctx context.Context, collection string) (int, error) {
	if exists, err := e.db.HasCollection(ctx, collection); err != nil {
		return 0, err
	} else if !exists {
		return 0, nil
	}
	stats, err := e.db.GetCollectionStatistics(ctx, collection)
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(stats["row_count"], "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}

// buildExpr translates metadata filters and ID exclusions into a milvus
// boolean expression.
func buildExpr(option *vectordb.SearchOptions) string {
	clauses := make([]string, 0, len(option.Meta)+1)
	for k, v := range option.Meta {
		clauses = append(clauses, fmt.Sprintf(`meta["%s"] == "%s"`, k, v))
	}
	if len(option.ExcludeIDs) > 0 {
		quoted := make([]string, 0, len(option.ExcludeIDs))
		for _, id := range option.ExcludeIDs {
			quoted = append(quoted, fmt.Sprintf("%q", id))
		}
		clauses = append(clauses, fmt.Sprintf("id not in [%s]", strings.Join(quoted, ", ")))
	}
	return strings.Join(clauses, " and ")
}

func searchResultToRecord(result *milvusClient.SearchResult, row int, record *vectordb.Record) error {
	if row < len(result.Scores) {
		record.Score = float64(result.Scores[row])
	}
	if col := result.Fields.GetColumn("id"); col != nil {
		id, err := col.GetAsString(row)
		if err != nil {
			return err
		}
		record.ID = id
	}
	if col := result.Fields.GetColumn("content"); col != nil {
		content, err := col.GetAsString(row)
		if err != nil {
			return err
		}
		record.Embedding.Object = content
	}
	if col := result.Fields.GetColumn("meta"); col != nil {
		if v, err := col.Get(row); err == nil {
			if bs, ok := v.([]byte); ok {
				if err := json.Unmarshal(bs, &record.Embedding.Meta); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
