package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SiteConfigRepository handles persistence for accepted site-config
// documents. The collection is strictly append-only: no record is
// ever located, mutated, or removed through this interface.
type SiteConfigRepository struct {
	records RecordCollection
}

func NewSiteConfigRepository(records RecordCollection) *SiteConfigRepository {
	return &SiteConfigRepository{records: records}
}

// Append stores the document tagged with a generated time-derived id
// and returns that id.
func (r *SiteConfigRepository) Append(ctx context.Context, doc map[string]any) (int64, error) {
	id := time.Now().UnixMilli()

	tagged := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		tagged[k] = v
	}
	tagged["id"] = id

	record, err := json.Marshal(tagged)
	if err != nil {
		return 0, fmt.Errorf("encode site config: %w", err)
	}
	if err := r.records.Append(ctx, record); err != nil {
		return 0, err
	}
	return id, nil
}

// All returns every stored document in insertion order.
func (r *SiteConfigRepository) All(ctx context.Context) ([]map[string]any, error) {
	records, err := r.records.All(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]map[string]any, 0, len(records))
	for _, record := range records {
		var doc map[string]any
		if err := json.Unmarshal(record, &doc); err != nil {
			return nil, fmt.Errorf("decode site config record: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
